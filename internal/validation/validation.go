// Package validation holds the pure business rules of the training log.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"trainingLog/models"
)

// Limits applied to user input. Lengths are counted in characters.
const (
	MaxUsernameLen    = 25
	MaxPasswordLen    = 25
	MinPasswordLen    = 11
	MinWorkoutNameLen = 4
	MaxWorkoutNameLen = 15
	MinDescriptionLen = 5
	MaxDescriptionLen = 40
	MaxWeightLen      = 10

	// MaxExercisesPerWorkout is the number of exercises a workout may hold.
	MaxExercisesPerWorkout = 10
	// PageSize is the number of workouts listed per page.
	PageSize = 10
)

var weightUnits = map[string]bool{"lbs": true, "kgs": true, "bodyweight": true}

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// UserCredentialsOK checks the length rules of a new account.
func UserCredentialsOK(name, password string) bool {
	return Len(name) <= MaxUsernameLen &&
		Len(password) <= MaxPasswordLen &&
		Len(password) >= MinPasswordLen
}

// WorkoutNameOK reports whether name has an acceptable length.
func WorkoutNameOK(name string) bool {
	n := Len(name)
	return n >= MinWorkoutNameLen && n <= MaxWorkoutNameLen
}

// DescriptionOK reports whether an exercise description has an acceptable length.
func DescriptionOK(desc string) bool {
	n := Len(desc)
	return n >= MinDescriptionLen && n <= MaxDescriptionLen
}

// WeightOK accepts a number followed by kgs or lbs, or bodyweight.
// Digits and spaces are ignored when reading the unit.
func WeightOK(weight string) bool {
	if Len(weight) > MaxWeightLen {
		return false
	}
	unit := strings.Map(func(r rune) rune {
		if r == ' ' || (r >= '0' && r <= '9') {
			return -1
		}
		return r
	}, weight)
	return weightUnits[strings.ToLower(unit)]
}

// ExerciseEditOK checks an exercise without looking at its siblings.
func ExerciseEditOK(desc, weight string) bool {
	return DescriptionOK(desc) && WeightOK(weight)
}

// ScrubDescription lowercases desc and drops all whitespace so that
// "Bench Press" and "bench  press" compare equal.
func ScrubDescription(desc string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, desc)
}

// IsDuplicateExercise reports whether desc matches one of the existing exercises.
func IsDuplicateExercise(desc string, existing []models.Exercise) bool {
	scrubbed := ScrubDescription(desc)
	for _, e := range existing {
		if ScrubDescription(e.Description) == scrubbed {
			return true
		}
	}
	return false
}

// StripPunctuation removes punctuation from an exercise description.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// NumericParam reports whether s is a non-empty string of ASCII digits.
func NumericParam(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaxPages returns the number of pages needed for count workouts, at least 1.
func MaxPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}

// Offset returns the row offset of page (1-based).
func Offset(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * PageSize
}

// NextPage returns the page after page, wrapping to 1 after the last.
func NextPage(page, maxPages int) int {
	if page >= maxPages {
		return 1
	}
	return page + 1
}

// PriorPage returns the page before page, wrapping to maxPages before the first.
func PriorPage(page, maxPages int) int {
	if page <= 1 {
		return maxPages
	}
	return page - 1
}

// ParamList joins URL parameters for the bad parameter message.
func ParamList(params ...string) string {
	quoted := make([]string, 0, len(params))
	for _, p := range params {
		if p == "" {
			continue
		}
		quoted = append(quoted, fmt.Sprintf("'%s'", p))
	}
	return strings.Join(quoted, ", ")
}
