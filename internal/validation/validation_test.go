package validation

import (
	"strings"
	"testing"

	"trainingLog/models"
)

func TestUserCredentialsOK(t *testing.T) {
	cases := []struct {
		name, pw string
		want     bool
	}{
		{"alice", "longenough1", true},
		{"alice", "tenchars10", false},
		{"alice", strings.Repeat("p", 25), true},
		{"alice", strings.Repeat("p", 26), false},
		{strings.Repeat("u", 25), "longenough1", true},
		{strings.Repeat("u", 26), "longenough1", false},
		{"ünïcödé", "pässwörd-ok", true},
	}
	for _, c := range cases {
		if got := UserCredentialsOK(c.name, c.pw); got != c.want {
			t.Fatalf("UserCredentialsOK(%q, %q) = %v, want %v", c.name, c.pw, got, c.want)
		}
	}
}

func TestWorkoutNameOK(t *testing.T) {
	for name, want := range map[string]bool{
		"Leg":              false,
		"Legs":             true,
		"Upper body push":  true,
		"Upper body pulls": false,
	} {
		if got := WorkoutNameOK(name); got != want {
			t.Fatalf("WorkoutNameOK(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestWeightOK(t *testing.T) {
	cases := map[string]bool{
		"100 kgs":     true,
		"45lbs":       true,
		"bodyweight":  true,
		"BodyWeight":  true,
		"20 KGS":      true,
		"kgs":         true,
		"100 stone":   false,
		"100":         false,
		"1000000 kgs": false,
		"10.5 kgs":    false,
		"":            false,
	}
	for in, want := range cases {
		if got := WeightOK(in); got != want {
			t.Fatalf("WeightOK(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExerciseEditOK(t *testing.T) {
	if !ExerciseEditOK("Squat", "100 kgs") {
		t.Fatalf("expected squat to be acceptable")
	}
	if ExerciseEditOK("Row", "100 kgs") {
		t.Fatalf("description shorter than 5 characters must be refused")
	}
	if ExerciseEditOK(strings.Repeat("d", 41), "100 kgs") {
		t.Fatalf("description longer than 40 characters must be refused")
	}
}

func TestIsDuplicateExercise(t *testing.T) {
	existing := []models.Exercise{{Description: "Bench Press"}, {Description: "Squat"}}
	if !IsDuplicateExercise("bench  press", existing) {
		t.Fatalf("case and whitespace must be ignored")
	}
	if !IsDuplicateExercise("BenchPress", existing) {
		t.Fatalf("whitespace removal should match joined words")
	}
	if IsDuplicateExercise("Deadlift", existing) {
		t.Fatalf("deadlift is not a duplicate")
	}
}

func TestStripPunctuation(t *testing.T) {
	if got := StripPunctuation("Pull-ups, wide (grip)!"); got != "Pullups wide grip" {
		t.Fatalf("StripPunctuation = %q", got)
	}
}

func TestValidDateAndNumericParam(t *testing.T) {
	if !ValidDate("2024-02-29") || ValidDate("2023-02-29") || ValidDate("02/03/2024") {
		t.Fatalf("date validation mismatch")
	}
	for in, want := range map[string]bool{"1": true, "0042": true, "": false, "1a": false, "-1": false, "١": false} {
		if got := NumericParam(in); got != want {
			t.Fatalf("NumericParam(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPagination(t *testing.T) {
	if MaxPages(0) != 1 || MaxPages(10) != 1 || MaxPages(11) != 2 || MaxPages(25) != 3 {
		t.Fatalf("MaxPages mismatch")
	}
	if Offset(1) != 0 || Offset(2) != 10 || Offset(0) != 0 {
		t.Fatalf("Offset mismatch")
	}
	if NextPage(3, 3) != 1 || NextPage(1, 3) != 2 {
		t.Fatalf("NextPage should wrap")
	}
	if PriorPage(1, 3) != 3 || PriorPage(2, 3) != 1 {
		t.Fatalf("PriorPage should wrap")
	}
}

func TestMessages(t *testing.T) {
	if !strings.HasPrefix(InvalidExerciseEditMsg, "Invalid exercise entry. Please ensure your description") {
		t.Fatalf("edit message should omit the duplicate clause: %q", InvalidExerciseEditMsg)
	}
	if got := BadParamMsg(ParamList("x1", "", "2")); !strings.Contains(got, "'x1', '2'") {
		t.Fatalf("unexpected param message: %q", got)
	}
	if got := MissingMsg(models.CollectionWorkouts, 7); got != "Workout #7 doesn't exist." {
		t.Fatalf("unexpected missing message: %q", got)
	}
	if got := MissingMsg(models.CollectionExercises, 3); got != "Exercise #3 doesn't exist." {
		t.Fatalf("unexpected missing message: %q", got)
	}
}
