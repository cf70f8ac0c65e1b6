package models

import "fmt"

// Collection names one of the persisted entity sets. Generic helpers
// (existence checks, counts, deletes) accept a Collection rather than a raw
// table name so that no caller-provided string reaches the SQL text.
type Collection int

const (
	CollectionUsers Collection = iota + 1
	CollectionWorkouts
	CollectionExercises
)

// Table returns the SQL table backing the collection.
func (c Collection) Table() (string, error) {
	switch c {
	case CollectionUsers:
		return "users", nil
	case CollectionWorkouts:
		return "workouts", nil
	case CollectionExercises:
		return "exercises", nil
	}
	return "", fmt.Errorf("unknown collection %d", int(c))
}

// HasColumn reports whether column may be used in a filter on c.
func (c Collection) HasColumn(column string) bool {
	switch c {
	case CollectionUsers:
		return column == "id" || column == "username"
	case CollectionWorkouts:
		return column == "id" || column == "name" || column == "date" || column == "user_id"
	case CollectionExercises:
		return column == "id" || column == "description" || column == "workout_id"
	}
	return false
}

// Noun is the capitalized singular used in user-facing messages.
func (c Collection) Noun() string {
	switch c {
	case CollectionUsers:
		return "User"
	case CollectionWorkouts:
		return "Workout"
	case CollectionExercises:
		return "Exercise"
	}
	return "Record"
}

func (c Collection) String() string {
	t, err := c.Table()
	if err != nil {
		return fmt.Sprintf("Collection(%d)", int(c))
	}
	return t
}
