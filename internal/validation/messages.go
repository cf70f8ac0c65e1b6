package validation

import (
	"fmt"

	"trainingLog/models"
)

// User facing messages.
const (
	InvalidExerciseMsg = "Invalid exercise entry. Please ensure you have not already added this particular exercise description to your workout, that your description is between 5 and 40 characters, and that the weight description provides a number and either 'kgs' or 'lbs' as the unit, or 'bodyweight', if no additional weight was used."

	InvalidExerciseEditMsg = "Invalid exercise entry. Please ensure your description is between 5 and 40 characters, and that the weight description provides a number and either 'kgs' or 'lbs' as the unit, or 'bodyweight', if no additional weight was used."

	InvalidWorkoutMsg = "Invalid workout entry. You may only log 1 workout per day and the name of the workout must be within 4 & 15 characters long. Please try again."

	InvalidSignupMsg = "Usernames & passwords cannot exceed 25 characters, all usernames must be unique, and passwords must be at least 10 characters. Please try again."

	BadLoginMsg      = "Incorrect login credentials. Please try again."
	LoginRequiredMsg = "Please login to access the Training Log App."
	LoggedOutMsg     = "You have successfully logged out."
	ExerciseLimitMsg = "You've already logged 10 exercises for this workout."
	NotOwnerAddMsg   = "You may not add exercises to someone else's workout."
	NotOwnerEditMsg  = "You are not allowed to edit another user's workout. You may only view this workout & its exercises."
	WorkoutAddedMsg  = "You've successfully created a new workout."
)

// BadParamMsg lists the URL parameters that are not plain numbers.
func BadParamMsg(params string) string {
	return fmt.Sprintf("At least one of your url parameters: %s is incorrect. Please ensure that you only enter numbers when trying to access a specific page number, workout, or exercise.", params)
}

// PageMissingMsg reports a workout page past either end of the list.
func PageMissingMsg(page int) string {
	return fmt.Sprintf("Page %d doesn't exist.", page)
}

// MissingMsg reports that record id of collection c does not exist.
func MissingMsg(c models.Collection, id int64) string {
	return fmt.Sprintf("%s #%d doesn't exist.", c.Noun(), id)
}

// NotOwnerWorkoutMsg refuses changes to another user's workout.
func NotOwnerWorkoutMsg(id int64) string {
	return fmt.Sprintf("Workout #%d isn't your workout to edit. You may only view its details.", id)
}

// ExerciseAddedMsg confirms a new exercise.
func ExerciseAddedMsg(desc string) string {
	return fmt.Sprintf("You've successfully added %s to your workout.", desc)
}

// WorkoutUpdatedMsg confirms a workout edit.
func WorkoutUpdatedMsg(id int64) string {
	return fmt.Sprintf("You've successfully updated workout #%d", id)
}

// WorkoutDeletedMsg confirms a workout deletion.
func WorkoutDeletedMsg(id int64) string {
	return fmt.Sprintf("You successfully deleted workout #%d.", id)
}

// ExerciseUpdatedMsg confirms an exercise edit.
func ExerciseUpdatedMsg(id int64) string {
	return fmt.Sprintf("You've successfully updated exercise #%d", id)
}

// ExerciseRemovedMsg confirms an exercise was removed from its workout.
func ExerciseRemovedMsg(desc string) string {
	return fmt.Sprintf("You removed %s from this workout.", desc)
}

// AccountDeletedMsg confirms the account and its data are gone.
func AccountDeletedMsg(username string) string {
	return fmt.Sprintf("All account data for '%s' has been deleted.", username)
}
