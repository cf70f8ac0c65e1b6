package models

// Exercise is one logged set/rep/weight entry of a workout.
type Exercise struct {
	ID                int64  `db:"id" json:"id"`
	Description       string `db:"description" json:"description"`
	NumSets           int    `db:"num_sets" json:"num_sets"`
	NumReps           int    `db:"num_reps" json:"num_reps"`
	WeightDescription string `db:"weight_description" json:"weight_description"`
	WorkoutID         int64  `db:"workout_id" json:"workout_id"`
}
