package models

// DateLayout is the storage and form format of Workout.Date.
const DateLayout = "2006-01-02"

// Workout is a named, dated collection of exercises belonging to one user.
// Username is only populated by queries that join the owning user.
type Workout struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Date     string `db:"date" json:"date"`
	UserID   int64  `db:"user_id" json:"user_id"`
	Username string `db:"username" json:"username,omitempty"`
}
