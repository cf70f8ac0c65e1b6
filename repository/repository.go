package repository

import "github.com/jmoiron/sqlx"

// Repository bundles every repository over one connection pool.
type Repository struct {
	Users       *UserRepository
	Workouts    *WorkoutRepository
	Exercises   *ExerciseRepository
	Collections *CollectionRepository
}

// New creates all repositories over db.
func New(db *sqlx.DB) *Repository {
	return &Repository{
		Users:       NewUserRepository(db),
		Workouts:    NewWorkoutRepository(db),
		Exercises:   NewExerciseRepository(db),
		Collections: NewCollectionRepository(db),
	}
}
