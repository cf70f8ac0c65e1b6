package repository

import (
	"context"

	"trainingLog/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Usernames(ctx context.Context) ([]string, error)
}

// WorkoutRepositoryI defines operations on Workout entities.
type WorkoutRepositoryI interface {
	Create(ctx context.Context, w *models.Workout) (*models.Workout, error)
	GetByID(ctx context.Context, id int64) (*models.Workout, error)
	ListPage(ctx context.Context, limit, offset int) ([]models.Workout, error)
	Update(ctx context.Context, id int64, name, date string) error
	CountOnDate(ctx context.Context, username, date string, excludeID int64) (int, error)
	MaxID(ctx context.Context) (int64, bool, error)
}

// ExerciseRepositoryI defines operations on Exercise entities.
type ExerciseRepositoryI interface {
	CreateWithinLimit(ctx context.Context, e *models.Exercise, limit int) (*models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	ListByWorkout(ctx context.Context, workoutID int64) ([]models.Exercise, error)
	Update(ctx context.Context, e *models.Exercise) error
	CountByWorkout(ctx context.Context, workoutID int64) (int, error)
}

// CollectionRepositoryI defines the generic operations shared by every collection.
type CollectionRepositoryI interface {
	Exists(ctx context.Context, c models.Collection, id int64) (bool, error)
	Count(ctx context.Context, c models.Collection, filters ...Filter) (int, error)
	Delete(ctx context.Context, c models.Collection, id int64) (bool, error)
}

var (
	_ UserRepositoryI       = (*UserRepository)(nil)
	_ WorkoutRepositoryI    = (*WorkoutRepository)(nil)
	_ ExerciseRepositoryI   = (*ExerciseRepository)(nil)
	_ CollectionRepositoryI = (*CollectionRepository)(nil)
)
