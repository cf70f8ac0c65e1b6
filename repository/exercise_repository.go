package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"trainingLog/internal/db"
	"trainingLog/models"
)

// ErrLimitReached is returned by CreateWithinLimit when the workout is full.
var ErrLimitReached = errors.New("exercise limit reached")

const exerciseSelect = `SELECT id, description, num_sets, num_reps, weight_description, workout_id FROM exercises`

const exerciseInsert = `INSERT INTO exercises (description, num_sets, num_reps, weight_description, workout_id) VALUES (?, ?, ?, ?, ?)`

// ExerciseRepository persists exercises.
type ExerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *sqlx.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// CreateWithinLimit inserts the exercise only if its workout holds fewer than
// limit exercises. The count and the insert share one transaction.
func (r *ExerciseRepository) CreateWithinLimit(ctx context.Context, e *models.Exercise, limit int) (*models.Exercise, error) {
	if e == nil {
		return nil, errors.New("exercise is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(*) FROM exercises WHERE workout_id = ?`), e.WorkoutID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if n >= limit {
		_ = tx.Rollback()
		return nil, ErrLimitReached
	}
	id, err := db.InsertReturningID(ctx, tx, exerciseInsert,
		e.Description, e.NumSets, e.NumReps, e.WeightDescription, e.WorkoutID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *e
	out.ID = id
	return &out, nil
}

// GetByID fetches an exercise by its ID.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var e models.Exercise
	err := r.db.GetContext(ctx, &e, r.db.Rebind(exerciseSelect+` WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListByWorkout returns the exercises of a workout ordered by description.
func (r *ExerciseRepository) ListByWorkout(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Exercise
	q := exerciseSelect + ` WHERE workout_id = ? ORDER BY description, id`
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), workoutID); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites description, sets, reps and weight of an exercise.
// Returns sql.ErrNoRows when the exercise does not exist.
func (r *ExerciseRepository) Update(ctx context.Context, e *models.Exercise) error {
	if e == nil {
		return errors.New("exercise is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
UPDATE exercises
SET description = ?, num_sets = ?, num_reps = ?, weight_description = ?
WHERE id = ?`), e.Description, e.NumSets, e.NumReps, e.WeightDescription, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		found, err := r.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if found == nil {
			return sql.ErrNoRows
		}
	}
	return nil
}

// CountByWorkout returns how many exercises a workout holds.
func (r *ExerciseRepository) CountByWorkout(ctx context.Context, workoutID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM exercises WHERE workout_id = ?`), workoutID)
	return n, err
}
