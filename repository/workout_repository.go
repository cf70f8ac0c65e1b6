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

// workoutSelect joins each workout with its owner's username.
const workoutSelect = `
SELECT w.id, w.name, w.date, w.user_id, u.username
FROM workouts AS w
JOIN users AS u ON w.user_id = u.id`

// WorkoutRepository persists workouts.
type WorkoutRepository struct {
	db *sqlx.DB
}

// NewWorkoutRepository creates a new WorkoutRepository.
func NewWorkoutRepository(db *sqlx.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create inserts a workout and returns it with the id assigned by the store.
// Username is not populated.
func (r *WorkoutRepository) Create(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	if w == nil {
		return nil, errors.New("workout is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id, err := db.InsertReturningID(ctx, r.db, `INSERT INTO workouts (name, date, user_id) VALUES (?, ?, ?)`, w.Name, w.Date, w.UserID)
	if err != nil {
		return nil, err
	}
	out := *w
	out.ID = id
	return &out, nil
}

// GetByID fetches a workout joined with its owner.
func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*models.Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var w models.Workout
	err := r.db.GetContext(ctx, &w, r.db.Rebind(workoutSelect+` WHERE w.id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// ListPage returns workouts of all users ordered by username asc, date desc.
func (r *WorkoutRepository) ListPage(ctx context.Context, limit, offset int) ([]models.Workout, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Workout
	q := workoutSelect + ` ORDER BY u.username, w.date DESC, w.id DESC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), limit, offset); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes the name and date of a workout.
// Returns sql.ErrNoRows when the workout does not exist.
func (r *WorkoutRepository) Update(ctx context.Context, id int64, name, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE workouts SET name = ?, date = ? WHERE id = ?`), name, date, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 for rows that matched but did not change.
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}

// CountOnDate counts the workouts username logged on date, ignoring excludeID (0 ignores nothing).
func (r *WorkoutRepository) CountOnDate(ctx context.Context, username, date string, excludeID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
SELECT COUNT(w.id)
FROM workouts AS w
JOIN users AS u ON w.user_id = u.id
WHERE u.username = ? AND w.date = ? AND w.id <> ?`), username, date, excludeID)
	return n, err
}

// MaxID returns the highest workout id; false when there are no workouts.
func (r *WorkoutRepository) MaxID(ctx context.Context) (int64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var maxID sql.NullInt64
	if err := r.db.GetContext(ctx, &maxID, `SELECT MAX(id) FROM workouts`); err != nil {
		return 0, false, err
	}
	return maxID.Int64, maxID.Valid, nil
}

func (r *WorkoutRepository) exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM workouts WHERE id = ?`), id); err != nil {
		return false, err
	}
	return n > 0, nil
}
