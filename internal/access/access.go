// Package access is the data access and validation layer of the training log.
// It combines the repositories with the rules in package validation.
package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"trainingLog/internal/auth"
	"trainingLog/internal/db"
	"trainingLog/internal/logging"
	"trainingLog/internal/validation"
	"trainingLog/models"
	"trainingLog/repository"
)

// Access exposes every query and mutation the web layer needs.
type Access struct {
	users       repository.UserRepositoryI
	workouts    repository.WorkoutRepositoryI
	exercises   repository.ExerciseRepositoryI
	collections repository.CollectionRepositoryI
	log         logrus.FieldLogger
}

// New creates an Access over repo. A nil logger discards output.
func New(repo *repository.Repository, log logrus.FieldLogger) *Access {
	if log == nil {
		log = logging.Discard()
	}
	return &Access{
		users:       repo.Users,
		workouts:    repo.Workouts,
		exercises:   repo.Exercises,
		collections: repo.Collections,
		log:         log.WithField("component", "access"),
	}
}

// UniqueUsernames returns every username, sorted.
func (a *Access) UniqueUsernames(ctx context.Context) ([]string, error) {
	names, err := a.users.Usernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}

// FindUserID returns the id of username; false when no such user exists.
func (a *Access) FindUserID(ctx context.Context, username string) (int64, bool, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, false, fmt.Errorf("find user %q: %w", username, err)
	}
	if u == nil {
		return 0, false, nil
	}
	return u.ID, true, nil
}

// ObjectExists reports whether id exists in the collection.
func (a *Access) ObjectExists(ctx context.Context, c models.Collection, id int64) (bool, error) {
	ok, err := a.collections.Exists(ctx, c, id)
	if err != nil {
		return false, fmt.Errorf("lookup %s #%d: %w", c, id, err)
	}
	return ok, nil
}

// Count returns the number of rows of the collection matching filters.
func (a *Access) Count(ctx context.Context, c models.Collection, filters ...repository.Filter) (int, error) {
	n, err := a.collections.Count(ctx, c, filters...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c, err)
	}
	return n, nil
}

// MaxWorkoutID returns the highest workout id; false when there are none.
func (a *Access) MaxWorkoutID(ctx context.Context) (int64, bool, error) {
	id, ok, err := a.workouts.MaxID(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("max workout id: %w", err)
	}
	return id, ok, nil
}

// WorkoutDetails returns the workout with its owner's username, or nil.
func (a *Access) WorkoutDetails(ctx context.Context, id int64) (*models.Workout, error) {
	w, err := a.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workout #%d: %w", id, err)
	}
	return w, nil
}

// LoadWorkoutsSubset returns one page of workouts starting at offset.
func (a *Access) LoadWorkoutsSubset(ctx context.Context, offset int) ([]models.Workout, error) {
	ws, err := a.workouts.ListPage(ctx, validation.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("load workouts at offset %d: %w", offset, err)
	}
	return ws, nil
}

// LoadExercises returns the exercises of a workout ordered by description.
func (a *Access) LoadExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	es, err := a.exercises.ListByWorkout(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("load exercises of workout #%d: %w", workoutID, err)
	}
	return es, nil
}

// ExerciseDetails returns the exercise, or nil.
func (a *Access) ExerciseDetails(ctx context.Context, id int64) (*models.Exercise, error) {
	e, err := a.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load exercise #%d: %w", id, err)
	}
	return e, nil
}

// ValidNewUser reports whether an account can be created with name and password.
func (a *Access) ValidNewUser(ctx context.Context, name, password string) (bool, error) {
	if !validation.UserCredentialsOK(name, password) {
		a.log.WithField("username", name).Debug("signup rejected: credential length")
		return false, nil
	}
	_, taken, err := a.FindUserID(ctx, name)
	if err != nil {
		return false, err
	}
	if taken {
		a.log.WithField("username", name).Debug("signup rejected: username taken")
	}
	return !taken, nil
}

// ValidLoginCredentials checks password against the stored hash of username.
func (a *Access) ValidLoginCredentials(ctx context.Context, username, password string) (bool, error) {
	_, err := a.Authenticate(ctx, username, password)
	if errors.Is(err, ErrAuthFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate returns the user when password matches, ErrAuthFailed otherwise.
func (a *Access) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if u == nil || !auth.VerifyPassword(password, u.Password) {
		a.log.WithField("username", username).Debug("login rejected")
		return nil, ErrAuthFailed
	}
	return u, nil
}

// InvalidNewExerciseMsg returns "" when the exercise may be added to the
// workout, the invalid exercise message otherwise.
func (a *Access) InvalidNewExerciseMsg(ctx context.Context, desc, weight string, workoutID int64) (string, error) {
	existing, err := a.LoadExercises(ctx, workoutID)
	if err != nil {
		return "", err
	}
	if validation.IsDuplicateExercise(desc, existing) || !validation.ExerciseEditOK(desc, weight) {
		a.log.WithFields(logrus.Fields{"description": desc, "weight": weight, "workout_id": workoutID}).
			Debug("exercise rejected")
		return validation.InvalidExerciseMsg, nil
	}
	return "", nil
}

// InvalidExerciseEditMsg is InvalidNewExerciseMsg without the duplicate check.
func (a *Access) InvalidExerciseEditMsg(desc, weight string) string {
	if validation.ExerciseEditOK(desc, weight) {
		return ""
	}
	return validation.InvalidExerciseEditMsg
}

// ValidWorkoutDetails checks the name length and that username has no other
// workout on date. excludeID (0 for none) is the workout being edited.
func (a *Access) ValidWorkoutDetails(ctx context.Context, name, date, username string, excludeID int64) (bool, error) {
	if !validation.WorkoutNameOK(name) {
		return false, nil
	}
	n, err := a.workouts.CountOnDate(ctx, username, date, excludeID)
	if err != nil {
		return false, fmt.Errorf("count workouts on %s: %w", date, err)
	}
	return n == 0, nil
}

// InvalidWorkoutMsg returns "" for valid workout details, the invalid workout message otherwise.
func (a *Access) InvalidWorkoutMsg(ctx context.Context, name, date, username string, excludeID int64) (string, error) {
	ok, err := a.ValidWorkoutDetails(ctx, name, date, username, excludeID)
	if err != nil {
		return "", err
	}
	if !ok {
		a.log.WithFields(logrus.Fields{"name": name, "date": date, "username": username}).
			Debug("workout rejected")
		return validation.InvalidWorkoutMsg, nil
	}
	return "", nil
}

// AddWorkout stores a workout and returns its id.
func (a *Access) AddWorkout(ctx context.Context, name, date string, userID int64) (int64, error) {
	w, err := a.workouts.Create(ctx, &models.Workout{Name: name, Date: date, UserID: userID})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, invalid(validation.InvalidWorkoutMsg)
		}
		return 0, fmt.Errorf("add workout: %w", err)
	}
	return w.ID, nil
}

// UpdateWorkout changes the name and date of workout id.
func (a *Access) UpdateWorkout(ctx context.Context, name, date string, id int64) error {
	err := a.workouts.Update(ctx, id, name, date)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case db.IsUniqueViolation(err):
		return invalid(validation.InvalidWorkoutMsg)
	}
	return fmt.Errorf("update workout #%d: %w", id, err)
}

// AddExercise stores e unless its workout already holds the maximum number of exercises.
func (a *Access) AddExercise(ctx context.Context, e models.Exercise) (int64, error) {
	created, err := a.exercises.CreateWithinLimit(ctx, &e, validation.MaxExercisesPerWorkout)
	if err != nil {
		if errors.Is(err, repository.ErrLimitReached) {
			return 0, invalid(validation.ExerciseLimitMsg)
		}
		return 0, fmt.Errorf("add exercise: %w", err)
	}
	return created.ID, nil
}

// UpdateExercise rewrites description, sets, reps and weight of e.ID.
func (a *Access) UpdateExercise(ctx context.Context, e models.Exercise) error {
	if err := a.exercises.Update(ctx, &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update exercise #%d: %w", e.ID, err)
	}
	return nil
}

// AddUser hashes password and stores the account.
func (a *Access) AddUser(ctx context.Context, name, password string) (int64, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	u, err := a.users.Create(ctx, name, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, invalid(validation.InvalidSignupMsg)
		}
		return 0, fmt.Errorf("add user: %w", err)
	}
	return u.ID, nil
}

// DeleteRecord removes id from the collection. Dependent rows go with it.
func (a *Access) DeleteRecord(ctx context.Context, id int64, c models.Collection) error {
	deleted, err := a.collections.Delete(ctx, c, id)
	if err != nil {
		return fmt.Errorf("delete %s #%d: %w", c, id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AtExerciseLimit reports whether the workout holds the maximum number of exercises.
func (a *Access) AtExerciseLimit(ctx context.Context, workoutID int64) (bool, error) {
	n, err := a.exercises.CountByWorkout(ctx, workoutID)
	if err != nil {
		return false, fmt.Errorf("count exercises of workout #%d: %w", workoutID, err)
	}
	return n >= validation.MaxExercisesPerWorkout, nil
}
