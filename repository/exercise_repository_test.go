package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"trainingLog/internal/testutil"
	"trainingLog/models"
)

func seedWorkout(t *testing.T, r *Repository, username, date string) *models.Workout {
	t.Helper()
	ctx := context.Background()
	u, err := r.Users.GetByUsername(ctx, username)
	if err != nil {
		t.Fatalf("lookup user: %v", err)
	}
	if u == nil {
		if u, err = r.Users.Create(ctx, username, "h"); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	w, err := r.Workouts.Create(ctx, &models.Workout{Name: "Session", Date: date, UserID: u.ID})
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	return w
}

func TestExerciseRepository_CRUD(t *testing.T) {
	r := New(testutil.OpenInMemoryDB(t, "exerciserepo"))
	ctx := context.Background()
	w := seedWorkout(t, r, "dave", "2024-02-01")

	squat, err := r.Exercises.CreateWithinLimit(ctx, &models.Exercise{Description: "Squat", NumSets: 5, NumReps: 5, WeightDescription: "100 kgs", WorkoutID: w.ID}, 10)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Exercises.CreateWithinLimit(ctx, &models.Exercise{Description: "Bench press", NumSets: 3, NumReps: 8, WeightDescription: "60 kgs", WorkoutID: w.ID}, 10); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := r.Exercises.ListByWorkout(ctx, w.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: len=%d err=%v", len(list), err)
	}
	if list[0].Description != "Bench press" || list[1].Description != "Squat" {
		t.Fatalf("exercises should be ordered by description: %+v", list)
	}

	squat.NumReps = 3
	squat.WeightDescription = "110 kgs"
	if err := r.Exercises.Update(ctx, squat); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := r.Exercises.GetByID(ctx, squat.ID)
	if err != nil || got == nil || got.NumReps != 3 || got.WeightDescription != "110 kgs" {
		t.Fatalf("get after update: %+v err=%v", got, err)
	}
	if err := r.Exercises.Update(ctx, &models.Exercise{ID: 4242, Description: "Ghost"}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}

	n, err := r.Exercises.CountByWorkout(ctx, w.ID)
	if err != nil || n != 2 {
		t.Fatalf("count = %d err=%v", n, err)
	}

	// Deleting the workout cascades to its exercises.
	if _, err := r.Collections.Delete(ctx, models.CollectionWorkouts, w.ID); err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	gone, err := r.Exercises.GetByID(ctx, squat.ID)
	if err != nil || gone != nil {
		t.Fatalf("exercise should cascade away, got %+v err=%v", gone, err)
	}
}

func TestExerciseRepository_CreateWithinLimit(t *testing.T) {
	r := New(testutil.OpenInMemoryDB(t, "exerciselimit"))
	ctx := context.Background()
	w := seedWorkout(t, r, "erin", "2024-02-02")

	for i := 0; i < 3; i++ {
		e := &models.Exercise{Description: fmt.Sprintf("Row %d", i), WeightDescription: "bodyweight", WorkoutID: w.ID}
		if _, err := r.Exercises.CreateWithinLimit(ctx, e, 3); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	_, err := r.Exercises.CreateWithinLimit(ctx, &models.Exercise{Description: "One more", WeightDescription: "5 lbs", WorkoutID: w.ID}, 3)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if n, _ := r.Exercises.CountByWorkout(ctx, w.ID); n != 3 {
		t.Fatalf("count after refused insert = %d", n)
	}
}
