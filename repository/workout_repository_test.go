package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"trainingLog/internal/db"
	"trainingLog/internal/testutil"
	"trainingLog/models"
)

func TestWorkoutRepository_CreateGetUpdate(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "workoutrepo")
	users := NewUserRepository(d)
	workouts := NewWorkoutRepository(d)
	ctx := context.Background()

	u, err := users.Create(ctx, "carol", "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, ok, err := workouts.MaxID(ctx); err != nil || ok {
		t.Fatalf("max id on empty table: ok=%v err=%v", ok, err)
	}

	w, err := workouts.Create(ctx, &models.Workout{Name: "Legs", Date: "2024-03-01", UserID: u.ID})
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	if w.ID == 0 {
		t.Fatalf("expected id from insert, got %+v", w)
	}
	maxID, ok, err := workouts.MaxID(ctx)
	if err != nil || !ok || maxID != w.ID {
		t.Fatalf("max id = %d ok=%v err=%v, want %d", maxID, ok, err, w.ID)
	}

	got, err := workouts.GetByID(ctx, w.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v %+v", err, got)
	}
	if got.Username != "carol" || got.Name != "Legs" || got.Date != "2024-03-01" {
		t.Fatalf("unexpected workout: %+v", got)
	}

	// Same user, same date is refused by the store.
	_, err = workouts.Create(ctx, &models.Workout{Name: "Arms", Date: "2024-03-01", UserID: u.ID})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for second workout on a date, got %v", err)
	}

	n, err := workouts.CountOnDate(ctx, "carol", "2024-03-01", 0)
	if err != nil || n != 1 {
		t.Fatalf("count on date = %d err=%v", n, err)
	}
	n, err = workouts.CountOnDate(ctx, "carol", "2024-03-01", w.ID)
	if err != nil || n != 0 {
		t.Fatalf("count excluding self = %d err=%v", n, err)
	}

	if err := workouts.Update(ctx, w.ID, "Leg Day", "2024-03-02"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = workouts.GetByID(ctx, w.ID)
	if got.Name != "Leg Day" || got.Date != "2024-03-02" {
		t.Fatalf("update not applied: %+v", got)
	}
	if err := workouts.Update(ctx, 9999, "Nope", "2024-03-02"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for missing workout, got %v", err)
	}

	missing, err := workouts.GetByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing workout, got %+v err=%v", missing, err)
	}
}

func TestWorkoutRepository_ListPageOrdering(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "workoutpage")
	users := NewUserRepository(d)
	workouts := NewWorkoutRepository(d)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// zed logs first so insertion order differs from the expected order.
	for _, name := range []string{"zed", "amy"} {
		u, err := users.Create(ctx, name, "h")
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		for day := 1; day <= 12; day++ {
			date := fmt.Sprintf("2024-01-%02d", day)
			if _, err := workouts.Create(ctx, &models.Workout{Name: "Day " + date[8:], Date: date, UserID: u.ID}); err != nil {
				t.Fatalf("create workout: %v", err)
			}
		}
	}

	page1, err := workouts.ListPage(ctx, 10, 0)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 10 {
		t.Fatalf("page 1 len = %d", len(page1))
	}
	if page1[0].Username != "amy" || page1[0].Date != "2024-01-12" {
		t.Fatalf("page 1 should start with amy's latest workout, got %+v", page1[0])
	}

	// Rows 11-20: amy's two oldest, then zed's eight newest.
	page2, err := workouts.ListPage(ctx, 10, 10)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 10 {
		t.Fatalf("page 2 len = %d", len(page2))
	}
	if page2[0].Username != "amy" || page2[0].Date != "2024-01-02" {
		t.Fatalf("row 11 = %+v", page2[0])
	}
	if page2[1].Username != "amy" || page2[1].Date != "2024-01-01" {
		t.Fatalf("row 12 = %+v", page2[1])
	}
	if page2[2].Username != "zed" || page2[2].Date != "2024-01-12" {
		t.Fatalf("row 13 = %+v", page2[2])
	}
	for i := 3; i < len(page2); i++ {
		if page2[i].Username != "zed" || page2[i].Date >= page2[i-1].Date {
			t.Fatalf("rows out of order at %d: %+v after %+v", i, page2[i], page2[i-1])
		}
	}

	page3, err := workouts.ListPage(ctx, 10, 20)
	if err != nil || len(page3) != 4 {
		t.Fatalf("page 3: len=%d err=%v", len(page3), err)
	}
}
