package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"trainingLog/internal/access"
	"trainingLog/internal/auth"
	"trainingLog/internal/validation"
	"trainingLog/models"
)

// maxPages returns the number of workout pages, at least 1.
func (s *Server) maxPages(r *http.Request) (int, error) {
	n, err := s.access.Count(r.Context(), models.CollectionWorkouts)
	if err != nil {
		return 0, err
	}
	return validation.MaxPages(n), nil
}

// loadWorkout fetches the workout of the route or redirects to the list when it does not exist.
func (s *Server) loadWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, ids routeIDs) (*models.Workout, bool) {
	wk, err := s.access.WorkoutDetails(r.Context(), ids.Workout)
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	if wk == nil {
		s.flashRedirect(w, r, sess, validation.MissingMsg(models.CollectionWorkouts, ids.Workout), pageURL(ids.Page))
		return nil, false
	}
	return wk, true
}

// ownWorkout is loadWorkout restricted to the workouts of username. Others are
// sent to the workout page with notOwnerMsg.
func (s *Server) ownWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, ids routeIDs, username, notOwnerMsg string) (*models.Workout, bool) {
	wk, ok := s.loadWorkout(w, r, sess, ids)
	if !ok {
		return nil, false
	}
	if wk.Username != username {
		s.flashRedirect(w, r, sess, notOwnerMsg, workoutURL(ids.Page, wk.ID))
		return nil, false
	}
	return wk, true
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request, sess *sessions.Session, _ string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	maxPages, err := s.maxPages(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page := ids.Page
	switch {
	case page > maxPages:
		auth.AddFlash(sess, validation.PageMissingMsg(page))
		page = maxPages
	case page < 1:
		auth.AddFlash(sess, validation.PageMissingMsg(page))
		page = 1
	}
	workouts, err := s.access.LoadWorkoutsSubset(r.Context(), validation.Offset(page))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, sess, http.StatusOK, "workouts", &pageData{
		Title:     "Workouts",
		Page:      page,
		MaxPages:  maxPages,
		NextPage:  validation.NextPage(page, maxPages),
		PriorPage: validation.PriorPage(page, maxPages),
		Workouts:  workouts,
	})
}

func (s *Server) handleNewWorkoutForm(w http.ResponseWriter, r *http.Request, sess *sessions.Session, _ string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	s.render(w, r, sess, http.StatusOK, "new_workout", &pageData{Title: "New workout", Page: ids.Page})
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	back := pageURL(ids.Page) + "/new"
	name := strings.TrimSpace(r.PostFormValue("workout_name"))
	date := strings.TrimSpace(r.PostFormValue("workout_date"))
	if !validation.ValidDate(date) {
		s.flashRedirect(w, r, sess, validation.InvalidWorkoutMsg, back)
		return
	}

	msg, err := s.access.InvalidWorkoutMsg(r.Context(), name, date, username, 0)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if msg != "" {
		s.flashRedirect(w, r, sess, msg, back)
		return
	}
	userID, found, err := s.access.FindUserID(r.Context(), username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !found {
		s.flashRedirect(w, r, sess, validation.LoginRequiredMsg, "/login")
		return
	}
	id, err := s.access.AddWorkout(r.Context(), name, date, userID)
	if ve, isValidation := access.IsValidation(err); isValidation {
		s.flashRedirect(w, r, sess, ve.Message, back)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.WorkoutAddedMsg, workoutURL(ids.Page, id))
}

func (s *Server) handleWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.loadWorkout(w, r, sess, ids)
	if !ok {
		return
	}
	exercises, err := s.access.LoadExercises(r.Context(), wk.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	owner := wk.Username == username
	s.render(w, r, sess, http.StatusOK, "workout", &pageData{
		Title:           wk.Name,
		Page:            ids.Page,
		Workout:         wk,
		Exercises:       exercises,
		CanEdit:         owner,
		CanAddExercises: owner && len(exercises) < validation.MaxExercisesPerWorkout,
	})
}

func (s *Server) handleEditWorkoutForm(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.ownWorkout(w, r, sess, ids, username, validation.NotOwnerWorkoutMsg(ids.Workout))
	if !ok {
		return
	}
	s.render(w, r, sess, http.StatusOK, "edit_workout", &pageData{
		Title:   "Edit workout",
		Page:    ids.Page,
		Workout: wk,
		Form:    map[string]string{"workout_name": wk.Name, "workout_date": wk.Date},
	})
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.ownWorkout(w, r, sess, ids, username, validation.NotOwnerWorkoutMsg(ids.Workout))
	if !ok {
		return
	}
	back := workoutURL(ids.Page, wk.ID) + "/edit"
	name := strings.TrimSpace(r.PostFormValue("workout_name"))
	date := strings.TrimSpace(r.PostFormValue("workout_date"))
	if !validation.ValidDate(date) {
		s.flashRedirect(w, r, sess, validation.InvalidWorkoutMsg, back)
		return
	}

	msg, err := s.access.InvalidWorkoutMsg(r.Context(), name, date, username, wk.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if msg != "" {
		s.flashRedirect(w, r, sess, msg, back)
		return
	}
	err = s.access.UpdateWorkout(r.Context(), name, date, wk.ID)
	if ve, isValidation := access.IsValidation(err); isValidation {
		s.flashRedirect(w, r, sess, ve.Message, back)
		return
	}
	if errors.Is(err, access.ErrNotFound) {
		s.flashRedirect(w, r, sess, validation.MissingMsg(models.CollectionWorkouts, wk.ID), pageURL(ids.Page))
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.WorkoutUpdatedMsg(wk.ID), workoutURL(ids.Page, wk.ID))
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.ownWorkout(w, r, sess, ids, username, validation.NotOwnerWorkoutMsg(ids.Workout))
	if !ok {
		return
	}
	if err := s.access.DeleteRecord(r.Context(), wk.ID, models.CollectionWorkouts); err != nil && !errors.Is(err, access.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	maxPages, err := s.maxPages(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.WorkoutDeletedMsg(wk.ID), pageURL(maxPages))
}
