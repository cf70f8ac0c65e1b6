package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"trainingLog/internal/access"
	"trainingLog/internal/validation"
	"trainingLog/models"
)

// exerciseForm reads the exercise fields of a POST. ok is false when sets or
// reps are not non-negative integers.
func exerciseForm(r *http.Request) (e models.Exercise, ok bool) {
	sets, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("number_sets")))
	if err != nil || sets < 0 {
		return e, false
	}
	reps, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("number_reps")))
	if err != nil || reps < 0 {
		return e, false
	}
	e.Description = strings.TrimSpace(r.PostFormValue("exercise_desc"))
	e.WeightDescription = strings.TrimSpace(r.PostFormValue("weights_used"))
	e.NumSets = sets
	e.NumReps = reps
	return e, true
}

// addableWorkout loads a workout the user may add exercises to.
func (s *Server) addableWorkout(w http.ResponseWriter, r *http.Request, sess *sessions.Session, ids routeIDs, username string) (*models.Workout, bool) {
	wk, ok := s.ownWorkout(w, r, sess, ids, username, validation.NotOwnerAddMsg)
	if !ok {
		return nil, false
	}
	full, err := s.access.AtExerciseLimit(r.Context(), wk.ID)
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	if full {
		s.flashRedirect(w, r, sess, validation.ExerciseLimitMsg, workoutURL(ids.Page, wk.ID))
		return nil, false
	}
	return wk, true
}

// ownExercise loads the workout and exercise of the route. The exercise must
// belong to the workout and the workout to username.
func (s *Server) ownExercise(w http.ResponseWriter, r *http.Request, sess *sessions.Session, ids routeIDs, username string) (*models.Workout, *models.Exercise, bool) {
	wk, ok := s.ownWorkout(w, r, sess, ids, username, validation.NotOwnerEditMsg)
	if !ok {
		return nil, nil, false
	}
	ex, err := s.access.ExerciseDetails(r.Context(), ids.Exercise)
	if err != nil {
		s.serverError(w, r, err)
		return nil, nil, false
	}
	if ex == nil || ex.WorkoutID != wk.ID {
		s.flashRedirect(w, r, sess, validation.MissingMsg(models.CollectionExercises, ids.Exercise), workoutURL(ids.Page, wk.ID))
		return nil, nil, false
	}
	return wk, ex, true
}

func (s *Server) handleNewExerciseForm(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.addableWorkout(w, r, sess, ids, username)
	if !ok {
		return
	}
	s.render(w, r, sess, http.StatusOK, "new_exercise", &pageData{Title: "New exercise", Page: ids.Page, Workout: wk})
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ok := s.addableWorkout(w, r, sess, ids, username)
	if !ok {
		return
	}
	back := workoutURL(ids.Page, wk.ID) + "/exercises/new"
	e, ok := exerciseForm(r)
	if !ok {
		s.flashRedirect(w, r, sess, validation.InvalidExerciseMsg, back)
		return
	}
	e.Description = validation.StripPunctuation(e.Description)
	e.WeightDescription = strings.ToLower(e.WeightDescription)
	e.WorkoutID = wk.ID

	msg, err := s.access.InvalidNewExerciseMsg(r.Context(), e.Description, e.WeightDescription, wk.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if msg != "" {
		s.flashRedirect(w, r, sess, msg, back)
		return
	}
	_, err = s.access.AddExercise(r.Context(), e)
	if ve, isValidation := access.IsValidation(err); isValidation {
		s.flashRedirect(w, r, sess, ve.Message, workoutURL(ids.Page, wk.ID))
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.ExerciseAddedMsg(e.Description), workoutURL(ids.Page, wk.ID))
}

func (s *Server) handleEditExerciseForm(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ex, ok := s.ownExercise(w, r, sess, ids, username)
	if !ok {
		return
	}
	s.render(w, r, sess, http.StatusOK, "edit_exercise", &pageData{Title: "Edit exercise", Page: ids.Page, Workout: wk, Exercise: ex})
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ex, ok := s.ownExercise(w, r, sess, ids, username)
	if !ok {
		return
	}
	back := exerciseURL(ids.Page, wk.ID, ex.ID) + "/edit"
	e, ok := exerciseForm(r)
	if !ok {
		s.flashRedirect(w, r, sess, validation.InvalidExerciseEditMsg, back)
		return
	}
	if msg := s.access.InvalidExerciseEditMsg(e.Description, e.WeightDescription); msg != "" {
		s.flashRedirect(w, r, sess, msg, back)
		return
	}
	e.ID = ex.ID
	e.WorkoutID = wk.ID
	err := s.access.UpdateExercise(r.Context(), e)
	if errors.Is(err, access.ErrNotFound) {
		s.flashRedirect(w, r, sess, validation.MissingMsg(models.CollectionExercises, ex.ID), workoutURL(ids.Page, wk.ID))
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.ExerciseUpdatedMsg(ex.ID), workoutURL(ids.Page, wk.ID))
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	ids, ok := s.parseIDs(w, r, sess)
	if !ok {
		return
	}
	wk, ex, ok := s.ownExercise(w, r, sess, ids, username)
	if !ok {
		return
	}
	if err := s.access.DeleteRecord(r.Context(), ex.ID, models.CollectionExercises); err != nil && !errors.Is(err, access.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	s.flashRedirect(w, r, sess, validation.ExerciseRemovedMsg(ex.Description), workoutURL(ids.Page, wk.ID))
}
