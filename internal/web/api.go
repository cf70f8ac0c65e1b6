package web

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"trainingLog/internal/access"
	"trainingLog/internal/auth"
	"trainingLog/internal/validation"
	"trainingLog/models"
)

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type workoutsResponse struct {
	Page     int              `json:"page"`
	MaxPages int              `json:"max_pages"`
	Workouts []models.Workout `json:"workouts"`
}

type workoutResponse struct {
	Workout   *models.Workout   `json:"workout"`
	Exercises []models.Exercise `json:"exercises"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleAPIToken exchanges credentials, sent as JSON or as a form, for a bearer token.
func (s *Server) handleAPIToken(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&creds); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		creds.Username = r.PostFormValue("username")
		creds.Password = r.PostFormValue("password")
	}
	creds.Username = strings.TrimSpace(creds.Username)

	u, err := s.access.Authenticate(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, access.ErrAuthFailed) {
		writeJSONError(w, http.StatusUnauthorized, validation.BadLoginMsg)
		return
	}
	if err != nil {
		s.logger(r).WithError(err).Error("token request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	tok, exp, err := auth.IssueToken(s.jwtSecret, u.Username, s.tokenTTL)
	if err != nil {
		s.logger(r).WithError(err).Error("issue token")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: tok, ExpiresAt: exp.UTC()})
}

// apiAccountExists checks that the bearer of the token still has an account.
// It writes 401 and returns false otherwise.
func (s *Server) apiAccountExists(w http.ResponseWriter, r *http.Request) bool {
	p, ok := auth.FromContext(r.Context())
	if !ok || p == nil {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	_, found, err := s.access.FindUserID(r.Context(), p.Username)
	if err != nil {
		s.logger(r).WithError(err).Error("lookup token owner")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if !found {
		s.logger(r).WithField("username", p.Username).Info("token for deleted account")
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

func (s *Server) handleAPIWorkouts(w http.ResponseWriter, r *http.Request) {
	if !s.apiAccountExists(w, r) {
		return
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if !validation.NumericParam(raw) || err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, validation.BadParamMsg(validation.ParamList(raw)))
			return
		}
		page = n
	}
	maxPages, err := s.maxPages(r)
	if err != nil {
		s.logger(r).WithError(err).Error("count workouts")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if page > maxPages {
		writeJSONError(w, http.StatusNotFound, validation.PageMissingMsg(page))
		return
	}
	workouts, err := s.access.LoadWorkoutsSubset(r.Context(), validation.Offset(page))
	if err != nil {
		s.logger(r).WithError(err).Error("load workouts")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	writeJSON(w, http.StatusOK, workoutsResponse{Page: page, MaxPages: maxPages, Workouts: workouts})
}

func (s *Server) handleAPIWorkout(w http.ResponseWriter, r *http.Request) {
	if !s.apiAccountExists(w, r) {
		return
	}
	raw := mux.Vars(r)["workout"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if !validation.NumericParam(raw) || err != nil {
		writeJSONError(w, http.StatusBadRequest, validation.BadParamMsg(validation.ParamList(raw)))
		return
	}
	wk, err := s.access.WorkoutDetails(r.Context(), id)
	if err != nil {
		s.logger(r).WithError(err).Error("load workout")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if wk == nil {
		writeJSONError(w, http.StatusNotFound, validation.MissingMsg(models.CollectionWorkouts, id))
		return
	}
	exercises, err := s.access.LoadExercises(r.Context(), id)
	if err != nil {
		s.logger(r).WithError(err).Error("load exercises")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, workoutResponse{Workout: wk, Exercises: exercises})
}
