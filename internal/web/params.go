package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"trainingLog/internal/validation"
)

const firstPage = "/training_log/1/workouts"

// routeIDs holds the numeric URL parameters of a request.
type routeIDs struct {
	Page     int
	Workout  int64
	Exercise int64
}

func pageURL(page int) string {
	return fmt.Sprintf("/training_log/%d/workouts", page)
}

func workoutURL(page int, workoutID int64) string {
	return fmt.Sprintf("/training_log/%d/workouts/%d", page, workoutID)
}

func exerciseURL(page int, workoutID, exerciseID int64) string {
	return fmt.Sprintf("/training_log/%d/workouts/%d/exercises/%d", page, workoutID, exerciseID)
}

// parseIDs reads the page, workout and exercise variables present in the route.
// When one of them is not a plain number the user is sent back to the first
// page with an explanation and false is returned.
func (s *Server) parseIDs(w http.ResponseWriter, r *http.Request, sess *sessions.Session) (routeIDs, bool) {
	vars := mux.Vars(r)
	var (
		ids    routeIDs
		raw    []string
		badVar bool
	)
	for _, name := range []string{"page", "workout", "exercise"} {
		v, ok := vars[name]
		if !ok {
			continue
		}
		raw = append(raw, v)
		if !validation.NumericParam(v) {
			badVar = true
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badVar = true
			continue
		}
		switch name {
		case "page":
			if n > math.MaxInt32 {
				badVar = true
			}
			ids.Page = int(n)
		case "workout":
			ids.Workout = n
		case "exercise":
			ids.Exercise = n
		}
	}
	if badVar {
		s.flashRedirect(w, r, sess, validation.BadParamMsg(validation.ParamList(raw...)), firstPage)
		return ids, false
	}
	return ids, true
}
