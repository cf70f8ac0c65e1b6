package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"trainingLog/internal/auth"
	"trainingLog/internal/middleware"
	"trainingLog/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login",
	"signup",
	"workouts",
	"new_workout",
	"workout",
	"edit_workout",
	"new_exercise",
	"edit_exercise",
}

type views struct {
	pages map[string]*template.Template
}

func loadViews() (*views, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// pageData is what every template receives.
type pageData struct {
	Title    string
	Username string
	Flashes  []string
	Form     map[string]string

	Page      int
	MaxPages  int
	NextPage  int
	PriorPage int

	Workouts  []models.Workout
	Workout   *models.Workout
	Exercises []models.Exercise
	Exercise  *models.Exercise

	CanEdit         bool
	CanAddExercises bool
}

// render pops the session flashes into data, saves the session and writes the page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, sess *sessions.Session, status int, page string, data *pageData) {
	t, ok := s.views.pages[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}
	data.Username = auth.Username(sess)
	data.Flashes = auth.Flashes(sess)
	if err := s.sessions.Save(w, r, sess); err != nil {
		s.serverError(w, r, fmt.Errorf("save session: %w", err))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect saves the session and redirects to url.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, sess *sessions.Session, url string) {
	if err := s.sessions.Save(w, r, sess); err != nil {
		s.serverError(w, r, fmt.Errorf("save session: %w", err))
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// flashRedirect queues msg and redirects to url.
func (s *Server) flashRedirect(w http.ResponseWriter, r *http.Request, sess *sessions.Session, msg, url string) {
	auth.AddFlash(sess, msg)
	s.redirect(w, r, sess, url)
}

// logger returns the request scoped logger.
func (s *Server) logger(r *http.Request) logrus.FieldLogger {
	return middleware.Logger(r.Context(), s.log)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger(r).WithError(err).Error("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
