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

// userHandler is a handler that runs for a logged-in user.
type userHandler func(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string)

// requireLogin sends visitors without a valid account to the login page and
// remembers where they wanted to go.
func (s *Server) requireLogin(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Get(r)
		username := auth.Username(sess)
		if username != "" {
			_, found, err := s.access.FindUserID(r.Context(), username)
			if err != nil {
				s.serverError(w, r, err)
				return
			}
			if found {
				h(w, r, sess, username)
				return
			}
			auth.Logout(sess)
		}
		if r.Method == http.MethodGet {
			auth.RememberPath(sess, r.URL.RequestURI())
		}
		s.flashRedirect(w, r, sess, validation.LoginRequiredMsg, "/login")
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, sess *sessions.Session, _ string) {
	s.redirect(w, r, sess, firstPage)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(r)
	s.render(w, r, sess, http.StatusOK, "login", &pageData{Title: "Log in"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(r)
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	_, err := s.access.Authenticate(r.Context(), username, password)
	if errors.Is(err, access.ErrAuthFailed) {
		auth.AddFlash(sess, validation.BadLoginMsg)
		s.render(w, r, sess, http.StatusUnprocessableEntity, "login", &pageData{
			Title: "Log in",
			Form:  map[string]string{"username": username},
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	auth.SetUsername(sess, username)
	s.redirect(w, r, sess, auth.TakeReturnPath(sess, firstPage))
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(r)
	s.render(w, r, sess, http.StatusOK, "signup", &pageData{Title: "Sign up"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(r)
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	rejected := func() {
		auth.AddFlash(sess, validation.InvalidSignupMsg)
		s.render(w, r, sess, http.StatusUnprocessableEntity, "signup", &pageData{
			Title: "Sign up",
			Form:  map[string]string{"username": username},
		})
	}

	ok, err := s.access.ValidNewUser(r.Context(), username, password)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !ok {
		rejected()
		return
	}
	if _, err := s.access.AddUser(r.Context(), username, password); err != nil {
		if _, isValidation := access.IsValidation(err); isValidation {
			rejected()
			return
		}
		s.serverError(w, r, err)
		return
	}
	auth.SetUsername(sess, username)
	s.redirect(w, r, sess, "/")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(r)
	auth.Logout(sess)
	s.flashRedirect(w, r, sess, validation.LoggedOutMsg, "/login")
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request, sess *sessions.Session, username string) {
	id, found, err := s.access.FindUserID(r.Context(), username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if found {
		if err := s.access.DeleteRecord(r.Context(), id, models.CollectionUsers); err != nil && !errors.Is(err, access.ErrNotFound) {
			s.serverError(w, r, err)
			return
		}
	}
	auth.Logout(sess)
	s.logger(r).WithField("username", username).Info("account deleted")
	s.flashRedirect(w, r, sess, validation.AccountDeletedMsg(username), "/signup")
}
