package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"trainingLog/internal/config"
)

const (
	sessionName = "training_log"

	keyUsername   = "username"
	keyReturnPath = "route_once_logged_in"
)

// Sessions wraps a gorilla session store with the values the web app keeps:
// the logged-in username, flash messages and the page to return to after login.
type Sessions struct {
	store sessions.Store
}

// NewSessions builds a filesystem store when cfg.SessionDir is set and a
// cookie store otherwise.
func NewSessions(cfg config.AuthConfig) *Sessions {
	opts := &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		Secure:   cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.SessionDir != "" {
		fs := sessions.NewFilesystemStore(cfg.SessionDir, []byte(cfg.SessionSecret))
		fs.Options = opts
		return &Sessions{store: fs}
	}
	cs := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cs.Options = opts
	return &Sessions{store: cs}
}

// Get returns the session of r. A session that fails to decode is replaced by a new one.
func (s *Sessions) Get(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		sess, _ = s.store.New(r, sessionName)
	}
	return sess
}

// Save writes the session back to the response.
func (s *Sessions) Save(w http.ResponseWriter, r *http.Request, sess *sessions.Session) error {
	return sess.Save(r, w)
}

// Username returns the logged-in username, or "" when logged out.
func Username(sess *sessions.Session) string {
	name, _ := sess.Values[keyUsername].(string)
	return name
}

// SetUsername marks the session as logged in as username.
func SetUsername(sess *sessions.Session, username string) {
	sess.Values[keyUsername] = username
}

// Logout clears the username and return path.
func Logout(sess *sessions.Session) {
	delete(sess.Values, keyUsername)
	delete(sess.Values, keyReturnPath)
}

// AddFlash queues a message for the next rendered page.
func AddFlash(sess *sessions.Session, msg string) {
	sess.AddFlash(msg)
}

// Flashes pops every queued message.
func Flashes(sess *sessions.Session) []string {
	var out []string
	for _, f := range sess.Flashes() {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// RememberPath stores the URL to redirect to once the user logs in.
func RememberPath(sess *sessions.Session, path string) {
	sess.Values[keyReturnPath] = path
}

// TakeReturnPath pops the remembered URL, or returns fallback.
func TakeReturnPath(sess *sessions.Session, fallback string) string {
	p, _ := sess.Values[keyReturnPath].(string)
	delete(sess.Values, keyReturnPath)
	if p == "" {
		return fallback
	}
	return p
}
