package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "user_session"

	cookieLifetime = 24 * time.Hour
)

// FromRequest returns the session id carried by the request. When there is none, a new id is
// generated and the cookie the caller has to send back is returned alongside it.
func FromRequest(req *http.Request) (string, *http.Cookie) {
	if sessionID, ok := Existing(req); ok {
		return sessionID, nil
	}

	sessionID := uuid.NewString()

	return sessionID, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(cookieLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Existing returns the session id carried by the request without issuing a new one.
// Cookies that do not hold a valid id are treated as missing.
func Existing(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	if _, err = uuid.Parse(cookie.Value); err != nil {
		return "", false
	}

	return cookie.Value, true
}

// Ensure is FromRequest for plain HTTP handlers: a new cookie is set on writer right away.
func Ensure(writer http.ResponseWriter, req *http.Request) string {
	sessionID, cookie := FromRequest(req)
	if cookie != nil {
		http.SetCookie(writer, cookie)
	}

	return sessionID
}
