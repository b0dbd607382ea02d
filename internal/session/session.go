package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "user_session"
	cookieTTL  = 24 * time.Hour
)

// FromRequest - returns the session id carried by the request cookie, if it is a valid one.
func FromRequest(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}

	return id.String(), true
}

// Ensure - returns the request's session id, creating a new one when the cookie is missing or invalid.
// created reports whether cookie must be sent back to the client.
func Ensure(req *http.Request) (id string, cookie *http.Cookie, created bool) {
	if id, ok := FromRequest(req); ok {
		return id, nil, false
	}

	id = uuid.NewString()

	return id, NewCookie(id), true
}

func NewCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
