package session

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// CookieName is the identity cookie the frontend pages expect.
const CookieName = "user"

// DefaultMaxAge is 24 hours, matching the original cookie contract.
const DefaultMaxAge = 86400

// MaxAge is the cookie lifetime in seconds; main overrides it from config.
var MaxAge = DefaultMaxAge

// Claims is the client-held identity blob. The cookie value is this struct as
// URL-encoded JSON. It carries no signature: the cookie is only as trustworthy
// as the user lookup performed against it on every request.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Write sets the identity cookie on the response.
func Write(w http.ResponseWriter, claims Claims) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		MaxAge:   MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read decodes the identity cookie from the request. Any malformed value is an
// error; callers treat it the same as a missing cookie.
func Read(r *http.Request) (Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Claims{}, err
	}

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return Claims{}, err
	}

	var claims Claims
	if err := json.Unmarshal([]byte(decoded), &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
