package session

import (
	"net/http"
	"os"
)

// CookieName is the session cookie, carried by every authenticated request.
const CookieName = "session"

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

// Establish sets the session cookie: httpOnly, sameSite=lax, secure in
// production, 7-day max-age.
func Establish(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie client-side.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads the session cookie, returning "" when absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
