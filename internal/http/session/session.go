package session

import (
	"net/http"
	"time"
)

// Cookie names, one per actor surface. Each holds the actor's primary id.
const (
	AdminCookie    = "admin_id"
	HospitalCookie = "hospital_id"
	DriverCookie   = "driver_id"
)

const cookieTTL = 7 * 24 * time.Hour

// Issue sets a session cookie for the given actor surface.
func Issue(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately.
func Clear(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
