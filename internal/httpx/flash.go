package httpx

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash is a one-shot notification carried across the POST-redirect-GET hop
// in a short-lived cookie.
type Flash struct {
	Level   string // "success" | "error"
	Message string
}

const flashCookie = "flash"

func setFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	level, msg, ok := strings.Cut(v, "|")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Message: msg}
}
