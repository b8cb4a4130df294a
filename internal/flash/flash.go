// Package flash carries the single user-visible status message across the
// redirect that follows a state-changing request, using a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const cookieName = "flash"

const (
	ClassSuccess = "success"
	ClassDanger  = "danger"
)

type Message struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// Set queues a message for the next rendered page.
func Set(w http.ResponseWriter, class, text string) {
	payload, err := json.Marshal(Message{Text: text, Class: class})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued message, if any, and clears it.
func Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var msg Message
	err = json.Unmarshal(payload, &msg)
	if err != nil {
		return nil
	}

	return &msg
}
