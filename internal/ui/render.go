// Package ui renders the skeletal server-side pages. The markup is
// intentionally minimal; the account flows, not the presentation, are the
// point of this application.
package ui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dstrand/accountd/internal/ctxkeys"
	"github.com/dstrand/accountd/internal/flash"
	"github.com/dstrand/accountd/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Page is the data passed to every template.
type Page struct {
	Title string
	Path  string
	User  *model.User
	Flash *flash.Message
	Form  map[string]string
	Data  any
}

// Render writes the named template. The current user, request path and any
// pending flash message are filled in from the request.
func Render(w http.ResponseWriter, r *http.Request, name string, page Page) {
	if page.User == nil {
		page.User = ctxkeys.User(r.Context())
	}
	page.Path = ctxkeys.URLPath(r.Context())
	if page.Flash == nil {
		page.Flash = flash.Pop(w, r)
	}
	if page.Form == nil {
		page.Form = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := templates.ExecuteTemplate(w, name, page)
	if err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// Error writes a generic server-error response. Details stay in the logs.
func Error(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}
