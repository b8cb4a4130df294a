package handler

import (
	"html/template"
	"net/http"

	"github.com/dstrand/accountd/internal/service"
	"github.com/dstrand/accountd/internal/ui"
)

type HomeHandler struct {
	contentService *service.ContentService
}

func NewHomeHandler(contentService *service.ContentService) *HomeHandler {
	return &HomeHandler{contentService: contentService}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.contentService.Page("home")
	if err != nil {
		ui.Error(w, err)
		return
	}

	ui.Render(w, r, "home.html", ui.Page{
		Title: page.Title,
		Data:  template.HTML(page.Content),
	})
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}
