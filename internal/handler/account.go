package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dstrand/accountd/internal/ctxkeys"
	"github.com/dstrand/accountd/internal/flash"
	"github.com/dstrand/accountd/internal/repository"
	"github.com/dstrand/accountd/internal/service"
	"github.com/dstrand/accountd/internal/ui"
	"github.com/dstrand/accountd/internal/validation"
)

type AccountHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
	maxUploadBytes int64
}

func NewAccountHandler(authService *service.AuthService, accountService *service.AccountService, maxUploadBytes int64) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		accountService: accountService,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *AccountHandler) AccountPage(w http.ResponseWriter, r *http.Request) {
	user := h.accountService.WithImageURL(ctxkeys.User(r.Context()))

	ui.Render(w, r, "account.html", ui.Page{
		Title: "Account",
		User:  user,
	})
}

func (h *AccountHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	ui.Render(w, r, "edit.html", ui.Page{
		Title: "Edit Account",
		Form:  map[string]string{"username": user.Username, "email": user.Email},
	})
}

func (h *AccountHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(h.maxUploadBytes)
	if err != nil {
		ui.Render(w, r, "edit.html", ui.Page{
			Title: "Edit Account",
			Form:  map[string]string{"username": user.Username, "email": user.Email},
			Flash: &flash.Message{Class: flash.ClassDanger, Text: "could not read the submitted form"},
		})
		return
	}

	input := service.EditInput{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}

	form := map[string]string{"username": input.Username, "email": input.Email}

	fail := func(text string) {
		ui.Render(w, r, "edit.html", ui.Page{
			Title: "Edit Account",
			Form:  form,
			Flash: &flash.Message{Class: flash.ClassDanger, Text: text},
		})
	}

	err = validation.ValidateUsername(input.Username)
	if err != nil {
		fail(err.Error())
		return
	}
	err = validation.ValidateEmail(input.Email)
	if err != nil {
		fail(err.Error())
		return
	}
	if input.Password != "" {
		err = validation.ValidatePassword(input.Password)
		if err != nil {
			fail(err.Error())
			return
		}
	}

	file, header, err := r.FormFile("picture")
	if err == nil {
		defer file.Close()
		input.Picture = file
		input.PictureName = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		fail("could not read the uploaded picture")
		return
	}

	_, err = h.accountService.Edit(user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			fail("This email is already in use. Please choose a different one.")
		case errors.Is(err, repository.ErrDuplicateUsername):
			fail("This username is already in use. Please choose a different one.")
		case errors.Is(err, service.ErrMissingExtension),
			errors.Is(err, service.ErrUnsupportedFormat),
			errors.Is(err, service.ErrInvalidImage),
			errors.Is(err, service.ErrPictureStorage):
			slog.Warn("profile picture rejected", "user_id", user.ID, "error", err)
			fail("could not process image")
		case errors.Is(err, repository.ErrUserNotFound):
			// Account went away mid-request; drop the stale session.
			h.authService.Revoke(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			ui.Error(w, err)
		}
		return
	}

	flash.Set(w, flash.ClassSuccess, "Your account has been updated!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *AccountHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "delete.html", ui.Page{Title: "Delete Account"})
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.accountService.Delete(user.ID)
	if err != nil {
		ui.Error(w, err)
		return
	}

	h.authService.Revoke(w)
	flash.Set(w, flash.ClassSuccess, "Your account has been deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
