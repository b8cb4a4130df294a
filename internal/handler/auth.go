package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dstrand/accountd/internal/flash"
	"github.com/dstrand/accountd/internal/middleware"
	"github.com/dstrand/accountd/internal/repository"
	"github.com/dstrand/accountd/internal/service"
	"github.com/dstrand/accountd/internal/ui"
	"github.com/dstrand/accountd/internal/validation"
)

type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "register.html", ui.Page{Title: "Register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	form := map[string]string{"username": username, "email": email}

	fail := func(text string) {
		ui.Render(w, r, "register.html", ui.Page{
			Title: "Register",
			Form:  form,
			Flash: &flash.Message{Class: flash.ClassDanger, Text: text},
		})
	}

	err := validation.ValidateUsername(username)
	if err != nil {
		fail(err.Error())
		return
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		fail(err.Error())
		return
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		fail(err.Error())
		return
	}
	if password != confirm {
		fail("passwords do not match")
		return
	}

	_, err = h.accountService.Register(username, email, password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			fail("This username is already in use. Please choose a different one.")
		case errors.Is(err, repository.ErrDuplicateEmail):
			fail("This email is already in use. Please choose a different one.")
		default:
			ui.Error(w, err)
		}
		return
	}

	flash.Set(w, flash.ClassSuccess, "Your account has been created! You are now able to log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "login.html", ui.Page{
		Title: "Login",
		Form:  map[string]string{"next": r.URL.Query().Get("next")},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	remember := r.FormValue("remember") != ""

	user, err := h.authService.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ui.Render(w, r, "login.html", ui.Page{
				Title: "Login",
				Form:  map[string]string{"email": email, "next": r.URL.Query().Get("next")},
				Flash: &flash.Message{Class: flash.ClassDanger, Text: "Login Unsuccessful. Please check email and password"},
			})
			return
		}
		ui.Error(w, err)
		return
	}

	err = h.authService.Bind(w, user, remember)
	if err != nil {
		ui.Error(w, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	flash.Set(w, flash.ClassSuccess, "You have been logged in successfully.")

	target := "/account"
	next := r.URL.Query().Get("next")
	if middleware.SafeNext(next) {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Revoke(w)
	flash.Set(w, flash.ClassSuccess, "You have been logged out successfully.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
