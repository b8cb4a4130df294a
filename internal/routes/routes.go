package routes

import (
	"net/http"

	"github.com/dstrand/accountd/internal/app"
	"github.com/dstrand/accountd/internal/handler"
	"github.com/dstrand/accountd/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ContentService)
	auth := handler.NewAuthHandler(app.AuthService, app.AccountService)
	account := handler.NewAccountHandler(app.AuthService, app.AccountService, app.Cfg.MaxUploadBytes)

	mux := http.NewServeMux()

	// Static files (profile pictures live under /static/profile_pics/)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(app.Cfg.StaticRoot))))

	// Public
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /home", home.HomePage)

	// Anonymous-only auth flows
	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", middleware.RequireGuest(auth.Register))
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", middleware.RequireGuest(auth.Login))

	// Authenticated
	mux.HandleFunc("GET /logout", middleware.RequireAuth(auth.Logout))
	mux.HandleFunc("GET /account", middleware.RequireAuth(account.AccountPage))
	mux.HandleFunc("GET /account/edit", middleware.RequireAuth(account.EditPage))
	mux.HandleFunc("POST /account/edit", middleware.RequireAuth(account.Edit))
	mux.HandleFunc("GET /account/delete", middleware.RequireAuth(account.DeletePage))
	mux.HandleFunc("POST /account/delete", middleware.RequireAuth(account.Delete))

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
		middleware.WithURLPath,
	)
}
