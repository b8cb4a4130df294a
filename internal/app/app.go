package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dstrand/accountd/internal/config"
	"github.com/dstrand/accountd/internal/credential"
	"github.com/dstrand/accountd/internal/db"
	"github.com/dstrand/accountd/internal/repository"
	"github.com/dstrand/accountd/internal/service"
	"github.com/dstrand/accountd/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	AccountService *service.AccountService
	PictureService *service.PictureService
	ContentService *service.ContentService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)

	// Storage
	pictureStorage, err := storage.NewLocalStorage(cfg.ProfilePicsRoot(), "/static/profile_pics")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	hasher := credential.NewHasher(cfg.HashCost)

	pictureService := service.NewPictureService(pictureStorage, cfg.ImageMaxDim, cfg.AllowedImageExts, cfg.DefaultImageFile)
	err = pictureService.EnsureDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to create default profile image: %v", err)
	}

	authService, err := service.NewAuthService(
		userRepository,
		hasher,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.SessionExpiry,
		cfg.RememberExpiry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %v", err)
	}

	accountService := service.NewAccountService(userRepository, hasher, pictureService)
	contentService := service.NewContentService(cfg.ContentPath)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		AccountService: accountService,
		PictureService: pictureService,
		ContentService: contentService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
