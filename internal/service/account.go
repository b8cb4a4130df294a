package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dstrand/accountd/internal/credential"
	"github.com/dstrand/accountd/internal/model"
	"github.com/dstrand/accountd/internal/repository"
)

// AccountService orchestrates the account lifecycle: registration, profile
// edits and deletion. Uniqueness pre-checks here are UX affordances only; the
// store's unique indexes are the source of truth, so a racing edit can still
// surface ErrDuplicateUsername/ErrDuplicateEmail from Update.
type AccountService struct {
	userRepository repository.UserRepository
	hasher         *credential.Hasher
	pictures       *PictureService
}

func NewAccountService(userRepository repository.UserRepository, hasher *credential.Hasher, pictures *PictureService) *AccountService {
	return &AccountService{
		userRepository: userRepository,
		hasher:         hasher,
		pictures:       pictures,
	}
}

// EditInput carries the edit form fields. Password and Picture are optional;
// an empty password leaves the credential unchanged.
type EditInput struct {
	Username    string
	Email       string
	Password    string
	Picture     io.Reader
	PictureName string
}

// Register creates a new user with a freshly hashed credential and the
// default profile image.
func (s *AccountService) Register(username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		ImageFile:    s.pictures.DefaultFile(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		return nil, err
	}

	slog.Info("account created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Edit applies the combined patch for the user. The whole edit is dropped if
// the picture cannot be ingested. A thumbnail stored before a failing update
// is unlinked best-effort; the previous thumbnail is unlinked after a
// successful replacement.
func (s *AccountService) Edit(userID string, in EditInput) (*model.User, error) {
	me, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Email != me.Email {
		other, err := s.userRepository.ByEmail(in.Email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil && other.ID != me.ID {
			return nil, repository.ErrDuplicateEmail
		}
	}

	if in.Username != me.Username {
		other, err := s.userRepository.ByUsername(in.Username)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if other != nil && other.ID != me.ID {
			return nil, repository.ErrDuplicateUsername
		}
	}

	previousImage := ""
	if in.Picture != nil {
		name, err := s.pictures.Store(in.PictureName, in.Picture)
		if err != nil {
			return nil, err
		}
		previousImage = me.ImageFile
		me.ImageFile = name
	}

	me.Username = in.Username
	me.Email = in.Email
	if in.Password != "" {
		me.PasswordHash, err = s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	err = s.userRepository.Update(me)
	if err != nil {
		if previousImage != "" {
			// The freshly stored thumbnail is an orphan now.
			s.pictures.Remove(me.ImageFile)
		}
		return nil, err
	}

	if previousImage != "" {
		s.pictures.Remove(previousImage)
	}

	slog.Info("account updated", "user_id", me.ID)
	return me, nil
}

// Delete removes the user and, best-effort, their thumbnail. A concurrent
// self-delete racing this one is treated as success.
func (s *AccountService) Delete(userID string) error {
	me, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	err = s.userRepository.Delete(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	s.pictures.Remove(me.ImageFile)

	slog.Info("account deleted", "user_id", userID)
	return nil
}

// WithImageURL fills the computed profile image URL on the user.
func (s *AccountService) WithImageURL(user *model.User) *model.User {
	if user != nil {
		user.ImageURL = s.pictures.URL(user.ImageFile)
	}
	return user
}
