package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dstrand/accountd/internal/credential"
	"github.com/dstrand/accountd/internal/model"
	"github.com/dstrand/accountd/internal/repository"
)

// ErrInvalidCredentials is the only error surfaced for a failed login; it
// never distinguishes an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

const sessionCookieName = "session_token"

type AuthService struct {
	userRepository repository.UserRepository
	hasher         *credential.Hasher
	jwtSecret      string
	isProduction   bool
	sessionExpiry  time.Duration
	rememberExpiry time.Duration

	// dummyHash is verified against when the email is unknown so response
	// time does not disclose account existence.
	dummyHash string
}

func NewAuthService(
	userRepository repository.UserRepository,
	hasher *credential.Hasher,
	jwtSecret string,
	isProduction bool,
	sessionExpiry time.Duration,
	rememberExpiry time.Duration,
) (*AuthService, error) {
	dummyHash, err := hasher.Hash("decoy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare auth service: %w", err)
	}

	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		jwtSecret:      jwtSecret,
		isProduction:   isProduction,
		sessionExpiry:  sessionExpiry,
		rememberExpiry: rememberExpiry,
		dummyHash:      dummyHash,
	}, nil
}

// Authenticate checks an (email, password) pair against the user store.
// Exactly one password verification runs on every call, whether or not the
// email exists.
func (s *AuthService) Authenticate(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Bind marks the caller's session as authenticated for the user by setting a
// signed session cookie. With remember the cookie persists for the remember
// expiry; otherwise it is dropped when the browser session ends.
func (s *AuthService) Bind(w http.ResponseWriter, user *model.User, remember bool) error {
	expiry := s.sessionExpiry
	if remember {
		expiry = s.rememberExpiry
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.Expires = time.Now().Add(expiry)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Revoke clears the session binding.
func (s *AuthService) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current resolves the identity bound to the request's session cookie, or nil
// when the caller is anonymous or the token no longer maps to a user.
func (s *AuthService) Current(r *http.Request) *model.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	claims, err := s.verifyToken(cookie.Value)
	if err != nil {
		return nil
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil
	}

	return user
}

func (s *AuthService) verifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
