package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrUserNotFound       = errors.New("auth: user not found")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service verifies identities and issues session tokens. Accounts live in the
// global users collection, outside any tenant root: the account id is what
// tenant roots are derived from.
type Service struct {
	users      docstore.Collection
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(users docstore.Collection, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a password account. The password is hashed with argon2id
// before storage.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("auth.Register: email and password are required: %w", domain.ErrInvalidArgument)
	}

	if _, err := s.findByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}

	fields, err := docstore.Fields(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	id, err := s.users.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	user.ID = id

	return user, nil
}

// Login validates email/password and returns access + refresh tokens.
func (s *Service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	user, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	return s.issuePair(user)
}

// LoginWithProvider signs in (or signs up) an account verified by an external
// identity provider. The provider's subject id anchors the account so an
// email change upstream does not fork the tenant.
func (s *Service) LoginWithProvider(ctx context.Context, provider, providerID, email, name string) (accessToken, refreshToken string, err error) {
	if provider == "" || providerID == "" {
		return "", "", fmt.Errorf("auth.LoginWithProvider: provider subject is required: %w", domain.ErrUnauthenticated)
	}

	user, err := s.findByProvider(ctx, provider, providerID)
	if errors.Is(err, ErrUserNotFound) {
		user = &domain.User{
			Email:      strings.ToLower(strings.TrimSpace(email)),
			Name:       name,
			Provider:   provider,
			ProviderID: providerID,
			CreatedAt:  time.Now().UTC(),
		}
		fields, ferr := docstore.Fields(user)
		if ferr != nil {
			return "", "", fmt.Errorf("auth.LoginWithProvider: %w", ferr)
		}
		id, cerr := s.users.Create(ctx, fields)
		if cerr != nil {
			return "", "", fmt.Errorf("auth.LoginWithProvider: %w", cerr)
		}
		user.ID = id
	} else if err != nil {
		return "", "", fmt.Errorf("auth.LoginWithProvider: %w", err)
	}

	return s.issuePair(user)
}

// Refresh validates a refresh token and issues a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.Refresh: %w", ErrInvalidToken)
	}

	// Verify the account still exists.
	if _, err := s.users.Get(ctx, claims.UserID); err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", ErrUserNotFound)
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, claims.UserID, claims.Email, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	return newAccess, nil
}

func (s *Service) issuePair(user *domain.User) (string, string, error) {
	access, err := IssueAccessToken(s.jwtSecret, user.ID, user.Email, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth: issuing access token: %w", err)
	}
	refresh, err := IssueRefreshToken(s.jwtSecret, user.ID, user.Email, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth: issuing refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, docstore.Filter{Field: "email", Op: docstore.OpEqual, Value: email})
}

func (s *Service) findByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	return s.findOne(ctx,
		docstore.Filter{Field: "provider", Op: docstore.OpEqual, Value: provider},
		docstore.Filter{Field: "provider_id", Op: docstore.OpEqual, Value: providerID},
	)
}

func (s *Service) findOne(ctx context.Context, filters ...docstore.Filter) (*domain.User, error) {
	docs, err := s.users.List(ctx, docstore.Query{Filters: filters})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound
	}

	var user domain.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = docs[0].ID
	return &user, nil
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	saltHex, hashHex, ok := strings.Cut(encoded, "$")
	if !ok || saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	if len(computed) != len(expected) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expected[i]
	}

	return diff == 0
}
