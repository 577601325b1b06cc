package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Identity is a verified authentication identity.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// IdentityProvider verifies sessions and manages credentials.
type IdentityProvider interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*Identity, *TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*Identity, *TokenPair, error)
	CreateIdentity(ctx context.Context, email, password string) (*Identity, error)
	UpdatePassword(ctx context.Context, identityID, password string) error
	UpdateEmail(ctx context.Context, identityID, email string) error
}

// AuthOptions configures token signing.
type AuthOptions struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService is an IdentityProvider backed by the identities table, issuing HS256 tokens.
type AuthService struct {
	identities repositories.IdentityRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(identities repositories.IdentityRepository, opts AuthOptions) *AuthService {
	return &AuthService{
		identities: identities,
		secret:     []byte(opts.Secret),
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        time.Now,
	}
}

func (s *AuthService) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return identityFromClaims(claims)
}

// Refresh validates the refresh token, confirms the identity still exists and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Identity, *TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, nil, err
	}
	sub, _ := claims["sub"].(string)
	record, err := s.identities.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, apperr.Unauthenticated("identity no longer exists")
		}
		return nil, nil, apperr.Internal("failed to load identity", err)
	}
	pair, err := s.issue(record)
	if err != nil {
		return nil, nil, err
	}
	return &Identity{ID: record.ID, Email: record.Email}, pair, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Identity, *TokenPair, error) {
	record, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, nil, apperr.Internal("failed to load identity", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthenticated("invalid credentials")
	}
	pair, err := s.issue(record)
	if err != nil {
		return nil, nil, err
	}
	return &Identity{ID: record.ID, Email: record.Email}, pair, nil
}

func (s *AuthService) CreateIdentity(ctx context.Context, email, password string) (*Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}
	record := &models.Identity{Email: email, PasswordHash: string(hash)}
	if err := s.identities.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperr.Conflict(fmt.Sprintf("email '%s' already registered", strings.ToLower(strings.TrimSpace(email))))
		}
		return nil, apperr.Internal("failed to create identity", err)
	}
	return &Identity{ID: record.ID, Email: record.Email}, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, identityID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if err := s.identities.UpdatePasswordHash(ctx, identityID, string(hash)); err != nil {
		return mapRepoError(err, "identity not found", "failed to update password")
	}
	return nil
}

func (s *AuthService) UpdateEmail(ctx context.Context, identityID, email string) error {
	if err := s.identities.UpdateEmail(ctx, identityID, email); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return apperr.Conflict("email already in use")
		}
		return mapRepoError(err, "identity not found", "failed to update email")
	}
	return nil
}

func (s *AuthService) issue(record *models.Identity) (*TokenPair, error) {
	now := s.now()
	pair := &TokenPair{
		AccessExpiresAt:  now.Add(s.accessTTL),
		RefreshExpiresAt: now.Add(s.refreshTTL),
	}
	var err error
	pair.AccessToken, err = s.sign(record, tokenTypeAccess, now, pair.AccessExpiresAt)
	if err != nil {
		return nil, err
	}
	pair.RefreshToken, err = s.sign(record, tokenTypeRefresh, now, pair.RefreshExpiresAt)
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) sign(record *models.Identity, typ string, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   record.ID,
		"email": record.Email,
		"typ":   typ,
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return signed, nil
}

// parse validates signature, expiry and token type.
func (s *AuthService) parse(tokenString, typ string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, apperr.Unauthenticated("missing token")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindUnauthenticated, Message: "invalid token", Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}
	if got, _ := claims["typ"].(string); got != typ {
		return nil, apperr.Unauthenticated("invalid token type")
	}
	return claims, nil
}

func identityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperr.Unauthenticated("token has no subject")
	}
	email, _ := claims["email"].(string)
	return &Identity{ID: sub, Email: email}, nil
}
