// Package services contains server-side business logic: authentication and
// session management, the document upload pipeline, and the admin member
// directory.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/dbx"
	"github.com/dmitrijs2005/memberhub/internal/server/auth"
	"github.com/dmitrijs2005/memberhub/internal/server/config"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credential policy limits. The password minimum predates the hash check:
// a too-short password is rejected as weak before any comparison happens.
const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful login or registration: the
// authenticated user projection plus its token pair.
type Session struct {
	User   *models.User
	Tokens *TokenPair
}

// AuthService owns the session lifecycle:
//   - Login / Register move the client from Unauthenticated to Authenticated
//     and persist the session as a refresh-token row
//   - Logout destroys the persisted session
//   - Restore rebuilds the session on startup, failing open to "no session"
//   - UpdateProfile mutates the authenticated member record
//   - RefreshSession rotates refresh tokens and mints new access tokens
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Login authenticates by email and password. Failure order matches the
// portal contract: unknown email, inactive account, weak password, then
// the hash comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Members(s.db)

	member, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, common.ErrorInternal
	}

	if !member.IsActive {
		return nil, common.ErrorAccountInactive
	}

	if len(password) < MinPasswordLength {
		return nil, common.ErrorWeakPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, member.ID, member.Role, s.db)
	if err != nil {
		return nil, err
	}

	// best effort; login stays successful even if the timestamp write fails
	now := time.Now()
	if updated, err := repo.Update(ctx, member.ID, models.MemberUpdate{LastActive: &now}); err == nil {
		member = updated
	}

	return &Session{User: &member.User, Tokens: pair}, nil
}

// Register creates a new member account. New accounts always start with
// role member, active, profile incomplete.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	repo := s.repomanager.Members(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if len(password) < MinPasswordLength {
		return nil, common.ErrorWeakPassword
	}
	if len(name) < MinNameLength {
		return nil, common.ErrorInvalidName
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now()
	member := &models.Member{
		User: models.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Role:      models.RoleMember,
			CreatedAt: now,
			IsActive:  true,
		},
		PasswordHash: hash,
		JoinDate:     now,
		LastActive:   now,
	}

	created, err := repo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating member: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, created.ID, created.Role, s.db)
	if err != nil {
		return nil, err
	}

	return &Session{User: &created.User, Tokens: pair}, nil
}

// Logout destroys the persisted session. Always succeeds; logging out an
// unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// Restore rebuilds the session from a persisted refresh token at startup.
// Anything wrong with the stored token (missing, malformed, expired,
// orphaned, inactive account) yields (nil, nil): the client simply starts
// unauthenticated. The failure is swallowed, never surfaced.
func (s *AuthService) Restore(ctx context.Context, refreshToken string) (*models.User, error) {
	if refreshToken == "" {
		return nil, nil
	}

	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		return nil, nil
	}
	if token.Expires.Before(time.Now()) {
		return nil, nil
	}

	member, err := s.repomanager.Members(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, nil
	}
	if !member.IsActive {
		return nil, nil
	}

	return &member.User, nil
}

// RefreshSession validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrorRefreshTokenExpired.
func (s *AuthService) RefreshSession(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrorRefreshTokenExpired
	}

	member, err := s.repomanager.Members(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	rotate := func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, member.ID, member.Role, tx)
		return genErr
	}

	if s.db == nil {
		// in-memory backend has no transactions
		if err := rotate(ctx, nil); err != nil {
			return nil, err
		}
		return pair, nil
	}

	if err := dbx.WithTx(ctx, s.db, nil, rotate); err != nil {
		return nil, err
	}
	return pair, nil
}

// UpdateProfile merges the partial update into the authenticated member's
// record. Fails with ErrorNoSession when there is nobody to update.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd models.MemberUpdate) (*models.User, error) {
	if userID == "" {
		return nil, common.ErrorNoSession
	}

	member, err := s.repomanager.Members(s.db).Update(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNoSession
		}
		return nil, common.ErrorInternal
	}

	return &member.User, nil
}

// GetUser returns the auth projection for an id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	member, err := s.repomanager.Members(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &member.User, nil
}

// --- helpers below ---

func (s *AuthService) generateAccessToken(userID string, role models.Role) (string, error) {
	return auth.GenerateToken(userID, role, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AuthService) generateTokenPair(ctx context.Context, userID string, role models.Role, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID, role)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
