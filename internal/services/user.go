// Package services contains the business logic of the storage system.
// This file implements UserService: registration, login, and issuing or
// refreshing the session tokens that carry an authenticated principal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/pokestore/internal/auth"
	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/config"
	"github.com/dmitrijs2005/pokestore/internal/cryptox"
	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/logging"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// usernamePattern matches accepted login names: lowercase, at most 10
// characters.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{1,10}$`)

const passwordMaxLen = 20

// UserService provides account operations:
//   - Register: create a user together with its 16 boxes
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - PrincipalFromToken: resolve the acting principal for a request
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	secretKey                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger,
		secretKey:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user with the given credentials and role, and the
// user's full set of empty boxes, in a single transaction. The role is fixed
// for the lifetime of the account.
func (s *UserService) Register(ctx context.Context, username string, password []byte, role models.Role) (*models.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("username must be 1-10 lowercase characters: %w", common.ErrorInvalidInput)
	}
	if len(password) == 0 || len(password) > passwordMaxLen {
		return nil, fmt.Errorf("password must be 1-%d characters: %w", passwordMaxLen, common.ErrorInvalidInput)
	}

	salt := cryptox.GenerateSalt()
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Salt:     salt,
		Verifier: cryptox.HashPassword(password, salt),
		Role:     role,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.repomanager.Boxes(tx).CreateForUser(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "role", role)
	return user, nil
}

// Login verifies the provided credentials and, on success, returns a new
// TokenPair. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *UserService) Login(ctx context.Context, username string, password []byte) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !cryptox.CheckPassword(password, user.Salt, user.Verifier) {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// PrincipalFromToken resolves the acting principal from an access token.
func (s *UserService) PrincipalFromToken(tokenString string) (models.Principal, error) {
	return auth.GetPrincipalFromToken(tokenString, s.secretKey)
}

// --- helpers below ---

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	principal := models.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}

	access, err := auth.GenerateToken(principal, s.secretKey, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
