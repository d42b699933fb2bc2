package services

import (
	"context"
	"fmt"
	"time"

	"coachfit_server/database"
	"coachfit_server/lib"
	"coachfit_server/structs"
	"coachfit_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// AuthService authenticates marketplace users and issues access tokens.
type AuthService struct {
	logger *gecho.Logger
	db     *database.DB
	email  *EmailService
	cfg    *structs.Config
}

func NewAuthService(logger *gecho.Logger, db *database.DB, email *EmailService, cfg *structs.Config) *AuthService {
	return &AuthService{
		logger: logger,
		db:     db,
		email:  email,
		cfg:    cfg,
	}
}

// Login verifies credentials and returns the profile with a fresh access
// token. Unknown email and wrong password are indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, req *structs.AuthRequest) (*tables.AuthResponse, error) {
	user, err := database.Query[tables.UserProfile](as.db).
		Where("email", req.Email).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, lib.ErrInvalidCredentials
	}

	match, err := lib.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, lib.ErrInvalidCredentials
	}

	token, err := as.issueToken(user)
	if err != nil {
		return nil, err
	}

	if _, err := database.Query[tables.UserProfile](as.db).
		Where("id", user.ID).
		Update(ctx, map[string]any{"last_login": time.Now()}); err != nil {
		as.logger.Warn("Failed to record last login",
			gecho.Field("user_id", user.ID),
			gecho.Field("error", err),
		)
	}

	return &tables.AuthResponse{User: user, AccessToken: token}, nil
}

// Register creates a new profile and sends the welcome email off the request
// path.
func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*tables.AuthResponse, error) {
	hash, err := lib.HashPassword(req.Password, lib.DefaultArgonParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &tables.UserProfile{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if _, err := database.Query[tables.UserProfile](as.db).Insert(ctx, user); err != nil {
		mapped := lib.MapPgError(err)
		if lib.IsUniqueViolation(mapped) {
			return nil, lib.ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := as.issueToken(user)
	if err != nil {
		return nil, err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := as.email.SendWelcomeEmail(sendCtx, user.Email, user.FullName); err != nil {
			as.logger.Warn("Failed to send welcome email",
				gecho.Field("user_id", user.ID),
				gecho.Field("error", err),
			)
		}
	}()

	return &tables.AuthResponse{User: user, AccessToken: token}, nil
}

// Me resolves the authenticated user's profile.
func (as *AuthService) Me(ctx context.Context, userID uuid.UUID) (*tables.UserProfile, error) {
	user, err := database.Query[tables.UserProfile](as.db).
		Where("id", userID).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}
	return user, nil
}

func (as *AuthService) issueToken(user *tables.UserProfile) (string, error) {
	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:   user.ID,
		Email: user.Email,
		Role:  user.Role,
		Iat:   now,
		Exp:   now.Add(as.cfg.Auth.AccessTokenExpiry),
		Jti:   uuid.New(),
	}

	token, err := lib.GenerateAccessToken(claims, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}
