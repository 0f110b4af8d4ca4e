// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/platform/validate"
)

// TokenProvider defines the contract for issuing and verifying security tokens.
//
// The canonical implementation is [sec.TokenService]; the interface exists so
// the service can be unit-tested with a stub issuer.
type TokenProvider interface {
	IssueAccessToken(userID int64) (string, error)
	IssueRefreshToken(userID int64) (string, error)
	Verify(tokenStr string) (*sec.TokenClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokens         TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokens TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A [*Session] containing the new account and a fresh token pair.
//   - Returns [apperr.Conflict] if email or username already exists; the
//     message names the offending field.
//
// # Business Rules
//   - Usernames are unique, 3 to 20 characters.
//   - Emails are unique and format-checked.
//   - Passwords are at least 6 characters and must match the confirmation.
//   - Default role is always 'user'.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := validate.New().
		LenBetween("username", input.Username, 3, 20).
		Email("email", input.Email).
		MinLen("password", input.Password, 6).
		Custom("confirmPassword", input.Password != input.ConfirmPassword, "Passwords do not match")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Checks ──────────────────────────────────────────────

	// Each field is checked separately so the client learns exactly which
	// one to change. The unique indexes remain the backstop for races.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser, // Rule: default role is always 'user'
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	// ── 5. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(user)
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// Login validates user credentials and issues a fresh token pair.
//
// # Returns
//   - A [*Session] containing the account and tokens.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup user by login (email or username).
//  2. Verify password hash using Bcrypt.
//  3. Issue access and refresh tokens.
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	input.Login = normalizeLogin(input.Login)

	validator := validate.New().
		Required("emailOrUsername", input.Login).
		Required("password", input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Fetch User Profile ─────────────────────────────────────────────

	// Return a generic unauthorized error to prevent account enumeration:
	// an unknown login and a wrong password are indistinguishable.
	user, err := service.userRepository.FindByLogin(ctx, input.Login)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// ── 3. Security Verification ──────────────────────────────────────────

	// Bcrypt's comparison is constant-time, preventing timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
//
// # Flow
//  1. Verify the token signature and expiry.
//  2. Require the refresh type marker; an access token is not accepted here.
//  3. Re-read the account so a deleted user cannot keep refreshing.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	// ── 1. Token Verification ─────────────────────────────────────────────

	claims, err := service.tokens.Verify(refreshToken)
	if err != nil {
		return nil, apperr.Forbidden("Invalid or expired refresh token")
	}

	// ── 2. Token Kind Check ───────────────────────────────────────────────

	if !claims.IsRefresh() {
		return nil, apperr.Forbidden("Invalid or expired refresh token")
	}

	// ── 3. Account Resolution ─────────────────────────────────────────────

	user, err := service.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User no longer exists")
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(user)
}

// Profile returns the authenticated member's account together with their
// activity statistics.
func (service *Service) Profile(ctx context.Context, userID int64) (*User, *Stats, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := service.userRepository.Stats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, stats, nil
}

// UpdateProfileInput holds the optional fields of a profile update.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Username *string
	Email    *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies a partial update to the member's own profile.
//
// # Business Rules
//   - Present fields obey the registration bounds (username 3–20, email format).
//   - A username or email already held by ANOTHER account is a conflict;
//     re-submitting one's own current value is allowed.
func (service *Service) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*User, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := validate.New()
	if input.Username != nil {
		validator.LenBetween("username", *input.Username, 3, 20)
	}
	if input.Email != nil {
		validator.Email("email", *input.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Checks (against other accounts) ─────────────────────

	if input.Email != nil {
		existing, err := service.userRepository.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != userID {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	if input.Username != nil {
		existing, err := service.userRepository.FindByUsername(ctx, *input.Username)
		if err == nil && existing.ID != userID {
			return nil, apperr.Conflict("Username is already taken")
		}
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	patch := ProfilePatch{
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
	}

	if err := service.userRepository.UpdateProfile(ctx, userID, patch); err != nil {
		return nil, err
	}

	// ── 4. Fresh Read ─────────────────────────────────────────────────────

	return service.userRepository.FindByID(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash.
//
// # Returns
//   - [apperr.Unauthorized] if the current password does not match.
//   - [apperr.ValidationError] if the new password is too short or the
//     confirmation does not match.
func (service *Service) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := validate.New().
		Required("currentPassword", current).
		MinLen("newPassword", newPassword, 6).
		Custom("confirmNewPassword", newPassword != confirm, "Passwords do not match")

	if err := validator.Err(); err != nil {
		return err
	}

	// ── 2. Current Password Verification ──────────────────────────────────

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(current, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// ── 3. Hash & Persist ─────────────────────────────────────────────────

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	return service.userRepository.UpdatePassword(ctx, userID, newHash)
}

// LoadIdentity resolves the authorization view of an account by ID.
//
// It satisfies the middleware's IdentityLoader contract, keeping the token
// gate aligned with live account state instead of stale claims.
func (service *Service) LoadIdentity(ctx context.Context, userID int64) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// issueSession builds the token pair returned by every authentication path.
func (service *Service) issueSession(user *User) (*Session, error) {
	accessToken, err := service.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// normalizeLogin trims surrounding whitespace from a submitted login value.
func normalizeLogin(login string) string {
	return strings.TrimSpace(login)
}
