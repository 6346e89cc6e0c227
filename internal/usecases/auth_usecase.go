package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/gateways"
	"finsim.backend/internal/domain/repositories"
	"finsim.backend/internal/infrastructure/email"
	"finsim.backend/pkg/crypto"
	"finsim.backend/pkg/jwt"
	"finsim.backend/pkg/logger"
	"finsim.backend/pkg/redis"
)

// AuthUsecase handles account registration and authentication
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	otpRepo      repositories.OTPChallengeRepository
	profileRepo  repositories.ProfileRepository
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
	mailer       gateways.Mailer
	identity     gateways.IdentityProvider
	otpTTL       time.Duration
	sessionTTL   time.Duration
	now          func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPChallengeRepository,
	profileRepo repositories.ProfileRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	mailer gateways.Mailer,
	identity gateways.IdentityProvider,
	otpTTL time.Duration,
	sessionTTL time.Duration,
) *AuthUsecase {
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthUsecase{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		profileRepo:  profileRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		mailer:       mailer,
		identity:     identity,
		otpTTL:       otpTTL,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

// Register starts a registration. No account row is created; the
// hashed credentials wait on the OTP challenge until verified.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) error {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return domainerrors.Conflict("Email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	challenge := &entities.OTPChallenge{
		Email:        input.Email,
		Kind:         entities.ChallengeRegistration,
		Code:         code,
		ExpiresAt:    u.now().Add(u.otpTTL),
		PasswordHash: passwordHash,
		FullName:     input.FullName,
	}
	if err := u.otpRepo.Replace(ctx, challenge); err != nil {
		return err
	}

	u.dispatchOTP(input.Email, code)
	return nil
}

// VerifyOTP completes a registration and returns a token pair
func (u *AuthUsecase) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.AuthResponse, error) {
	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, input.Email, entities.ChallengeRegistration)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found. Please register first")
		}
		return nil, err
	}

	if challenge.Code != input.OTP {
		return nil, domainerrors.ErrOTPInvalid
	}
	if challenge.IsExpired(u.now()) {
		return nil, domainerrors.ErrOTPExpired
	}

	user := &entities.User{
		Email:        challenge.Email,
		FullName:     challenge.FullName,
		PasswordHash: challenge.PasswordHash,
		Role:         entities.UserRoleUser,
		IsVerified:   true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.otpRepo.Delete(ctx, challenge.ID); err != nil {
		logger.Error(ctx, "failed to delete used OTP challenge", zap.Error(err))
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// ResendOTP regenerates the code on a pending registration
func (u *AuthUsecase) ResendOTP(ctx context.Context, input *entities.ResendOTPInput) error {
	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, input.Email, entities.ChallengeRegistration)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		if _, userErr := u.userRepo.GetByEmail(ctx, input.Email); userErr == nil {
			return domainerrors.Conflict("User already verified. Please login or use forgot-password")
		} else if !errors.Is(userErr, domainerrors.ErrNotFound) {
			return userErr
		}
		return domainerrors.NotFound("User not found. Please register first")
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}
	challenge.Code = code
	challenge.ExpiresAt = u.now().Add(u.otpTTL)
	if err := u.otpRepo.Replace(ctx, challenge); err != nil {
		return err
	}

	u.dispatchOTP(input.Email, code)
	return nil
}

// Login authenticates a verified account
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	if !user.IsVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if user.IsBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if input.UseSession {
		sessionID := uuid.New().String()
		data := &redis.SessionData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, fmt.Errorf("failed to store session in redis: %w", err)
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// GoogleLogin exchanges an authorization code and finds or creates the
// matching verified account. Accounts created here have no password
// and can only sign in through Google until one is set.
func (u *AuthUsecase) GoogleLogin(ctx context.Context, input *entities.GoogleLoginInput) (*entities.AuthResponse, error) {
	identity, err := u.identity.Exchange(ctx, input.Code)
	if err != nil {
		return nil, domainerrors.Unauthorized("Google sign-in failed")
	}

	user, err := u.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user = &entities.User{
			Email:        identity.Email,
			FullName:     identity.Name,
			Role:         entities.UserRoleUser,
			IsVerified:   true,
			GoogleLinked: true,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	if user.IsBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}

	if !user.GoogleLinked {
		user.GoogleLinked = true
		if err := u.userRepo.Update(ctx, user); err != nil {
			logger.Warn(ctx, "failed to mark account google-linked", zap.Error(err))
		}
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Refresh validates the refresh token, re-resolves the account and
// mints a new access token. The refresh token itself is unchanged.
func (u *AuthUsecase) Refresh(ctx context.Context, input *entities.RefreshInput) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(input.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if user.IsBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}

	accessToken, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{AccessToken: accessToken}, nil
}

// ForgotPassword issues a password reset challenge for a known account
func (u *AuthUsecase) ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}
	challenge := &entities.OTPChallenge{
		Email:     input.Email,
		Kind:      entities.ChallengePasswordReset,
		Code:      code,
		ExpiresAt: u.now().Add(u.otpTTL),
	}
	if err := u.otpRepo.Replace(ctx, challenge); err != nil {
		return err
	}

	u.dispatchOTP(input.Email, code)
	return nil
}

// ResetPassword completes a password reset challenge
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, input.Email, entities.ChallengePasswordReset)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Password reset request not found. Please try again")
		}
		return err
	}

	if challenge.Code != input.OTP {
		return domainerrors.ErrOTPInvalid
	}
	if challenge.IsExpired(u.now()) {
		return domainerrors.ErrOTPExpired
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := u.otpRepo.Delete(ctx, challenge.ID); err != nil {
		logger.Error(ctx, "failed to delete used OTP challenge", zap.Error(err))
	}
	return nil
}

// ChangePassword rotates the password of a logged-in account
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.BadRequest("New password and confirm password do not match")
	}
	if input.CurrentPassword == input.NewPassword {
		return domainerrors.BadRequest("New password must be different from current password")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return u.userRepo.Update(ctx, user)
}

// RequestAccountDeletion issues a deletion challenge for the caller
func (u *AuthUsecase) RequestAccountDeletion(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}
	challenge := &entities.OTPChallenge{
		Email:     user.Email,
		Kind:      entities.ChallengeAccountDeletion,
		Code:      code,
		ExpiresAt: u.now().Add(u.otpTTL),
	}
	if err := u.otpRepo.Replace(ctx, challenge); err != nil {
		return err
	}

	u.dispatchOTP(user.Email, code)
	return nil
}

// ConfirmAccountDeletion verifies the OTP then removes the profile and
// the account for good
func (u *AuthUsecase) ConfirmAccountDeletion(ctx context.Context, userID uuid.UUID, input *entities.ConfirmDeletionInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, user.Email, entities.ChallengeAccountDeletion)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Account deletion request not found. Please try again")
		}
		return err
	}

	if challenge.Code != input.OTP {
		return domainerrors.ErrOTPInvalid
	}
	if challenge.IsExpired(u.now()) {
		return domainerrors.ErrOTPExpired
	}

	if err := u.profileRepo.DeleteByUserID(ctx, user.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := u.otpRepo.Delete(ctx, challenge.ID); err != nil {
		logger.Error(ctx, "failed to delete used OTP challenge", zap.Error(err))
	}
	return nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// dispatchOTP sends the code without blocking the request. Failures
// are logged, never surfaced.
func (u *AuthUsecase) dispatchOTP(to, code string) {
	go func() {
		subject, body := email.OTPEmail(code, u.otpTTL)
		if err := u.mailer.Send(context.Background(), to, subject, body); err != nil {
			logger.Error(context.Background(), "failed to send OTP email",
				zap.String("email", to),
				zap.Error(err))
		}
	}()
}
