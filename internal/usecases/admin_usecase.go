package usecases

import (
	"context"
	"errors"
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
	"finsim.backend/pkg/utils"
)

// AdminUsecase handles back-office authentication, user management
// and admin management
type AdminUsecase struct {
	adminRepo   repositories.AdminRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	otpRepo     repositories.OTPChallengeRepository
	jwtService  *jwt.JWTService
	mailer      gateways.Mailer
	otpTTL      time.Duration
	now         func() time.Time
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	adminRepo repositories.AdminRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	otpRepo repositories.OTPChallengeRepository,
	jwtService *jwt.JWTService,
	mailer gateways.Mailer,
	otpTTL time.Duration,
) *AdminUsecase {
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &AdminUsecase{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		otpRepo:     otpRepo,
		jwtService:  jwtService,
		mailer:      mailer,
		otpTTL:      otpTTL,
		now:         time.Now,
	}
}

// Login authenticates an admin. Unknown emails and wrong passwords
// return the same error so the endpoint does not leak which admin
// accounts exist.
func (u *AdminUsecase) Login(ctx context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
	admin, err := u.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if admin.IsBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}
	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AdminAuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Admin:        admin,
	}, nil
}

// Refresh validates the refresh token, re-resolves the admin and mints
// a new access token
func (u *AdminUsecase) Refresh(ctx context.Context, input *entities.RefreshInput) (*entities.AdminAuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(input.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	admin, err := u.adminRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if admin.IsBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}

	accessToken, err := u.jwtService.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AdminAuthResponse{AccessToken: accessToken}, nil
}

// ForgotPassword issues a password reset challenge for a known admin
func (u *AdminUsecase) ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error {
	if _, err := u.adminRepo.GetByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Admin not found")
		}
		return err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}
	challenge := &entities.OTPChallenge{
		Email:     input.Email,
		Kind:      entities.ChallengeAdminPasswordReset,
		Code:      code,
		ExpiresAt: u.now().Add(u.otpTTL),
	}
	if err := u.otpRepo.Replace(ctx, challenge); err != nil {
		return err
	}

	u.dispatchOTP(input.Email, code)
	return nil
}

// ResendOTP regenerates the reset code. When no reset is pending the
// call falls back to the forgot-password flow.
func (u *AdminUsecase) ResendOTP(ctx context.Context, input *entities.ResendOTPInput) error {
	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, input.Email, entities.ChallengeAdminPasswordReset)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return u.ForgotPassword(ctx, &entities.ForgotPasswordInput{Email: input.Email})
		}
		return err
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

// ResetPassword completes an admin password reset challenge
func (u *AdminUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	challenge, err := u.otpRepo.GetByEmailAndKind(ctx, input.Email, entities.ChallengeAdminPasswordReset)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Password reset request not found")
		}
		return err
	}

	if challenge.Code != input.OTP {
		return domainerrors.ErrOTPInvalid
	}
	if challenge.IsExpired(u.now()) {
		return domainerrors.ErrOTPExpired
	}

	admin, err := u.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = passwordHash
	if err := u.adminRepo.Update(ctx, admin); err != nil {
		return err
	}

	if err := u.otpRepo.Delete(ctx, challenge.ID); err != nil {
		logger.Error(ctx, "failed to delete used OTP challenge", zap.Error(err))
	}
	return nil
}

// ChangePassword rotates the password of a logged-in admin
func (u *AdminUsecase) ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.BadRequest("New password and confirmation do not match")
	}

	admin, err := u.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, admin.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = passwordHash
	return u.adminRepo.Update(ctx, admin)
}

// GetProfile gets the caller's admin record
func (u *AdminUsecase) GetProfile(ctx context.Context, adminID uuid.UUID) (*entities.Admin, error) {
	return u.adminRepo.GetByID(ctx, adminID)
}

// ListUsers lists user accounts with their profiles attached
func (u *AdminUsecase) ListUsers(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.AdminUserDetail, int64, error) {
	users, total, err := u.userRepo.List(ctx, search, pagination)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*entities.AdminUserDetail, 0, len(users))
	for _, user := range users {
		detail := &entities.AdminUserDetail{User: user}
		profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
		if err == nil {
			detail.Profile = profile
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	return details, total, nil
}

// GetUser gets one user account with their profile attached
func (u *AdminUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*entities.AdminUserDetail, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	detail := &entities.AdminUserDetail{User: user}
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		detail.Profile = profile
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	return detail, nil
}

// SetUserBlocked blocks or unblocks a user account
func (u *AdminUsecase) SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	if err := u.userRepo.SetBlocked(ctx, userID, blocked); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return err
	}
	return nil
}

// CreateAdmin creates a new admin account (superadmin only)
func (u *AdminUsecase) CreateAdmin(ctx context.Context, input *entities.CreateAdminInput) (*entities.Admin, error) {
	_, err := u.adminRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("Admin with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &entities.Admin{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		Role:         input.Role,
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ListAdmins lists every admin account (superadmin only)
func (u *AdminUsecase) ListAdmins(ctx context.Context) ([]*entities.Admin, error) {
	return u.adminRepo.List(ctx)
}

// UpdateAdmin updates an admin account (superadmin only)
func (u *AdminUsecase) UpdateAdmin(ctx context.Context, adminID uuid.UUID, input *entities.UpdateAdminInput) (*entities.Admin, error) {
	admin, err := u.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Admin not found")
		}
		return nil, err
	}

	if input.FullName != nil {
		admin.FullName = *input.FullName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domainerrors.BadRequest("Invalid admin role")
		}
		admin.Role = *input.Role
	}
	if input.IsBlocked != nil {
		admin.IsBlocked = *input.IsBlocked
	}

	if err := u.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin deletes an admin account (superadmin only). The caller
// cannot delete themselves or the last remaining superadmin.
func (u *AdminUsecase) DeleteAdmin(ctx context.Context, callerID, adminID uuid.UUID) error {
	if callerID == adminID {
		return domainerrors.Forbidden("Admins cannot delete their own account")
	}

	admin, err := u.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Admin not found")
		}
		return err
	}

	if admin.Role == entities.AdminRoleSuperAdmin {
		count, err := u.adminRepo.CountByRole(ctx, entities.AdminRoleSuperAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return domainerrors.Forbidden("Cannot delete the last superadmin")
		}
	}

	return u.adminRepo.Delete(ctx, adminID)
}

func (u *AdminUsecase) dispatchOTP(to, code string) {
	go func() {
		subject, body := email.OTPEmail(code, u.otpTTL)
		if err := u.mailer.Send(context.Background(), to, subject, body); err != nil {
			logger.Error(context.Background(), "failed to send OTP email",
				zap.String("email", to),
				zap.Error(err))
		}
	}()
}
