package repositories

import (
	"context"
	"errors"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/infrastructure/models"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTPChallengeRepository implements verification challenge operations
type OTPChallengeRepository struct {
	db *gorm.DB
}

// NewOTPChallengeRepository creates a new OTP challenge repository
func NewOTPChallengeRepository(db *gorm.DB) *OTPChallengeRepository {
	return &OTPChallengeRepository{db: db}
}

// Replace drops any existing challenge for (email, kind) and stores the new one
func (r *OTPChallengeRepository) Replace(ctx context.Context, challenge *entities.OTPChallenge) error {
	if challenge.ID == uuid.Nil {
		challenge.ID = utils.GenerateUUIDv7()
	}
	m := &models.OTPChallenge{
		ID:           challenge.ID,
		Email:        challenge.Email,
		Kind:         string(challenge.Kind),
		Code:         challenge.Code,
		PasswordHash: challenge.PasswordHash,
		FullName:     challenge.FullName,
		ExpiresAt:    challenge.ExpiresAt,
		CreatedAt:    challenge.CreatedAt,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND kind = ?", challenge.Email, string(challenge.Kind)).
			Delete(&models.OTPChallenge{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

// GetByEmailAndKind gets the pending challenge for an email and kind
func (r *OTPChallengeRepository) GetByEmailAndKind(ctx context.Context, email string, kind entities.ChallengeKind) (*entities.OTPChallenge, error) {
	var m models.OTPChallenge
	if err := r.db.WithContext(ctx).Where("email = ? AND kind = ?", email, string(kind)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Delete removes a challenge
func (r *OTPChallengeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OTPChallenge{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes challenges past their expiry and returns the count
func (r *OTPChallengeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.OTPChallenge{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// toEntity converts GORM model to Domain Entity
func (r *OTPChallengeRepository) toEntity(m *models.OTPChallenge) *entities.OTPChallenge {
	return &entities.OTPChallenge{
		ID:           m.ID,
		Email:        m.Email,
		Kind:         entities.ChallengeKind(m.Kind),
		Code:         m.Code,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		ExpiresAt:    m.ExpiresAt,
		CreatedAt:    m.CreatedAt,
	}
}
