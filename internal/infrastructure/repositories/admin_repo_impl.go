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

// AdminRepository implements admin account data operations
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin account
func (r *AdminRepository) Create(ctx context.Context, admin *entities.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = utils.GenerateUUIDv7()
	}
	m := &models.Admin{
		ID:           admin.ID,
		Email:        admin.Email,
		FullName:     admin.FullName,
		PasswordHash: admin.PasswordHash,
		Role:         string(admin.Role),
		IsBlocked:    admin.IsBlocked,
		CreatedAt:    admin.CreatedAt,
		UpdatedAt:    admin.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	var m models.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	var m models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates mutable admin fields
func (r *AdminRepository) Update(ctx context.Context, admin *entities.Admin) error {
	updates := map[string]interface{}{
		"full_name":     admin.FullName,
		"password_hash": admin.PasswordHash,
		"role":          string(admin.Role),
		"is_blocked":    admin.IsBlocked,
		"updated_at":    time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", admin.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an admin account
func (r *AdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Admin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns all admin accounts, newest first
func (r *AdminRepository) List(ctx context.Context) ([]*entities.Admin, error) {
	var ms []models.Admin
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	admins := make([]*entities.Admin, 0, len(ms))
	for _, m := range ms {
		model := m
		admins = append(admins, r.toEntity(&model))
	}
	return admins, nil
}

// CountByRole counts admins holding the given role
func (r *AdminRepository) CountByRole(ctx context.Context, role entities.AdminRole) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Where("role = ?", string(role)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// toEntity converts GORM model to Domain Entity
func (r *AdminRepository) toEntity(m *models.Admin) *entities.Admin {
	return &entities.Admin{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         entities.AdminRole(m.Role),
		IsBlocked:    m.IsBlocked,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
