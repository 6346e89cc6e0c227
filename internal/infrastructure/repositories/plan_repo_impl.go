package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/infrastructure/models"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRepository implements subscription plan data operations
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create creates a new plan
func (r *PlanRepository) Create(ctx context.Context, plan *entities.Plan) error {
	if plan.ID == uuid.Nil {
		plan.ID = utils.GenerateUUIDv7()
	}
	m, err := r.toModel(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a plan by ID
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	var m models.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByName gets a plan by its unique name
func (r *PlanRepository) GetByName(ctx context.Context, planName string) (*entities.Plan, error) {
	var m models.Plan
	if err := r.db.WithContext(ctx).Where("plan_name = ?", planName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetAll gets every plan, including inactive ones
func (r *PlanRepository) GetAll(ctx context.Context) ([]*entities.Plan, error) {
	var ms []models.Plan
	if err := r.db.WithContext(ctx).Order("price").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// GetActive gets the purchasable plans
func (r *PlanRepository) GetActive(ctx context.Context) ([]*entities.Plan, error) {
	var ms []models.Plan
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("price").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// Update updates a plan
func (r *PlanRepository) Update(ctx context.Context, plan *entities.Plan) error {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"plan_name":         plan.PlanName,
		"description":       plan.Description,
		"price":             plan.Price,
		"currency":          plan.Currency,
		"interval":          plan.Interval,
		"stripe_price_id":   plan.StripePriceID,
		"simulations_limit": plan.SimulationsLimit,
		"features":          string(features),
		"is_active":         plan.IsActive,
		"updated_at":        time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Plan{}).Where("id = ?", plan.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete deletes a plan
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PlanRepository) toModel(plan *entities.Plan) (*models.Plan, error) {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return nil, err
	}
	return &models.Plan{
		ID:               plan.ID,
		PlanName:         plan.PlanName,
		Description:      plan.Description,
		Price:            plan.Price,
		Currency:         plan.Currency,
		Interval:         plan.Interval,
		StripePriceID:    plan.StripePriceID,
		SimulationsLimit: plan.SimulationsLimit,
		Features:         string(features),
		IsActive:         plan.IsActive,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
	}, nil
}

// toEntity converts GORM model to Domain Entity
func (r *PlanRepository) toEntity(m *models.Plan) *entities.Plan {
	var features []string
	if m.Features != "" {
		// A malformed row yields an empty feature list rather than an error
		_ = json.Unmarshal([]byte(m.Features), &features)
	}
	return &entities.Plan{
		ID:               m.ID,
		PlanName:         m.PlanName,
		Description:      m.Description,
		Price:            m.Price,
		Currency:         m.Currency,
		Interval:         m.Interval,
		StripePriceID:    m.StripePriceID,
		SimulationsLimit: m.SimulationsLimit,
		Features:         features,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *PlanRepository) toEntities(ms []models.Plan) []*entities.Plan {
	plans := make([]*entities.Plan, 0, len(ms))
	for _, m := range ms {
		model := m
		plans = append(plans, r.toEntity(&model))
	}
	return plans
}
