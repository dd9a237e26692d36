package repository

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// PropertyRepository defines tenant-scoped property operations.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Property, error)
	FindAvailable(ctx context.Context, tenantID string, category domain.PropertyCategory, budgetMin, budgetMax int64, propertyType string, limit int) ([]*domain.Property, error)
	FindCandidatesForLead(ctx context.Context, tenantID string, budgetMax int64) ([]*domain.Property, error)
}

// GormPropertyRepository implements PropertyRepository using GORM.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GORM property repository.
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, wrapDBError("property", "", err)
	}
	return p, nil
}

func (r *GormPropertyRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Property, error) {
	var p domain.Property
	err := r.db.WithContext(ctx).First(&p, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, wrapDBError("property", id, err)
	}
	return &p, nil
}

// FindAvailable selects matching available properties for VALUE_PROPOSITION
// (§4.1), ordered to surface featured/urgent inventory first.
func (r *GormPropertyRepository) FindAvailable(ctx context.Context, tenantID string, category domain.PropertyCategory, budgetMin, budgetMax int64, propertyType string, limit int) ([]*domain.Property, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ? AND is_available = ?", tenantID, true)
	if category != "" {
		q = q.Where("property_category = ?", category)
	}
	if budgetMin > 0 {
		q = q.Where("price >= ?", budgetMin)
	}
	if budgetMax > 0 {
		q = q.Where("price <= ?", budgetMax)
	}
	if propertyType != "" {
		q = q.Where("property_type = ?", propertyType)
	}

	var props []*domain.Property
	err := q.Order("is_featured DESC, is_urgent DESC, created_at DESC").Limit(limit).Find(&props).Error
	if err != nil {
		return nil, wrapDBError("property", "", err)
	}
	return props, nil
}

// FindCandidatesForLead selects available properties up to budgetMax for
// the match notifier (§4.8), which applies the remaining predicates
// in-process since they depend on substring/range logic GORM expresses
// awkwardly.
func (r *GormPropertyRepository) FindCandidatesForLead(ctx context.Context, tenantID string, budgetMax int64) ([]*domain.Property, error) {
	var props []*domain.Property
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_available = ? AND price <= ?", tenantID, true, budgetMax).
		Find(&props).Error
	if err != nil {
		return nil, wrapDBError("property", "", err)
	}
	return props, nil
}
