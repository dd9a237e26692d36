package repository

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// TenantRepository defines tenant lookups. Tenants are not themselves
// tenant-scoped (they are the scope), so these methods take a bare id.
type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetAll(ctx context.Context) ([]*domain.Tenant, error)
	UpdateAdminChannel(ctx context.Context, id, channel, channelType string) error
}

// GormTenantRepository implements TenantRepository using GORM.
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GORM tenant repository.
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

func (r *GormTenantRepository) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, wrapDBError("tenant", "", err)
	}
	return t, nil
}

func (r *GormTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, wrapDBError("tenant", id, err)
	}
	return &t, nil
}

func (r *GormTenantRepository) GetAll(ctx context.Context) ([]*domain.Tenant, error) {
	var tenants []*domain.Tenant
	if err := r.db.WithContext(ctx).Find(&tenants).Error; err != nil {
		return nil, wrapDBError("tenant", "", err)
	}
	return tenants, nil
}

func (r *GormTenantRepository) UpdateAdminChannel(ctx context.Context, id, channel, channelType string) error {
	err := r.db.WithContext(ctx).Model(&domain.Tenant{}).Where("id = ?", id).
		Updates(map[string]interface{}{"admin_channel": channel, "admin_channel_type": channelType}).Error
	if err != nil {
		return wrapDBError("tenant", id, err)
	}
	return nil
}
