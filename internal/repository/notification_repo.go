package repository

import (
	"context"
	"errors"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository tracks which (lead, property) pairs have already
// been notified by the match notifier (§4.8, §9 Open Questions).
type NotificationRepository interface {
	AlreadyNotified(ctx context.Context, tenantID, leadID, propertyID string) (bool, error)
	Record(ctx context.Context, n *domain.PropertyNotification) error
}

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) AlreadyNotified(ctx context.Context, tenantID, leadID, propertyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PropertyNotification{}).
		Where("tenant_id = ? AND lead_id = ? AND property_id = ?", tenantID, leadID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError("property_notification", "", err)
	}
	return count > 0, nil
}

// Record inserts the de-duplication row, tolerating a races-lost unique
// constraint violation as a no-op (another worker iteration already
// recorded it).
func (r *GormNotificationRepository) Record(ctx context.Context, n *domain.PropertyNotification) error {
	err := r.db.WithContext(ctx).Create(n).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return wrapDBError("property_notification", "", err)
	}
	return nil
}
