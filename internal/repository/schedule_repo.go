package repository

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// ScheduleRepository defines tenant-scoped schedule slot operations.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error)
	AvailableSlots(ctx context.Context, tenantID string, limit int) ([]*domain.ScheduleSlot, error)
	// Book atomically flips is_booked false->true for slotID, returning
	// ErrConflict if it was already booked (invariant 8).
	Book(ctx context.Context, tenantID, slotID string) error
}

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository.
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, wrapDBError("schedule_slot", "", err)
	}
	return s, nil
}

func (r *GormScheduleRepository) AvailableSlots(ctx context.Context, tenantID string, limit int) ([]*domain.ScheduleSlot, error) {
	var slots []*domain.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_booked = ?", tenantID, false).
		Order("day_of_week ASC, start_time ASC").
		Limit(limit).
		Find(&slots).Error
	if err != nil {
		return nil, wrapDBError("schedule_slot", "", err)
	}
	return slots, nil
}

// Book performs the atomic false->true transition equivalent to
// `SELECT ... FOR UPDATE`: a single conditional UPDATE whose affected-row
// count tells us whether we won the race (§3 invariant 8, §5).
func (r *GormScheduleRepository) Book(ctx context.Context, tenantID, slotID string) error {
	res := r.db.WithContext(ctx).Model(&domain.ScheduleSlot{}).
		Where("tenant_id = ? AND id = ? AND is_booked = ?", tenantID, slotID, false).
		Update("is_booked", true)
	if res.Error != nil {
		return wrapDBError("schedule_slot", slotID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.ErrConflict{Message: "schedule slot already booked: " + slotID}
	}
	return nil
}
