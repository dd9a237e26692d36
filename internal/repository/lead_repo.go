package repository

import (
	"context"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// LeadRepository defines tenant-scoped lead operations (invariant 1: every
// query filters on tenant_id).
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error)
	GetByChannelIdentity(ctx context.Context, tenantID, channelIdentity string) (*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	GhostCandidates(ctx context.Context, tenantID string, inactiveSince time.Time) ([]*domain.Lead, error)
	MatchCandidates(ctx context.Context, tenantID string) ([]*domain.Lead, error)
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// GormLeadRepository implements LeadRepository using GORM.
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GORM lead repository.
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

func (r *GormLeadRepository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, wrapDBError("lead", "", err)
	}
	return l, nil
}

func (r *GormLeadRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.WithContext(ctx).First(&l, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, wrapDBError("lead", id, err)
	}
	return &l, nil
}

// GetByChannelIdentity finds the lead uniquely identified by
// (tenant_id, channel_identity) per invariant 2. Returns an *ErrNotFound if
// no such lead exists yet (the caller creates one on first inbound
// message).
func (r *GormLeadRepository) GetByChannelIdentity(ctx context.Context, tenantID, channelIdentity string) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.WithContext(ctx).First(&l, "tenant_id = ? AND channel_identity = ?", tenantID, channelIdentity).Error
	if err != nil {
		return nil, wrapDBError("lead", channelIdentity, err)
	}
	return &l, nil
}

func (r *GormLeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	if err := r.db.WithContext(ctx).Save(l).Error; err != nil {
		return wrapDBError("lead", l.ID, err)
	}
	return nil
}

// GhostCandidates selects leads eligible for the Ghost Protocol follow-up
// (§4.7): phone set, not in HANDOFF_SCHEDULE/COMPLETED, inactive since the
// cutoff, and not already reminded. The cutoff comparison is inclusive: a
// lead whose last_interaction lands exactly on inactiveSince (i.e. exactly
// 2h idle) is already a candidate, not one tick away from it.
func (r *GormLeadRepository) GhostCandidates(ctx context.Context, tenantID string, inactiveSince time.Time) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("phone IS NOT NULL AND phone <> ''").
		Where("state NOT IN ?", []domain.LeadState{domain.StateHandoffSchedule, domain.StateCompleted}).
		Where("last_interaction <= ?", inactiveSince).
		Where("ghost_reminder_sent = ?", false).
		Find(&leads).Error
	if err != nil {
		return nil, wrapDBError("lead", "", err)
	}
	return leads, nil
}

// MatchCandidates selects leads eligible for new-property match
// notification (§4.8): qualified or hot.
func (r *GormLeadRepository) MatchCandidates(ctx context.Context, tenantID string) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("status IN ?", []domain.LeadStatus{domain.StatusQualified, domain.StatusHot}).
		Find(&leads).Error
	if err != nil {
		return nil, wrapDBError("lead", "", err)
	}
	return leads, nil
}

// ListTenantIDs returns every tenant id with at least one lead, used by
// workers to fan out per-tenant.
func (r *GormLeadRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).Distinct().Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, wrapDBError("lead", "", err)
	}
	return ids, nil
}
