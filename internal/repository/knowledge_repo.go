package repository

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"gorm.io/gorm"
)

// KnowledgeRepository defines tenant-scoped knowledge entry operations.
type KnowledgeRepository interface {
	Create(ctx context.Context, k *domain.KnowledgeEntry) (*domain.KnowledgeEntry, error)
	ActiveByLanguage(ctx context.Context, tenantID string, lang domain.Language) ([]*domain.KnowledgeEntry, error)
}

// GormKnowledgeRepository implements KnowledgeRepository using GORM.
type GormKnowledgeRepository struct {
	db *gorm.DB
}

// NewGormKnowledgeRepository creates a new GORM knowledge repository.
func NewGormKnowledgeRepository(db *gorm.DB) *GormKnowledgeRepository {
	return &GormKnowledgeRepository{db: db}
}

func (r *GormKnowledgeRepository) Create(ctx context.Context, k *domain.KnowledgeEntry) (*domain.KnowledgeEntry, error) {
	if err := r.db.WithContext(ctx).Create(k).Error; err != nil {
		return nil, wrapDBError("knowledge", "", err)
	}
	return k, nil
}

// ActiveByLanguage returns every active knowledge entry for tenant+language,
// the candidate set the Knowledge Retrieval component scores (§4.4).
func (r *GormKnowledgeRepository) ActiveByLanguage(ctx context.Context, tenantID string, lang domain.Language) ([]*domain.KnowledgeEntry, error) {
	var entries []*domain.KnowledgeEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND language = ? AND is_active = ?", tenantID, lang, true).
		Order("priority DESC").
		Find(&entries).Error
	if err != nil {
		return nil, wrapDBError("knowledge", "", err)
	}
	return entries, nil
}
