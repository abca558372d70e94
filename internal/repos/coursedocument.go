package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/types"
)

type CourseDocumentRepo interface {
	GetByOwnerAndSlug(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, slug string) (*types.CourseDocumentRecord, error)
	Upsert(ctx context.Context, tx *gorm.DB, rec *types.CourseDocumentRecord) error
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.CourseDocumentRecord, error)
	DeleteByOwnerAndSlug(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, slug string) error
}

type courseDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseDocumentRepo(db *gorm.DB, baseLog *logger.Logger) CourseDocumentRepo {
	return &courseDocumentRepo{db: db, log: baseLog.With("repo", "CourseDocumentRepo")}
}

func (cr *courseDocumentRepo) GetByOwnerAndSlug(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, slug string) (*types.CourseDocumentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.CourseDocumentRecord
	err := transaction.WithContext(ctx).
		Where("owner_user_id = ? AND slug = ?", ownerID, slug).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *courseDocumentRepo) Upsert(ctx context.Context, tx *gorm.DB, rec *types.CourseDocumentRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_user_id"}, {Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(rec).Error
}

func (cr *courseDocumentRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.CourseDocumentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.CourseDocumentRecord
	if err := transaction.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *courseDocumentRepo) DeleteByOwnerAndSlug(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, slug string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("owner_user_id = ? AND slug = ?", ownerID, slug).
		Delete(&types.CourseDocumentRecord{}).Error
}
