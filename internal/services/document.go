package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/studydeck-backend/internal/content"
	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/repos"
	"github.com/yungbote/studydeck-backend/internal/requestdata"
	"github.com/yungbote/studydeck-backend/internal/types"
)

// CourseListing is a lightweight row for course index views.
type CourseListing struct {
	Slug        string    `json:"slug"`
	SubjectName string    `json:"subject_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DocumentService interface {
	// Save runs a read-merge-write cycle for the caller's course under slug.
	// The cycle is intentionally not atomic: concurrent saves may interleave,
	// and the merge rules bound what can be lost rather than locking writers out.
	Save(ctx context.Context, tx *gorm.DB, slug string, incoming *content.CourseDocument) (*content.CourseDocument, error)
	Get(ctx context.Context, tx *gorm.DB, slug string) (*content.CourseDocument, error)
	List(ctx context.Context, tx *gorm.DB) ([]CourseListing, error)
	// Delete removes the course outright. It bypasses the merge engine.
	Delete(ctx context.Context, tx *gorm.DB, slug string) error
}

type documentService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.CourseDocumentRepo
}

func NewDocumentService(db *gorm.DB, baseLog *logger.Logger, repo repos.CourseDocumentRepo) DocumentService {
	return &documentService{
		db:   db,
		log:  baseLog.With("service", "DocumentService"),
		repo: repo,
	}
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (s *documentService) Save(ctx context.Context, tx *gorm.DB, slug string, incoming *content.CourseDocument) (*content.CourseDocument, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if incoming == nil {
		return nil, fmt.Errorf("course document is required")
	}
	rec, err := s.repo.GetByOwnerAndSlug(ctx, tx, rd.UserID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load course document: %w", err)
	}
	var existing *content.CourseDocument
	if rec != nil && len(rec.Doc) > 0 {
		existing = &content.CourseDocument{}
		if err := json.Unmarshal(rec.Doc, existing); err != nil {
			s.log.Warn("Stored course document undecodable, replacing", "slug", slug, "error", err.Error())
			existing = nil
		}
	}
	merged := content.Merge(existing, incoming)
	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode course document: %w", err)
	}
	write := &types.CourseDocumentRecord{
		OwnerUserID: rd.UserID,
		Slug:        slug,
		Doc:         datatypes.JSON(payload),
	}
	if err := s.repo.Upsert(ctx, tx, write); err != nil {
		return nil, fmt.Errorf("failed to store course document: %w", err)
	}
	return merged, nil
}

func (s *documentService) Get(ctx context.Context, tx *gorm.DB, slug string) (*content.CourseDocument, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	rec, err := s.repo.GetByOwnerAndSlug(ctx, tx, rd.UserID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load course document: %w", err)
	}
	if rec == nil || len(rec.Doc) == 0 {
		return nil, nil
	}
	doc := &content.CourseDocument{}
	if err := json.Unmarshal(rec.Doc, doc); err != nil {
		return nil, fmt.Errorf("failed to decode course document: %w", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, tx *gorm.DB) ([]CourseListing, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	recs, err := s.repo.ListByOwner(ctx, tx, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course documents: %w", err)
	}
	listings := make([]CourseListing, 0, len(recs))
	for _, rec := range recs {
		listing := CourseListing{
			Slug:      rec.Slug,
			UpdatedAt: rec.UpdatedAt,
		}
		var doc content.CourseDocument
		if len(rec.Doc) > 0 {
			if err := json.Unmarshal(rec.Doc, &doc); err == nil {
				listing.SubjectName = doc.SubjectName
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (s *documentService) Delete(ctx context.Context, tx *gorm.DB, slug string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("unauthorized")
	}
	slug = normalizeSlug(slug)
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if err := s.repo.DeleteByOwnerAndSlug(ctx, tx, rd.UserID, slug); err != nil {
		return fmt.Errorf("failed to delete course document: %w", err)
	}
	return nil
}
