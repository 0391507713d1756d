package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skilltrail/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&RoadmapModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateRoadmap inserts a new roadmap row.
func (s *GormStore) CreateRoadmap(r domain.Roadmap) error {
	model, err := roadmapToModel(r)
	if err != nil {
		return err
	}
	return s.db.Create(&model).Error
}

// ListRoadmaps returns the owner's roadmaps newest-first.
func (s *GormStore) ListRoadmaps(ownerID string) ([]domain.Roadmap, error) {
	var models []RoadmapModel
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Roadmap, 0, len(models))
	for _, m := range models {
		r, err := roadmapFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// GetRoadmap retrieves a roadmap scoped to its owner.
func (s *GormStore) GetRoadmap(ownerID, id string) (domain.Roadmap, bool, error) {
	var model RoadmapModel
	if err := s.db.First(&model, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Roadmap{}, false, nil
		}
		return domain.Roadmap{}, false, err
	}
	r, err := roadmapFromModel(model)
	if err != nil {
		return domain.Roadmap{}, false, err
	}
	return r, true, nil
}

// UpdateContent replaces the content document and derived progress. The write
// is a single owner-scoped UPDATE, so concurrent toggles resolve
// last-write-wins at the row level rather than corrupting the document.
func (s *GormStore) UpdateContent(ownerID, id string, content domain.Content, progress int) (domain.Roadmap, bool, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return domain.Roadmap{}, false, fmt.Errorf("encode content: %w", err)
	}
	var updated RoadmapModel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&RoadmapModel{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]any{
				"content":    datatypes.JSON(raw),
				"progress":   progress,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&updated, "id = ? AND owner_id = ?", id, ownerID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Roadmap{}, false, nil
	}
	if err != nil {
		return domain.Roadmap{}, false, err
	}
	r, err := roadmapFromModel(updated)
	if err != nil {
		return domain.Roadmap{}, false, err
	}
	return r, true, nil
}

// DeleteRoadmap removes the matching row; deleting nothing is success.
func (s *GormStore) DeleteRoadmap(ownerID, id string) error {
	return s.db.Delete(&RoadmapModel{}, "id = ? AND owner_id = ?", id, ownerID).Error
}
