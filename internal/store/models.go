package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"skilltrail/pkg/domain"
)

// RoadmapModel is the GORM row backing a roadmap. Content is the normalized
// document stored as a JSON column.
type RoadmapModel struct {
	ID        string         `gorm:"primaryKey"`
	OwnerID   string         `gorm:"not null;index"`
	Title     string         `gorm:"not null"`
	Content   datatypes.JSON `gorm:"not null"`
	Progress  int            `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;index"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (RoadmapModel) TableName() string {
	return "roadmaps"
}

func roadmapToModel(r domain.Roadmap) (RoadmapModel, error) {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return RoadmapModel{}, fmt.Errorf("encode content: %w", err)
	}
	return RoadmapModel{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Title:     r.Title,
		Content:   datatypes.JSON(content),
		Progress:  r.Progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func roadmapFromModel(m RoadmapModel) (domain.Roadmap, error) {
	var content domain.Content
	if len(m.Content) > 0 {
		if err := json.Unmarshal(m.Content, &content); err != nil {
			return domain.Roadmap{}, fmt.Errorf("decode content for roadmap %s: %w", m.ID, err)
		}
	}
	return domain.Roadmap{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Content:   content,
		Progress:  m.Progress,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
