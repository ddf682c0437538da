package care

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Species is a cared-for animal species within an organization. ImageObject
// holds the MinIO object key of the uploaded picture, empty when none.
type Species struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageObject string    `json:"image_object" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Species) TableName() string {
	return "species"
}

func (s *Species) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
