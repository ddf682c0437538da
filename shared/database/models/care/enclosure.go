package care

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Enclosure struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Location  string    `json:"location" gorm:"size:200"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Enclosure) TableName() string {
	return "enclosures"
}

func (e *Enclosure) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
