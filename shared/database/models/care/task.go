package care

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskTemplate describes a recurring caretaking task for an enclosure.
// Fields is the dynamic form-field definition the caretaker fills in on
// each completion (label, kind, required), stored as JSON.
type TaskTemplate struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID        uuid.UUID       `json:"org_id" gorm:"type:uuid;not null;index"`
	EnclosureID  uuid.UUID       `json:"enclosure_id" gorm:"type:uuid;not null;index"`
	Title        string          `json:"title" gorm:"size:200;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Fields       json.RawMessage `json:"fields" gorm:"type:jsonb"`
	IntervalDays int             `json:"interval_days" gorm:"not null;default:1"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (TaskTemplate) TableName() string {
	return "task_templates"
}

func (t *TaskTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskCompletion records one execution of a task template with the
// caretaker's field values.
type TaskCompletion struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	TemplateID  uuid.UUID       `json:"template_id" gorm:"type:uuid;not null;index"`
	CompletedBy uuid.UUID       `json:"completed_by" gorm:"type:uuid;not null"`
	Values      json.RawMessage `json:"values" gorm:"type:jsonb"`
	CompletedAt time.Time       `json:"completed_at" gorm:"autoCreateTime"`
}

func (TaskCompletion) TableName() string {
	return "task_completions"
}

func (t *TaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskField is one entry of a template's Fields definition.
type TaskField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Kind     string `json:"kind"` // "text", "number", "checkbox"
	Required bool   `json:"required"`
}
