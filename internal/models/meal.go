package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Meal is one logged meal. Macros and the glycemic score are fixed at save
// time and never recomputed; the row is immutable afterwards except for
// deletion.
type Meal struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID             uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name               string           `gorm:"size:255;not null" json:"name"`
	ImageURL           string           `gorm:"size:255" json:"image_url"`
	Ingredients        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Carbohydrates      float64          `gorm:"type:float" json:"carbohydrates"`
	Protein            *float64         `gorm:"type:float" json:"protein,omitempty"`
	Fats               *float64         `gorm:"type:float" json:"fats,omitempty"`
	Fiber              *float64         `gorm:"type:float" json:"fiber,omitempty"`
	GlycemicIndex      string           `gorm:"size:20" json:"glycemic_index"`
	GlycemicScore      int              `gorm:"not null" json:"glycemic_score"`
	Advice             string           `gorm:"type:text" json:"advice"`
	PersonalizedAdvice string           `gorm:"type:text" json:"personalized_advice,omitempty"`
	PreMealGlucose     *float64         `gorm:"type:float" json:"pre_meal_glucose,omitempty"`
	PostMealGlucose    *float64         `gorm:"type:float" json:"post_meal_glucose,omitempty"`
	LoggedAt           time.Time        `gorm:"not null;index" json:"logged_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
