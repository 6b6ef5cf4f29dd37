package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// State is a top-level location. Names are unique.
type State struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (State) TableName() string {
	return "states"
}

func (s *State) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// City belongs to a State. State is populated on reads and is nil when the
// referenced state no longer exists.
type City struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	StateID   uuid.UUID `gorm:"column:state_id;type:uuid;not null;index" json:"stateId"`
	State     *State    `gorm:"foreignKey:StateID" json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (City) TableName() string {
	return "cities"
}

func (c *City) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Category groups subcategories.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Subcategory belongs to a Category.
type Subcategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
