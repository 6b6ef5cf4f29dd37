package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing is a business entry in the directory, owned by the user who created it.
// State, City, Category and Subcategory are references; the pointer fields are
// filled by Preload and stay nil when the referenced row is gone.
type Listing struct {
	ID               uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	CreatedBy        string                      `gorm:"column:created_by;not null" json:"createdBy"`
	BusinessName     string                      `gorm:"column:business_name;not null" json:"businessName"`
	OwnerName        string                      `gorm:"column:owner_name;not null" json:"ownerName"`
	Email            string                      `gorm:"column:email;not null" json:"email"`
	Phone            string                      `gorm:"column:phone;not null" json:"phone"`
	AddressLine      string                      `gorm:"column:address_line;not null" json:"addressLine"`
	Pincode          string                      `gorm:"column:pincode;not null" json:"pincode"`
	StateID          uuid.UUID                   `gorm:"column:state_id;type:uuid;not null" json:"stateId"`
	State            *State                      `gorm:"foreignKey:StateID" json:"state"`
	CityID           uuid.UUID                   `gorm:"column:city_id;type:uuid;not null" json:"cityId"`
	City             *City                       `gorm:"foreignKey:CityID" json:"city"`
	Map              string                      `gorm:"column:map" json:"map"`
	CategoryID       uuid.UUID                   `gorm:"column:category_id;type:uuid;not null;index" json:"categoryId"`
	Category         *Category                   `gorm:"foreignKey:CategoryID" json:"category"`
	SubcategoryID    uuid.UUID                   `gorm:"column:subcategory_id;type:uuid;not null" json:"subcategoryId"`
	Subcategory      *Subcategory                `gorm:"foreignKey:SubcategoryID" json:"subcategory"`
	PaymentStatus    string                      `gorm:"column:payment_status;type:varchar(10);not null" json:"paymentStatus"`
	PaidAmount       float64                     `gorm:"column:paid_amount;type:decimal(12,2);not null" json:"paidAmount"`
	SubscriptionType string                      `gorm:"column:subscription_type;type:varchar(10);not null" json:"subscriptionType"`
	Images           datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	IsActive         bool                        `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt        time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets the id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Images == nil {
		l.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}
