package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Country is one mirrored country record. The set is replaced wholesale on
// every refresh; rows are only ever created by the refresh cycle or deleted
// individually by name.
type Country struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:100;not null" json:"name"`
	NameKey string `gorm:"size:100;uniqueIndex;not null" json:"-"` // lowercased name, enforces case-insensitive uniqueness
	Capital string `gorm:"size:100" json:"capital"`
	Region  string `gorm:"size:100" json:"region"`

	Population   int64   `gorm:"not null;default:0" json:"population"`
	CurrencyCode string  `gorm:"size:3;not null;default:USD" json:"currency_code"` // ISO 4217 (USD, EUR, etc.)
	ExchangeRate float64 `gorm:"not null;default:1" json:"exchange_rate"`          // units of currency per USD
	EstimatedGDP float64 `gorm:"not null;default:0" json:"estimated_gdp"`

	FlagURL         string    `gorm:"size:512" json:"flag_url"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// BeforeCreate hook to generate UUID and derive the lookup key
func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.NameKey == "" {
		c.NameKey = CountryNameKey(c.Name)
	}
	return nil
}

// TableName specifies the table name
func (Country) TableName() string {
	return "countries"
}

// CountryNameKey normalizes a country name for case-insensitive identity.
// Lookups and uniqueness both go through this so "Japan" and "japan" are the
// same record.
func CountryNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
