package models

import (
	"time"
)

// Snack represents a tracked snack brand
type Snack struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;column:name" json:"name"`
	CompanyID int64     `gorm:"not null;column:company_id" json:"-"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	Company *Company `gorm:"foreignKey:CompanyID;references:ID" json:"companies,omitempty"`
}

// TableName specifies the table name for Snack
func (Snack) TableName() string {
	return "snacks"
}

// SnackAlias represents an alternate search term for a snack
type SnackAlias struct {
	SnackID   int64  `gorm:"primaryKey;column:snack_id" json:"snack_id"`
	AliasName string `gorm:"type:varchar(255);primaryKey;column:alias_name" json:"alias_name"`
}

// TableName specifies the table name for SnackAlias
func (SnackAlias) TableName() string {
	return "snack_aliases"
}
