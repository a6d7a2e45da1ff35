package model

import "time"

// CredentialModel mirrors the 'password' table. Email is the primary key (constraint password_pkey).
type CredentialModel struct {
	Email        string  `gorm:"type:varchar(255);primaryKey"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	LoginType    string  `gorm:"type:varchar(50);not null"`
	SuperAdmin   bool    `gorm:"column:super_admin;not null"`
	Verified     bool    `gorm:"column:verified;not null"`
	Name         string  `gorm:"type:varchar(255)"`
	Company      *string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "password"
}
