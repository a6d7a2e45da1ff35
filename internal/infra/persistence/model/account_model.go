package model

import "time"

// AccountModel mirrors the 'usr' table. The primary key (usr_pkey) is (workspace_id, username).
type AccountModel struct {
	WorkspaceID string `gorm:"type:varchar(50);primaryKey"`
	Username    string `gorm:"type:varchar(255);primaryKey"`
	Email       string `gorm:"type:varchar(255);not null;index:usr_email_idx"`
	IsAdmin     bool   `gorm:"not null"`
	Role        string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "usr"
}
