package entity

import "time"

// SpinEvent records one visitor spin. Rows are never updated.
type SpinEvent struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time

	TenantID string `gorm:"index"`
	Tenant   Tenant `gorm:"foreignKey:TenantID"`

	VisitorName  string
	VisitorPhone string
	Prize        string `gorm:"index"`
	SessionID    string
	IPAddress    string
	UserAgent    string
}
