package models

import "time"

// MailSetup holds the single row of SMTP delivery settings.
type MailSetup struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SMTPHost     string    `gorm:"column:smtp_host;not null"`
	SMTPPort     int       `gorm:"column:smtp_port;not null"`
	SMTPUser     string    `gorm:"column:smtp_user;not null"`
	SMTPPassword string    `gorm:"column:smtp_password;not null"`
	EnableSSL    bool      `gorm:"column:enable_ssl;not null;default:false"`
	SenderName   string    `gorm:"column:sender_name;not null"`
	SenderEmail  string    `gorm:"column:sender_email;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
