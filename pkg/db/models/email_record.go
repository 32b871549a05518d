package models

import (
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/enums"
)

// EmailRecord is an audit row for every proposal email attempt, successful or
// not. Failed sends keep the delivery error in Message.
type EmailRecord struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalNo string            `gorm:"column:proposal_no;not null;index"`
	Email      string            `gorm:"column:email;not null"`
	Status     enums.EmailStatus `gorm:"column:status;not null"`
	SentBy     string            `gorm:"column:sent_by;not null"`
	Message    *string           `gorm:"column:message"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
