package models

import "time"

// ProposalDocument records every generated proposal PDF.
type ProposalDocument struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalNo string    `gorm:"column:proposal_no;not null;index"`
	DocLink    string    `gorm:"column:doc_link;not null"`
	CreatedBy  string    `gorm:"column:created_by;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
