package persistence

import (
	"time"
)

// DocumentModel represents the documents table. Body holds the raw JSON.
type DocumentModel struct {
	Key       string    `gorm:"column:doc_key;primaryKey"`
	Body      string    `gorm:"column:body;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (DocumentModel) TableName() string {
	return "documents"
}
