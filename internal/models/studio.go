package models

import (
	"strings"
	"time"
)

type Studio struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Comma-separated category tags, e.g. "PME,ING".
	Categories string `gorm:"type:text" json:"categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryList splits the stored tag list, trimming whitespace.
func (s *Studio) CategoryList() []string {
	parts := strings.Split(s.Categories, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}
