package models

import "time"

type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudioID uint   `gorm:"uniqueIndex:idx_studio_slot_date" json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SlotNumber int `gorm:"uniqueIndex:idx_studio_slot_date;not null" json:"slot_number"`

	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	SlotDate  time.Time `gorm:"uniqueIndex:idx_studio_slot_date;type:date;not null" json:"slot_date"`

	CreatedAt time.Time `json:"created_at"`
}
