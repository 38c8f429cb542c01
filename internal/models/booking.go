package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// NULL for administrative blocks.
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StudioID uint   `json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	TimeSlotID uint     `json:"time_slot_id"`
	TimeSlot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BookingDate time.Time `gorm:"type:date;not null" json:"booking_date"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}
