package dto

import "time"

// MyBookingDTO is one row of a user's active bookings, joined with studio and
// slot data.
type MyBookingDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	StudioID   uint      `json:"studio_id"`
	StudioName string    `json:"studio_name"`
	SlotNumber int       `json:"slot_number"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	SlotDate   time.Time `json:"slot_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminBookingDTO is the admin-facing view of a booking, including the
// holder's name.
type AdminBookingDTO struct {
	ID           uint      `json:"id"`
	UserID       *uint     `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserInitials string    `json:"user_initials"`
	TimeSlotID   uint      `json:"time_slot_id"`
	SlotDate     time.Time `json:"slot_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	StudioID     uint      `json:"studio_id"`
	StudioName   string    `json:"studio_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
