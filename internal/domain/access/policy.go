package access

import (
	"fmt"
	"strings"
	"time"

	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

// ===============================
// Categories & Roles
// ===============================

const (
	CategoryPME      = "PME"
	CategoryEstSup   = "EST-SUP"
	CategoryING      = "ING"
	CategoryCombined = "PME+ING"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func ValidCategories() []string {
	return []string{CategoryPME, CategoryEstSup, CategoryING, CategoryCombined}
}

func IsValidCategory(c string) bool {
	switch c {
	case CategoryPME, CategoryEstSup, CategoryING, CategoryCombined:
		return true
	}
	return false
}

func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// ===============================
// Booking access policy
// ===============================

const hoursPerYear = 24 * 365.25

// AllowedCategories returns the studio categories the user may book at the
// given instant. Combined-track users rotate: PME during the first two
// account years, ING afterwards.
func AllowedCategories(user *models.User, now time.Time) []string {
	if user.Category != CategoryCombined {
		return []string{user.Category}
	}

	years := now.Sub(user.CreatedAt).Hours() / hoursPerYear
	if years < 2 {
		return []string{CategoryPME}
	}
	return []string{CategoryING}
}

// CheckStudioAccess fails unless the studio admits at least one of the user's
// currently allowed categories.
func CheckStudioAccess(user *models.User, studio *models.Studio, now time.Time) error {
	allowed := AllowedCategories(user, now)
	for _, sc := range studio.CategoryList() {
		for _, ac := range allowed {
			if sc == ac {
				return nil
			}
		}
	}

	return httperr.ErrBusinessMsg(
		httperr.CodeAccessDenied,
		fmt.Sprintf(
			"category %s has no access to this studio right now; allowed categories: %s",
			user.Category,
			strings.Join(studio.CategoryList(), ", "),
		),
	)
}

// ===============================
// Access window
// ===============================

// accessYears is how many registration years each category keeps access.
var accessYears = map[string]int{
	CategoryPME:      2,
	CategoryEstSup:   2,
	CategoryING:      1,
	CategoryCombined: 3,
}

// ExpiryFor computes the account access-expiry date at creation time:
// July 30 of the registration year plus the category duration. Admin
// accounts never expire.
func ExpiryFor(role, category string, createdAt time.Time) *time.Time {
	if role == RoleAdmin {
		return nil
	}

	years, ok := accessYears[category]
	if !ok {
		years = 1
	}

	expiry := time.Date(createdAt.Year()+years, time.July, 30, 0, 0, 0, 0, createdAt.Location())
	return &expiry
}

// Expired reports whether the user's access window has closed. Users without
// an expiry date never expire.
func Expired(user *models.User, now time.Time) bool {
	return user.AccessExpiry != nil && user.AccessExpiry.Before(now)
}
