package domain

import "time"

// Country status values. StatusDefault is the sentinel used for countries
// a user has no row for; it is never persisted.
const (
	StatusVisited  = "visited"
	StatusPlanned  = "planned"
	StatusWishlist = "wishlist"
	StatusDefault  = "default"
)

// ValidStatus reports whether s is a persistable country status.
func ValidStatus(s string) bool {
	switch s {
	case StatusVisited, StatusPlanned, StatusWishlist:
		return true
	}
	return false
}

// UserCountryStatus is one user's declared relationship to a country.
// At most one row exists per (user, country) pair: setting a new status
// replaces any previous one.
type UserCountryStatus struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	CountryID int64      `json:"countryId" db:"country_id"`
	Status    string     `json:"status" db:"status"`
	VisitDate *time.Time `json:"visitDate,omitempty" db:"visit_date"`
	Notes     *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// UserCountryCode is a (status, alpha-2 code) pair as read from the
// status table joined with the catalog.
type UserCountryCode struct {
	Status    string `json:"status" db:"status"`
	IsoAlpha2 string `json:"isoAlpha2" db:"iso_alpha2"`
}

// UserCountries groups a user's country codes by status. Slices are
// always non-nil so the JSON shape is stable.
type UserCountries struct {
	Visited  []string `json:"visited"`
	Planned  []string `json:"planned"`
	Wishlist []string `json:"wishlist"`
}

// NewUserCountries returns an empty grouping with initialized slices.
func NewUserCountries() *UserCountries {
	return &UserCountries{
		Visited:  []string{},
		Planned:  []string{},
		Wishlist: []string{},
	}
}

// Add appends a country code to the bucket for status. Unknown statuses
// are ignored.
func (u *UserCountries) Add(status, code string) {
	switch status {
	case StatusVisited:
		u.Visited = append(u.Visited, code)
	case StatusPlanned:
		u.Planned = append(u.Planned, code)
	case StatusWishlist:
		u.Wishlist = append(u.Wishlist, code)
	}
}
