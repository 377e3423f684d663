package model

import (
	"fmt"
	"time"
)

// ExpiryWindowMonths is how far ahead an expiration date counts as expiring.
const ExpiryWindowMonths = 3

// CertificationStatus is the expiry state of a certification.
type CertificationStatus string

const (
	CertificationValid    CertificationStatus = "valid"
	CertificationExpiring CertificationStatus = "expiring"
	CertificationExpired  CertificationStatus = "expired"
)

// Certification is a professional qualification with optional expiry.
type Certification struct {
	ID                  string     `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	ObtainedDate        time.Time  `json:"obtained_date" db:"obtained_date"`
	ExpirationDate      *time.Time `json:"expiration_date,omitempty" db:"expiration_date"`
	CertificationNumber string     `json:"certification_number" db:"certification_number"`
	Memo                string     `json:"memo" db:"memo"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// IsExpiringAt reports whether the expiration date falls on or before
// now plus the expiry window. Already-expired certifications also satisfy it.
func (c Certification) IsExpiringAt(now time.Time) bool {
	if c.ExpirationDate == nil {
		return false
	}
	return !DayIn(*c.ExpirationDate, now.Location()).After(AddMonths(now, ExpiryWindowMonths))
}

// IsExpiredAt reports whether the expiration date is on or before now.
func (c Certification) IsExpiredAt(now time.Time) bool {
	if c.ExpirationDate == nil {
		return false
	}
	return !DayIn(*c.ExpirationDate, now.Location()).After(now)
}

// IsExpiring is IsExpiringAt evaluated against the current time.
func (c Certification) IsExpiring() bool { return c.IsExpiringAt(time.Now()) }

// IsExpired is IsExpiredAt evaluated against the current time.
func (c Certification) IsExpired() bool { return c.IsExpiredAt(time.Now()) }

// StatusAt classifies the certification. Expired wins over expiring.
func (c Certification) StatusAt(now time.Time) CertificationStatus {
	switch {
	case c.IsExpiredAt(now):
		return CertificationExpired
	case c.IsExpiringAt(now):
		return CertificationExpiring
	default:
		return CertificationValid
	}
}

// StatusTextAt returns "expired", "<yyyy.MM> renewal due", or "valid".
func (c Certification) StatusTextAt(now time.Time) string {
	switch c.StatusAt(now) {
	case CertificationExpired:
		return string(CertificationExpired)
	case CertificationExpiring:
		return fmt.Sprintf("%s renewal due", c.ExpirationDate.Format("2006.01"))
	default:
		return string(CertificationValid)
	}
}

// StatusText is StatusTextAt evaluated against the current time.
func (c Certification) StatusText() string { return c.StatusTextAt(time.Now()) }
