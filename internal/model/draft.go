package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError names the draft field that blocked a save.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ProjectDraft carries project form input into the store. It has no
// behaviour beyond validity checks and normalisation.
type ProjectDraft struct {
	Name             string
	StartDate        time.Time
	EndDate          *time.Time
	IsOngoing        bool
	Industry         Industry
	Role             Role
	TeamSize         TeamSize
	Technologies     []string
	Processes        []string
	Overview         string
	Responsibilities string
	Achievements     string
}

// Validate reports the first field that must be fixed before saving.
func (d ProjectDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if d.StartDate.IsZero() {
		return &ValidationError{Field: "start date", Reason: "is required"}
	}
	return nil
}

// Normalized trims text fields, drops the end date of ongoing projects, and
// removes blank or repeated technology and process names.
func (d ProjectDraft) Normalized() ProjectDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Overview = strings.TrimSpace(d.Overview)
	d.Responsibilities = strings.TrimSpace(d.Responsibilities)
	d.Achievements = strings.TrimSpace(d.Achievements)
	if d.IsOngoing {
		d.EndDate = nil
	}
	d.Technologies = uniqueNames(d.Technologies)
	d.Processes = uniqueNames(d.Processes)
	return d
}

// DraftFromProject prefills a draft for the edit form.
func DraftFromProject(p Project) ProjectDraft {
	d := ProjectDraft{
		Name:             p.Name,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		IsOngoing:        p.IsOngoing,
		Industry:         p.Industry,
		Role:             p.Role,
		TeamSize:         p.TeamSize,
		Overview:         p.Overview,
		Responsibilities: p.Responsibilities,
		Achievements:     p.Achievements,
		Technologies:     p.TechnologyNames(),
		Processes:        p.ProcessNamesByOrder(),
	}
	return d
}

// CertificationDraft carries certification form input into the store.
type CertificationDraft struct {
	Name                string
	ObtainedDate        time.Time
	ExpirationDate      *time.Time
	CertificationNumber string
	Memo                string
}

// Validate reports the first field that must be fixed before saving.
func (d CertificationDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if d.ObtainedDate.IsZero() {
		return &ValidationError{Field: "obtained date", Reason: "is required"}
	}
	return nil
}

// Normalized trims every text field.
func (d CertificationDraft) Normalized() CertificationDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.CertificationNumber = strings.TrimSpace(d.CertificationNumber)
	d.Memo = strings.TrimSpace(d.Memo)
	return d
}

// DraftFromCertification prefills a draft for the edit form.
func DraftFromCertification(c Certification) CertificationDraft {
	return CertificationDraft{
		Name:                c.Name,
		ObtainedDate:        c.ObtainedDate,
		ExpirationDate:      c.ExpirationDate,
		CertificationNumber: c.CertificationNumber,
		Memo:                c.Memo,
	}
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
