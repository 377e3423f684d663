package query

import (
	"sort"
	"time"

	"github.com/careerlog/careerlog/internal/model"
)

// Summary holds the dashboard counts.
type Summary struct {
	ProjectCount       int
	TechnologyCount    int
	CertificationCount int
	ExpiringCount      int
	ExpiredCount       int
}

// Summarize counts projects, distinct technology names across all projects,
// and certifications by expiry state at now. ExpiringCount includes expired
// certifications, matching Certification.IsExpiringAt.
func Summarize(projects []model.Project, certs []model.Certification, now time.Time) Summary {
	names := make(map[string]struct{})
	for _, p := range projects {
		for _, pt := range p.Technologies {
			names[pt.Technology.Name] = struct{}{}
		}
	}

	s := Summary{
		ProjectCount:       len(projects),
		TechnologyCount:    len(names),
		CertificationCount: len(certs),
	}
	for _, c := range certs {
		if c.IsExpiringAt(now) {
			s.ExpiringCount++
		}
		if c.IsExpiredAt(now) {
			s.ExpiredCount++
		}
	}
	return s
}

// SortCertifications returns a copy of certs, most recently obtained first.
// Ties are broken by name.
func SortCertifications(certs []model.Certification) []model.Certification {
	out := make([]model.Certification, len(certs))
	copy(out, certs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ObtainedDate.Equal(out[j].ObtainedDate) {
			return out[i].ObtainedDate.After(out[j].ObtainedDate)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
