package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-03-15", want: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)},
		{in: "2024-03", want: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)},
		{in: " 2024/03/15 ", want: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)},
		{in: "", wantErr: true},
		{in: "March 2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDateIn(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)

	got, err := ParseDateIn("2024-07-15", tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, tokyo), got)
	assert.Equal(t, tokyo, got.Location())
}

func TestLocalDayBoundaries(t *testing.T) {
	newYork := time.FixedZone("EDT", -4*3600)
	tokyo := time.FixedZone("JST", 9*3600)

	t.Run("expiry flips at local midnight", func(t *testing.T) {
		exp, err := ParseDateIn("2024-07-15", newYork)
		require.NoError(t, err)
		c := Certification{Name: "cert", ExpirationDate: &exp}

		evening := time.Date(2024, time.July, 14, 21, 0, 0, 0, newYork)
		assert.False(t, c.IsExpiredAt(evening))
		assert.True(t, c.IsExpiringAt(evening))
		assert.Equal(t, "2024.07 renewal due", c.StatusTextAt(evening))

		midnight := time.Date(2024, time.July, 15, 0, 0, 0, 0, newYork)
		assert.True(t, c.IsExpiredAt(midnight))
		assert.Equal(t, "expired", c.StatusTextAt(midnight))
	})

	t.Run("stored dates are read as calendar days", func(t *testing.T) {
		exp := date(2024, time.July, 15)
		c := Certification{Name: "cert", ExpirationDate: &exp}
		assert.False(t, c.IsExpiredAt(time.Date(2024, time.July, 14, 21, 0, 0, 0, newYork)))
	})

	t.Run("duration counts the local morning", func(t *testing.T) {
		start, err := ParseDateIn("2024-01-15", tokyo)
		require.NoError(t, err)
		morning := time.Date(2024, time.July, 15, 8, 0, 0, 0, tokyo)

		p := Project{StartDate: start, IsOngoing: true}
		assert.Equal(t, 6, p.DurationInMonthsAt(morning))

		p.StartDate = date(2024, time.January, 15)
		assert.Equal(t, 6, p.DurationInMonthsAt(morning))
	})
}

func TestDayIn(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	got := DayIn(time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC), tokyo)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, tokyo), got)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"clamps to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamps to february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"crosses year", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"backwards", date(2024, time.August, 31), -6, date(2024, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.from, tt.n))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 6, MonthsBetween(date(2024, time.January, 1), date(2024, time.July, 1)))
	assert.Equal(t, 5, MonthsBetween(date(2024, time.January, 2), date(2024, time.July, 1)))
	assert.Equal(t, 1, MonthsBetween(date(2024, time.January, 31), date(2024, time.February, 29)))
	assert.Equal(t, 0, MonthsBetween(date(2024, time.January, 1), date(2024, time.January, 31)))
	assert.Equal(t, -6, MonthsBetween(date(2024, time.July, 1), date(2024, time.January, 1)))
}

func TestProjectDurationInMonths(t *testing.T) {
	now := date(2024, time.August, 15)

	tests := []struct {
		name    string
		project Project
		want    int
	}{
		{
			name:    "closed project",
			project: Project{StartDate: date(2024, time.January, 1), EndDate: datePtr(2024, time.July, 1)},
			want:    6,
		},
		{
			name:    "ongoing project measures to now",
			project: Project{StartDate: date(2023, time.August, 1), IsOngoing: true},
			want:    12,
		},
		{
			name:    "shorter than a month is one",
			project: Project{StartDate: date(2024, time.August, 1), EndDate: datePtr(2024, time.August, 10)},
			want:    1,
		},
		{
			name:    "end before start is one",
			project: Project{StartDate: date(2024, time.August, 1), EndDate: datePtr(2024, time.March, 1)},
			want:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.DurationInMonthsAt(now))
		})
	}
}

func TestExperienceLevel(t *testing.T) {
	tests := []struct {
		months int
		want   int
	}{
		{-3, 1}, {0, 1}, {5, 1},
		{6, 2}, {11, 2},
		{12, 3}, {16, 3}, {23, 3},
		{24, 4}, {35, 4},
		{36, 5}, {120, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExperienceLevel(tt.months), "months=%d", tt.months)
	}
}

func TestCertificationStatus(t *testing.T) {
	now := date(2024, time.August, 15)

	tests := []struct {
		name       string
		expiration *time.Time
		expiring   bool
		expired    bool
		status     CertificationStatus
		text       string
	}{
		{"no expiry", nil, false, false, CertificationValid, "valid"},
		{"far future", datePtr(2026, time.January, 1), false, false, CertificationValid, "valid"},
		{"within window", datePtr(2024, time.October, 31), true, false, CertificationExpiring, "2024.10 renewal due"},
		{"window boundary", datePtr(2024, time.November, 15), true, false, CertificationExpiring, "2024.11 renewal due"},
		{"just past window", datePtr(2024, time.November, 16), false, false, CertificationValid, "valid"},
		{"expires today", datePtr(2024, time.August, 15), true, true, CertificationExpired, "expired"},
		{"expired", datePtr(2023, time.December, 1), true, true, CertificationExpired, "expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Certification{Name: "cert", ExpirationDate: tt.expiration}
			assert.Equal(t, tt.expiring, c.IsExpiringAt(now))
			assert.Equal(t, tt.expired, c.IsExpiredAt(now))
			assert.Equal(t, tt.status, c.StatusAt(now))
			assert.Equal(t, tt.text, c.StatusTextAt(now))
		})
	}
}

func TestProjectNames(t *testing.T) {
	p := Project{
		Technologies: []ProjectTechnology{
			{TechnologyID: "t1", Technology: Technology{ID: "t1", Name: "TypeScript"}},
			{TechnologyID: "t2", Technology: Technology{ID: "t2", Name: "Go"}},
		},
		Processes: []ProjectProcess{
			{Process: Process{Name: string(ProcessUnitTest), Order: 4}},
			{Process: Process{Name: string(ProcessRequirements), Order: 0}},
			{Process: Process{Name: "Code review", Order: 101}},
		},
	}

	assert.Equal(t, []string{"Go", "TypeScript"}, p.TechnologyNames())
	assert.Equal(t, []string{
		string(ProcessRequirements), string(ProcessUnitTest), "Code review",
	}, p.ProcessNamesByOrder())
	assert.True(t, p.HasTechnology("t2"))
	assert.False(t, p.HasTechnology("t3"))
}

func TestCatalog(t *testing.T) {
	cat, ok := CategoryFor("React")
	assert.True(t, ok)
	assert.Equal(t, CategoryFrontend, cat)

	cat, ok = CategoryFor("PostgreSQL")
	assert.True(t, ok)
	assert.Equal(t, CategoryDatabase, cat)

	cat, ok = CategoryFor("Rust")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, cat)

	assert.Equal(t, "その他", TechnologyCategory("unknown").DisplayName())
	assert.Equal(t, "フロントエンド", CategoryFrontend.DisplayName())
}

func TestProcessOrder(t *testing.T) {
	order, ok := ProcessOrder(string(ProcessRequirements))
	assert.True(t, ok)
	assert.Equal(t, 0, order)

	order, ok = ProcessOrder(string(ProcessMaintenance))
	assert.True(t, ok)
	assert.Equal(t, 9, order)

	_, ok = ProcessOrder("Code review")
	assert.False(t, ok)

	for _, p := range DevelopmentProcesses {
		assert.NotEmpty(t, p.Description(), string(p))
	}
}

func TestLabelSets(t *testing.T) {
	assert.Len(t, Industries, 12)
	assert.Len(t, Roles, 9)
	assert.Len(t, TeamSizes, 4)
	assert.Len(t, TechnologyCategories, 7)
	assert.Len(t, DevelopmentProcesses, 10)
}

func TestProjectDraft(t *testing.T) {
	valid := ProjectDraft{
		Name:         "  Storefront  ",
		StartDate:    date(2024, time.January, 1),
		EndDate:      datePtr(2024, time.June, 1),
		IsOngoing:    true,
		Technologies: []string{"React", " React ", "", "Go"},
		Processes:    []string{string(ProcessImplementation), string(ProcessImplementation)},
	}
	require.NoError(t, valid.Validate())

	n := valid.Normalized()
	assert.Equal(t, "Storefront", n.Name)
	assert.Nil(t, n.EndDate)
	assert.Equal(t, []string{"React", "Go"}, n.Technologies)
	assert.Equal(t, []string{string(ProcessImplementation)}, n.Processes)

	noName := valid
	noName.Name = " "
	err := noName.Validate()
	assert.True(t, errors.Is(err, ErrValidation))

	noStart := valid
	noStart.StartDate = time.Time{}
	var verr *ValidationError
	require.True(t, errors.As(noStart.Validate(), &verr))
	assert.Equal(t, "start date", verr.Field)
}

func TestDraftFromProject(t *testing.T) {
	p := Project{
		Name:      "Storefront",
		StartDate: date(2024, time.January, 1),
		Role:      RoleArchitect,
		Technologies: []ProjectTechnology{
			{Technology: Technology{Name: "React"}},
		},
		Processes: []ProjectProcess{
			{Process: Process{Name: string(ProcessImplementation), Order: 3}},
			{Process: Process{Name: string(ProcessBasicDesign), Order: 1}},
		},
	}
	d := DraftFromProject(p)
	assert.Equal(t, "Storefront", d.Name)
	assert.Equal(t, RoleArchitect, d.Role)
	assert.Equal(t, []string{"React"}, d.Technologies)
	assert.Equal(t, []string{string(ProcessBasicDesign), string(ProcessImplementation)}, d.Processes)
}

func TestCertificationDraft(t *testing.T) {
	d := CertificationDraft{Name: " PMP ", ObtainedDate: date(2022, time.April, 1), Memo: " note "}
	require.NoError(t, d.Validate())
	n := d.Normalized()
	assert.Equal(t, "PMP", n.Name)
	assert.Equal(t, "note", n.Memo)

	assert.ErrorIs(t, CertificationDraft{ObtainedDate: date(2022, time.April, 1)}.Validate(), ErrValidation)
	assert.ErrorIs(t, CertificationDraft{Name: "PMP"}.Validate(), ErrValidation)
}
