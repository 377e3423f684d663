package projectform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlog/careerlog/internal/model"
)

func TestDraft(t *testing.T) {
	fb := &formBindings{
		name:              " Storefront ",
		startDate:         "2024-01",
		endDate:           "2024-07-01",
		industry:          string(model.IndustryWeb),
		technologies:      []string{"React"},
		otherTechnologies: "Rust， Elixir,, ",
		role:              string(model.RoleTechLead),
		processes: []string{
			string(model.ProcessUnitTest),
			"Code review",
			string(model.ProcessRequirements),
		},
	}

	d, err := fb.draft()
	require.NoError(t, err)
	assert.Equal(t, " Storefront ", d.Name, "trimming is left to the store")
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), d.StartDate)
	require.NotNil(t, d.EndDate)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local), *d.EndDate)
	assert.Equal(t, []string{"React", "Rust", "Elixir"}, d.Technologies)
	assert.Equal(t, []string{
		string(model.ProcessRequirements),
		string(model.ProcessUnitTest),
		"Code review",
	}, d.Processes)
	assert.Equal(t, model.IndustryWeb, d.Industry)
	assert.Equal(t, model.RoleTechLead, d.Role)
}

func TestDraft_OngoingDropsEndDate(t *testing.T) {
	fb := &formBindings{name: "Ops", startDate: "2024-01", endDate: "bogus", ongoing: true}

	d, err := fb.draft()
	require.NoError(t, err)
	assert.Nil(t, d.EndDate)
	assert.True(t, d.IsOngoing)
}

func TestDraft_BlocksInvalidInput(t *testing.T) {
	_, err := (&formBindings{name: "  ", startDate: "2024-01"}).draft()
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = (&formBindings{name: "Ops"}).draft()
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "start date", verr.Field)
}

func TestValidateEndDate(t *testing.T) {
	fb := &formBindings{startDate: "2024-05"}
	assert.NoError(t, fb.validateEndDate(""))
	assert.NoError(t, fb.validateEndDate("2024-06"))
	assert.Error(t, fb.validateEndDate("2024-04"))
	assert.Error(t, fb.validateEndDate("soon"))

	fb.ongoing = true
	assert.NoError(t, fb.validateEndDate("soon"))
}

func TestFillRoundTrip(t *testing.T) {
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)
	src := model.ProjectDraft{
		Name:         "Storefront",
		StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		EndDate:      &end,
		TeamSize:     model.TeamSizeSmall,
		Technologies: []string{"Go"},
		Processes:    []string{string(model.ProcessImplementation)},
		Overview:     "Checkout rewrite",
	}

	fb := &formBindings{}
	fb.fill(src)
	got, err := fb.draft()
	require.NoError(t, err)
	assert.Equal(t, src, got)
}
