package projectform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/careerlog/careerlog/internal/model"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name              string
	startDate         string
	endDate           string
	ongoing           bool
	industry          string
	technologies      []string
	otherTechnologies string
	role              string
	processes         []string
	teamSize          string
	overview          string
	responsibilities  string
	achievements      string
}

// fill loads an existing draft into the bindings.
func (fb *formBindings) fill(d model.ProjectDraft) {
	*fb = formBindings{
		name:             d.Name,
		startDate:        model.FormatDate(&d.StartDate),
		endDate:          model.FormatDate(d.EndDate),
		ongoing:          d.IsOngoing,
		industry:         string(d.Industry),
		technologies:     append([]string(nil), d.Technologies...),
		role:             string(d.Role),
		processes:        append([]string(nil), d.Processes...),
		teamSize:         string(d.TeamSize),
		overview:         d.Overview,
		responsibilities: d.Responsibilities,
		achievements:     d.Achievements,
	}
}

// draft converts the bindings into a validated ProjectDraft.
func (fb *formBindings) draft() (model.ProjectDraft, error) {
	start, err := model.ParseDate(fb.startDate)
	if err != nil {
		return model.ProjectDraft{}, &model.ValidationError{Field: "start date", Reason: err.Error()}
	}

	d := model.ProjectDraft{
		Name:             fb.name,
		StartDate:        start,
		IsOngoing:        fb.ongoing,
		Industry:         model.Industry(fb.industry),
		Role:             model.Role(fb.role),
		TeamSize:         model.TeamSize(fb.teamSize),
		Technologies:     append(append([]string(nil), fb.technologies...), splitNames(fb.otherTechnologies)...),
		Processes:        orderedProcesses(fb.processes),
		Overview:         fb.overview,
		Responsibilities: fb.responsibilities,
		Achievements:     fb.achievements,
	}

	if !fb.ongoing && strings.TrimSpace(fb.endDate) != "" {
		end, err := model.ParseDate(fb.endDate)
		if err != nil {
			return model.ProjectDraft{}, &model.ValidationError{Field: "end date", Reason: err.Error()}
		}
		d.EndDate = &end
	}

	if err := d.Validate(); err != nil {
		return model.ProjectDraft{}, err
	}
	return d, nil
}

func (fb *formBindings) validateEndDate(s string) error {
	if strings.TrimSpace(s) == "" || fb.ongoing {
		return nil
	}
	end, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	if start, err := model.ParseDate(fb.startDate); err == nil && end.Before(start) {
		return errors.New("end date is before the start date")
	}
	return nil
}

// splitNames splits a comma separated list, accepting the full-width comma
// and the ideographic comma too.
func splitNames(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// orderedProcesses returns the selected stages in canonical order.
func orderedProcesses(selected []string) []string {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	out := make([]string, 0, len(selected))
	for _, p := range model.DevelopmentProcesses {
		if picked[string(p)] {
			out = append(out, string(p))
			delete(picked, string(p))
		}
	}
	for _, s := range selected {
		if picked[s] {
			out = append(out, s)
		}
	}
	return out
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateRequiredDate(s string) error {
	_, err := model.ParseDate(s)
	if err != nil {
		return fmt.Errorf("start date %v", err)
	}
	return nil
}
