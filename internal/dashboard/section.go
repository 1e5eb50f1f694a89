// Package dashboard assembles the data behind each dashboard view by
// fanning out concurrent metrics API calls.
package dashboard

import (
	"fmt"
	"strings"
)

// Section names one dashboard view
type Section string

// Dashboard sections
const (
	SectionInsights     Section = "insights"
	SectionPipelines    Section = "pipelines"
	SectionSourceCode   Section = "source-code"
	SectionPullRequests Section = "pull-requests"
)

var sections = []Section{
	SectionInsights,
	SectionPipelines,
	SectionSourceCode,
	SectionPullRequests,
}

// Sections returns every known section in display order
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// UnknownSectionError is returned by ParseSection for an unrecognized name
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown dashboard section %q", e.Name)
}

// ParseSection resolves a section name, case-insensitively
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range sections {
		if s == known {
			return known, nil
		}
	}
	return "", &UnknownSectionError{Name: name}
}

func (s Section) String() string { return string(s) }
