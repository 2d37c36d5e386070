// Package profile persists completed assessments as immutable snapshots.
package profile

import (
	"errors"
	"time"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/util"
)

// SlotKey is the name of the single record that holds every saved profile.
const SlotKey = "kai_career_profiles"

var (
	// ErrSaveFailed wraps any failure to persist the collection.
	ErrSaveFailed = errors.New("save profile")
	// ErrNotFound is returned by Get when no profile matches.
	ErrNotFound = util.ErrNotFound
	// ErrAmbiguousID is returned by Get when a prefix matches several profiles.
	ErrAmbiguousID = util.ErrAmbiguousID
)

// SavedProfile is a frozen copy of one completed assessment.
// It is created by Repository.Save and never updated in place.
type SavedProfile struct {
	ID         string                    `json:"id" yaml:"id"`
	JobTitle   string                    `json:"jobTitle" yaml:"jobTitle"`
	Date       time.Time                 `json:"date" yaml:"date"`
	Tasks      []assessment.Task         `json:"tasks" yaml:"tasks"`
	HardSkills []string                  `json:"hardSkills" yaml:"hardSkills"`
	SoftSkills []string                  `json:"softSkills" yaml:"softSkills"`
	Analysis   assessment.AnalysisResult `json:"analysis" yaml:"analysis"`
}

// Draft is the content of a profile before it has an id and a timestamp.
type Draft struct {
	JobTitle   string
	Tasks      []assessment.Task
	HardSkills []string
	SoftSkills []string
	Analysis   assessment.AnalysisResult
}

// Clone returns a deep copy.
func (p SavedProfile) Clone() SavedProfile {
	out := p
	out.Tasks = assessment.CloneTasks(p.Tasks)
	out.HardSkills = cloneStrings(p.HardSkills)
	out.SoftSkills = cloneStrings(p.SoftSkills)
	out.Analysis = p.Analysis.Clone()
	return out
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	return Draft{
		JobTitle:   d.JobTitle,
		Tasks:      assessment.CloneTasks(d.Tasks),
		HardSkills: cloneStrings(d.HardSkills),
		SoftSkills: cloneStrings(d.SoftSkills),
		Analysis:   d.Analysis.Clone(),
	}
}

// CategoryCounts tallies the profile's tasks per category.
func (p SavedProfile) CategoryCounts() map[assessment.Category]int {
	return assessment.CountByCategory(p.Tasks)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
