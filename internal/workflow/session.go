package workflow

import (
	"strings"

	"github.com/josephgoksu/kai/internal/assessment"
)

// Scope is what the user enters on the scoping step.
type Scope struct {
	JobTitle   string
	Tasks      []string
	HardSkills []string
	SoftSkills []string
}

// Normalize trims every entry and drops blank ones.
func (s Scope) Normalize() Scope {
	return Scope{
		JobTitle:   strings.TrimSpace(s.JobTitle),
		Tasks:      compact(s.Tasks),
		HardSkills: compact(s.HardSkills),
		SoftSkills: compact(s.SoftSkills),
	}
}

// AddTask appends a trimmed task description; blank input is ignored.
func (s *Scope) AddTask(desc string) bool {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return false
	}
	s.Tasks = append(s.Tasks, desc)
	return true
}

// RemoveTask drops the task at index i. Out-of-range indexes are ignored.
func (s *Scope) RemoveTask(i int) bool {
	if i < 0 || i >= len(s.Tasks) {
		return false
	}
	s.Tasks = append(s.Tasks[:i:i], s.Tasks[i+1:]...)
	return true
}

// Session is the in-progress assessment.
type Session struct {
	JobTitle   string                     `json:"jobTitle"`
	RawTasks   []string                   `json:"rawTasks"`
	Tasks      []assessment.Task          `json:"tasks"`
	HardSkills []string                   `json:"hardSkills"`
	SoftSkills []string                   `json:"softSkills"`
	Report     *assessment.AnalysisResult `json:"report,omitempty"`
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := Session{
		JobTitle:   s.JobTitle,
		RawTasks:   cloneStrings(s.RawTasks),
		Tasks:      assessment.CloneTasks(s.Tasks),
		HardSkills: cloneStrings(s.HardSkills),
		SoftSkills: cloneStrings(s.SoftSkills),
	}
	if s.Report != nil {
		r := s.Report.Clone()
		out.Report = &r
	}
	return out
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
