package workflow

// Step is a screen of the assessment pipeline.
type Step int

const (
	StepLanding Step = iota
	StepScoping
	StepAssessing
	StepStrategizing
	StepDashboard
)

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepScoping:
		return "scoping"
	case StepAssessing:
		return "assessing"
	case StepStrategizing:
		return "strategizing"
	case StepDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}
