package telemetry

// Event names. Properties never carry job titles, task text or report
// content.
const (
	EventAssessmentStarted = "assessment_started"
	EventTasksAssessed     = "tasks_assessed"
	EventReportGenerated   = "report_generated"
	EventReportFailed      = "report_failed"
	EventProfileSaved      = "profile_saved"
	EventProfileDeleted    = "profile_deleted"
)

var knownEvents = map[string]bool{
	EventAssessmentStarted: true,
	EventTasksAssessed:     true,
	EventReportGenerated:   true,
	EventReportFailed:      true,
	EventProfileSaved:      true,
	EventProfileDeleted:    true,
}

var allowedProps = map[string]bool{
	"task_count": true,
	"fallback":   true,
	"locale":     true,
	"automate":   true,
	"augment":    true,
	"human":      true,
}
