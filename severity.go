package docpress

// Severity grades a condition on a 0-10 scale, monotonically more severe
// upward. The named constants mark the lower bound of each label band.
type Severity int

const (
	SeverityDebug   Severity = 0 // 0-1: internal detail
	SeverityInfo    Severity = 2 // 2-3: informational
	SeverityWarning Severity = 4 // 4-5: output may be degraded
	SeverityError   Severity = 6 // 6-7: output is wrong or incomplete
	SeveritySevere  Severity = 8 // 8-10: the run cannot produce usable output
	SeverityMax     Severity = 10
)

// Default escalation thresholds. Both are registered in the settings
// catalogue and read from the resolved mapping per run.
const (
	DefaultReportLevel = SeverityWarning
	DefaultHaltLevel   = SeveritySevere
)

// Label returns the band name for a severity value.
func (s Severity) Label() string {
	switch {
	case s < SeverityInfo:
		return "DEBUG"
	case s < SeverityWarning:
		return "INFO"
	case s < SeverityError:
		return "WARNING"
	case s < SeveritySevere:
		return "ERROR"
	default:
		return "SEVERE"
	}
}
