package docpress

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Condition is a structured failure raised during transform execution or
// writer traversal. It implements error so it can travel through ordinary
// error returns; the scheduler decides continue-vs-halt by comparing its
// severity against the run's thresholds.
type Condition struct {
	Severity Severity
	Message  string
	Line     int    // source line, 0 if unknown
	Node     NodeID // originating node, NoNode if unknown
}

func (c *Condition) Error() string {
	if c.Line > 0 {
		return fmt.Sprintf("%s [line %d] %s", c.Severity.Label(), c.Line, c.Message)
	}
	return fmt.Sprintf("%s %s", c.Severity.Label(), c.Message)
}

// AsCondition extracts a *Condition from an error chain, wrapping plain
// errors as SeverityError so every failure has a severity to escalate on.
func AsCondition(err error) *Condition {
	var c *Condition
	if errors.As(err, &c) {
		return c
	}
	return &Condition{Severity: SeverityError, Message: err.Error()}
}

// Reporter writes conditions at or above its report level to a destination,
// one line per condition: "<LABEL> [line <N>] <message>".
type Reporter struct {
	Dest        io.Writer
	ReportLevel Severity
}

// NewReporter returns a stderr reporter with the default report level.
func NewReporter() *Reporter {
	return &Reporter{Dest: os.Stderr, ReportLevel: DefaultReportLevel}
}

// Report emits the condition if its severity reaches the report level.
// Reports below the level are suppressed, not buffered.
func (r *Reporter) Report(c *Condition) {
	if r == nil || r.Dest == nil || c.Severity < r.ReportLevel {
		return
	}
	fmt.Fprintln(r.Dest, c.Error())
}

// Warn is a convenience for structural warnings with no node context.
func (r *Reporter) Warn(format string, args ...any) {
	r.Report(&Condition{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}
