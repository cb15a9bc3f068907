package federation

import "github.com/pegfed/go-pegfed/metrics"

const (
	subsystem = "federation"

	outcomeOK         = "ok"
	outcomeIncomplete = "incomplete"
	outcomeInvalid    = "invalid"
)

var buildsTotal = metrics.NewCounter(
	"builds_total",
	subsystem,
	"Number of attempts to build a federation from a pending federation",
	[]string{"outcome"},
)
