package election

import "github.com/pegfed/go-pegfed/metrics"

const subsystem = "election"

var (
	votesTotal = metrics.NewCounter(
		"votes_total",
		subsystem,
		"Number of votes on federation changes by outcome",
		[]string{"outcome"},
	)
	openProposals = metrics.NewGauge(
		"open_proposals",
		subsystem,
		"Number of proposals with at least one vote",
		[]string{},
	).WithLabelValues()
	activations = metrics.NewCounter(
		"activations_total",
		subsystem,
		"Number of federations activated from a winning proposal",
		[]string{},
	).WithLabelValues()
)
