package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GoPGManager/GoPGManager/internal/capability"
)

// decisions counts boundary decisions by group, action, role and outcome.
var decisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "capability_decisions_total",
		Help: "Number of enforcement boundary decisions, differentiated by group, action, role and decision.",
	},
	[]string{"group", "action", "role", "decision"},
)

func observeDecision(g capability.Group, a capability.Action, r Role, d capability.Decision) {
	decisions.WithLabelValues(g.String(), string(a), roleLabel(r), d.String()).Inc()
}
