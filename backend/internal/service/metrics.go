package service

import (
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAppendMember  = "append_member"
	opAppendMessage = "append_message"
	opPullMessage   = "pull_message"
)

const (
	outcomeApplied   = "applied"
	outcomeNoMatch   = "no_match"
	outcomeUnchanged = "unchanged"
	outcomeError     = "error"
)

var conditionalUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "kudos",
		Name:      "conditional_updates_total",
		Help:      "Board list updates by operation and outcome",
	},
	[]string{"op", "outcome"},
)

func recordUpdate(op string, res domain.UpdateResult, err error) {
	outcome := outcomeApplied
	switch {
	case err != nil:
		outcome = outcomeError
	case res.Matched != 1:
		outcome = outcomeNoMatch
	case res.Modified == 0:
		outcome = outcomeUnchanged
	}
	conditionalUpdates.WithLabelValues(op, outcome).Inc()
}
