package titlefill

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a title render, as counted by titlesTotal.
const (
	outcomeAdmin  = "admin"
	outcomeNoPost = "no_post"
	outcomeKept   = "kept"
	outcomeFilled = "filled"
)

var (
	titlesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "titlefill_titles_total",
		Help: "Title renders seen by the filler, by outcome.",
	}, []string{"outcome"})

	optionSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "titlefill_options_saves_total",
		Help: "Settings form submissions, by status.",
	}, []string{"status"})
)
