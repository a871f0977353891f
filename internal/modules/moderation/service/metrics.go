package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var classifyCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swetter_moderation_classify_count",
	Help: "Number of content classifications, by content kind and verdict",
}, []string{"kind", "verdict"})

var generateCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swetter_moderation_generate_count",
	Help: "Number of reply generation calls, by outcome",
}, []string{"status"})

var llmDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "swetter_moderation_llm_duration_sec",
	Help:    "Duration of calls to the text model",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
}, []string{"op"})
