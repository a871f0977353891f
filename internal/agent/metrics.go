package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var jobsPending = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "swetter_scheduler_jobs_pending",
	Help: "Number of one-shot jobs waiting for their fire time",
})

var jobsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swetter_scheduler_jobs_finished_count",
	Help: "Number of one-shot jobs that left the Firing state, by job name and outcome",
}, []string{"job", "state"})

var retryAttempts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "swetter_scheduler_retry_attempts_count",
	Help: "Number of attempts made under a retry policy",
})
