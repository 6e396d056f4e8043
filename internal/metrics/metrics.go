package metrics

import (
  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
  // LaunchRequestsTotal counts /launch outcomes by result
  // (success, missing_body, missing_field, invalid_format, spawn_failure).
  LaunchRequestsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
      Name: "game_agent_launch_requests_total",
      Help: "Launch requests by result",
    },
    []string{"result"},
  )

  SpawnDuration = promauto.NewHistogram(
    prometheus.HistogramOpts{
      Name:    "game_agent_spawn_duration_seconds",
      Help:    "Time spent in the launcher spawn call",
      Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5},
    },
  )
)
