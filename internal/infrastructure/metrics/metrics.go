package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's domain counters. They are registered on the
// server's registry next to the HTTP metrics.
type Metrics struct {
	TasksCreated   prometheus.Counter
	TasksCompleted prometheus.Counter
	TasksDeleted   prometheus.Counter
}

// New creates and registers the domain counters
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		TasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasks_completed_total",
			Help: "Total number of tasks transitioned to completed",
		}),
		TasksDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasks_deleted_total",
			Help: "Total number of tasks deleted, including bulk deletes",
		}),
	}

	registerer.MustRegister(m.TasksCreated, m.TasksCompleted, m.TasksDeleted)
	return m
}
