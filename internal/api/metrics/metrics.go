// Package metrics defines all custom Prometheus metrics for the InboxFlow
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics are registered with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inboxflow"

// TasksCreatedTotal counts created tasks.
// Labels:
//   - source: "manual", "email", or "file"
//   - priority: the priority assigned at creation
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by source and priority.",
	},
	[]string{"source", "priority"},
)

// ImportsTotal counts import attempts.
// Labels:
//   - kind: "email" or "file"
//   - result: "ok", "unsupported_type", or "error"
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of task import attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ExportsTotal counts task document exports.
// Label:
//   - format: "pdf" or "docx"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of task document exports, by format.",
	},
	[]string{"format"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password-reset activity.
// Label:
//   - stage: "requested" or "completed"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and completions.",
	},
	[]string{"stage"},
)
