package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exported on /metrics. Login failures are counted without
// distinguishing unknown email from bad password, same as the API response.
var (
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtr_registrations_total",
		Help: "Successful user registrations.",
	})
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtr_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})
	ClockIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtr_clock_ins_total",
		Help: "Successful clock-ins.",
	})
	ClockOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtr_clock_outs_total",
		Help: "Successful clock-outs.",
	})
	AuditEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtr_audit_events_total",
		Help: "Attendance audit events processed by the worker.",
	}, []string{"type"})
)
