// Package telemetry exposes Prometheus counters for the chat core. The
// metrics endpoint is wired in cmd/server via promhttp.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesAdded counts messages accepted and persisted.
	MessagesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_messages_added_total",
		Help: "Number of chat messages accepted and persisted.",
	})

	// MessagesEvicted counts messages removed after their deadline passed,
	// whether by a read pass or the explicit cleanup sweep.
	MessagesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_messages_evicted_total",
		Help: "Number of expired chat messages evicted.",
	})

	// Heartbeats counts presence heartbeats processed.
	Heartbeats = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_heartbeats_total",
		Help: "Number of presence heartbeats processed.",
	})

	// UsersExpired counts presence records dropped after going stale.
	UsersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_users_expired_total",
		Help: "Number of stale presence records evicted.",
	})

	// ActiveUsers is the size of the active set as of the last list pass.
	ActiveUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driftchat_active_users",
		Help: "Users currently inside the online threshold.",
	})
)
