package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionState - lifecycle state per channel (0 disconnected, 1 connecting, 2 connected).
	ConnectionState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_connection_state",
			Help: "Lifecycle state of the chat connection (0 disconnected, 1 connecting, 2 connected)",
		},
		[]string{"channel"},
	)

	// ReconnectsTotal - reconnect attempts per channel.
	ReconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_reconnects_total",
			Help: "Number of reconnect attempts per channel",
		},
		[]string{"channel"},
	)

	// MessagesDispatched - messages fanned out to consumers per channel.
	MessagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_dispatched_total",
			Help: "Messages delivered to consumer buffers per channel",
		},
		[]string{"channel", "kind"},
	)

	// MessagesDropped - messages evicted from full consumer buffers.
	MessagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_dropped_total",
			Help: "Messages evicted from full consumer buffers per channel",
		},
		[]string{"channel", "kind"},
	)

	// HandshakeDuration - time from dial to a fully joined session.
	HandshakeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_handshake_duration_seconds",
			Help:    "Time between opening the transport and entering the connected state",
			Buckets: prometheus.DefBuckets,
		},
	)
)
