package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "pinotd_connected_clients",
	Help: "The number of websocket clients currently connected",
})

var metricMessages = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pinotd_messages_total",
	Help: "The total number of messages rendered, by where they came from",
}, []string{"source"})

var metricJobTime = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "pinotd_job_seconds",
	Help:    "How long the display takes to carry out one request",
	Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
})

var metricFramesTx = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pinotd_frames_tx_total",
	Help: "The total number of frames sent to websocket clients",
})
