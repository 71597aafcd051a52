package events

import (
	"sync/atomic"
	"time"
)

// Metrics tracks bus statistics using atomic operations for thread-safety
type Metrics struct {
	Published   atomic.Int64
	Delivered   atomic.Int64
	Dropped     atomic.Int64
	Subscribers atomic.Int32
	StartTime   time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncPublished increments the published events counter
func (m *Metrics) IncPublished() {
	m.Published.Add(1)
}

// IncDelivered increments the delivered events counter
func (m *Metrics) IncDelivered() {
	m.Delivered.Add(1)
}

// IncDropped increments the dropped events counter
func (m *Metrics) IncDropped() {
	m.Dropped.Add(1)
}

// SetSubscribers sets the current subscriber count
func (m *Metrics) SetSubscribers(count int32) {
	m.Subscribers.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Published   int64     `json:"published"`
	Delivered   int64     `json:"delivered"`
	Dropped     int64     `json:"dropped"`
	Subscribers int32     `json:"subscribers"`
	StartTime   time.Time `json:"start_time"`
	Uptime      string    `json:"uptime"`
}

// Snapshot returns a point-in-time copy of all metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Published:   m.Published.Load(),
		Delivered:   m.Delivered.Load(),
		Dropped:     m.Dropped.Load(),
		Subscribers: m.Subscribers.Load(),
		StartTime:   m.StartTime,
		Uptime:      time.Since(m.StartTime).Round(time.Second).String(),
	}
}
