package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const defaultErrorCapacity = 100

// Collector tracks request counts and a bounded log of recent errors. It is
// injected where needed; nothing in the pay computation path references it.
type Collector struct {
	start    time.Time
	requests atomic.Int64

	mu       sync.Mutex
	errors   []ErrorEntry
	capacity int
}

type ErrorEntry struct {
	Message string `json:"message"`
	Time    string `json:"time"`
}

type Snapshot struct {
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptimeSeconds"`
	RequestsTotal int64        `json:"requestsTotal"`
	Errors        []ErrorEntry `json:"errors"`
	MemoryUsageMb uint64       `json:"memoryUsageMb"`
}

func NewCollector() *Collector {
	return &Collector{
		start:    time.Now(),
		capacity: defaultErrorCapacity,
	}
}

func (c *Collector) CountRequest() {
	c.requests.Add(1)
}

// RecordError appends to the ring; the oldest entry drops once the bound is hit.
func (c *Collector) RecordError(message string) {
	entry := ErrorEntry{
		Message: message,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = append(c.errors, entry)
	if len(c.errors) > c.capacity {
		c.errors = c.errors[1:]
	}
}

func (c *Collector) Snapshot() Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.mu.Lock()
	errs := make([]ErrorEntry, len(c.errors))
	copy(errs, c.errors)
	c.mu.Unlock()

	return Snapshot{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(c.start).Seconds()),
		RequestsTotal: c.requests.Load(),
		Errors:        errs,
		MemoryUsageMb: mem.Sys / 1024 / 1024,
	}
}
