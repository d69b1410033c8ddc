package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters per command.
type Metrics struct {
	mu           sync.Mutex
	commandCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		commandCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordCommand increments counters for executed commands.
func (m *Metrics) RecordCommand(name string, exitCode int, duration time.Duration) {
	if m == nil {
		return
	}
	key := name + "|" + strconv.Itoa(exitCode)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandCount[key]++
}

// RecordError increments error counters by taxonomy code.
func (m *Metrics) RecordError(name, code string) {
	if m == nil {
		return
	}
	key := name + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}
