package logging

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunData collects fields and stage timings for one analysis run and emits
// them as a single log entry. It is safe for concurrent use.
type RunData struct {
	mu        sync.Mutex
	runID     string
	timeItems map[string]int64
	dataItems map[string]interface{}
	logger    *logrus.Logger
}

// NewRunData creates a collector with a fresh run id.
func NewRunData(logger *logrus.Logger) *RunData {
	return &RunData{
		runID:     uuid.NewString(),
		timeItems: make(map[string]int64),
		dataItems: make(map[string]interface{}),
		logger:    logger,
	}
}

// RunID returns the id attached to every entry of this run.
func (l *RunData) RunID() string {
	return l.runID
}

// AddTiming starts a timer and returns the func that records it in milliseconds.
func (l *RunData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

// AddData records a field.
func (l *RunData) AddData(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dataItems[key] = value
}

// Log returns an entry carrying the run id, data fields and timings.
func (l *RunData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := logrus.Fields{"run_id": l.runID}
	for key, value := range l.dataItems {
		fields[key] = value
	}
	for key, value := range l.timeItems {
		fields[key+"_ms"] = value
	}
	return l.logger.WithFields(fields)
}

// Entry returns an entry carrying only the run id.
func (l *RunData) Entry() *logrus.Entry {
	return l.logger.WithField("run_id", l.runID)
}
