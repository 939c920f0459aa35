package log

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// NewMockEntry returns a trace level entry whose output is captured by the returned hook
func NewMockEntry() (*logrus.Entry, *MockLoggerHook) {
	logger, _ := test.NewNullLogger()
	logger.Level = logrus.TraceLevel

	entry := logrus.NewEntry(logger)
	hook := MockLoggerHook{}

	entry.Logger.AddHook(&hook)

	hook.On("Fire", mock.Anything).Return(nil)

	return entry, &hook
}

type MockLoggerHook struct {
	mock.Mock

	Messages []string
	Fields   []logrus.Fields
	mu       sync.Mutex
}

// Levels implements `logrus.Hook`.
func (h *MockLoggerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements `logrus.Hook`.
func (h *MockLoggerHook) Fire(entry *logrus.Entry) error {
	_ = h.Called()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = append(h.Messages, entry.Message)
	h.Fields = append(h.Fields, entry.Data)

	return nil
}

// Reset forgets everything captured so far
func (h *MockLoggerHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = nil
	h.Fields = nil
}
