// Package alert collects user-facing blocking messages until the UI shell
// drains them.
package alert

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Alert struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(title, message string)
}

const defaultCapacity = 50

// Queue keeps the most recent alerts, dropping the oldest beyond capacity.
type Queue struct {
	mu       sync.Mutex
	alerts   []Alert
	capacity int
	logger   *logrus.Logger
}

var _ Alerter = (*Queue)(nil)

func NewQueue(logger *logrus.Logger) *Queue {
	return &Queue{capacity: defaultCapacity, logger: logger}
}

func (q *Queue) Alert(title, message string) {
	q.logger.WithFields(logrus.Fields{"title": title, "message": message}).Info("Alert.raised")

	q.mu.Lock()
	defer q.mu.Unlock()
	q.alerts = append(q.alerts, Alert{Title: title, Message: message, At: time.Now().UTC()})
	if len(q.alerts) > q.capacity {
		q.alerts = q.alerts[len(q.alerts)-q.capacity:]
	}
}

// Drain returns pending alerts oldest first and clears the queue.
func (q *Queue) Drain() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.alerts
	q.alerts = nil
	if out == nil {
		return []Alert{}
	}
	return out
}
