package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/operator/actions"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	gateway *gateway.Gateway
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(gw *gateway.Gateway, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		gateway: gw,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	start := time.Now()
	err := item.action.Perform(item.ctx, o.gateway)

	entry := o.logger.WithFields(logrus.Fields{
		"action":   item.action.Name(),
		"duration": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Operator.processItem.failed")
	} else {
		entry.Info("Operator.processItem.done")
	}

	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
