package alert

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestQueue_DrainKeepsMostRecent(t *testing.T) {
	logger := logrus.New()
	logger.Out = io.Discard
	q := NewQueue(logger)

	for i := 0; i < defaultCapacity+5; i++ {
		q.Alert("Error", fmt.Sprintf("m%d", i))
	}

	alerts := q.Drain()
	assert.Len(t, alerts, defaultCapacity)
	assert.Equal(t, "m5", alerts[0].Message)
	assert.Empty(t, q.Drain())
}
