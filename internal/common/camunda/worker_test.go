package camunda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestWorkers_DisabledIsSkipped(t *testing.T) {
	w := NewWorkers(nil, zaptest.NewLogger(t))

	w.Start("analyze-study-profile", WorkerOptions{Enabled: false}, nil)

	assert.Empty(t, w.Running())
	w.Close()
}
