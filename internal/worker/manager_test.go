package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	started chan struct{}
	ignore  bool
}

func newBlockingWorker(name string, ignoreStop bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: NewBaseWorker(name, "test-group", zap.NewNop()),
		started:    make(chan struct{}),
		ignore:     ignoreStop,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	if w.ignore {
		time.Sleep(time.Second)
		return nil
	}
	<-w.StopChan()
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), time.Second)
	w := newBlockingWorker("discovery", false)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	<-w.started

	assert.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())
	assert.NoError(t, w.Stop(), "second stop is a no-op")
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	w := newBlockingWorker("stuck", true)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	<-w.started

	assert.Error(t, m.Stop())
}

func TestBaseWorker_WithStop(t *testing.T) {
	w := NewBaseWorker("discovery", "group", zap.NewNop())
	ctx, cancel := w.WithStop(context.Background())
	defer cancel()

	require.NoError(t, w.Stop())

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled on stop")
	}
}
