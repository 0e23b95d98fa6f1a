package achievement

import (
	"context"

	"github.com/termwatch/backend/pkg/xcontext"
)

type scanTask struct {
	communityID int64
	userID      string
}

// Worker evaluates achievements off the message-processing path. The queue
// is bounded; when it is full the oldest pending scan is dropped rather
// than blocking the dispatcher or spawning unbounded goroutines. A dropped
// scan is recovered by the user's next counted message anyway.
type Worker struct {
	manager *Manager
	queue   chan scanTask
	done    chan struct{}
}

func NewWorker(manager *Manager, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Worker{
		manager: manager,
		queue:   make(chan scanTask, queueSize),
		done:    make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for task := range w.queue {
			err := w.manager.ScanAndAward(ctx, task.communityID, task.userID)
			if err != nil {
				xcontext.Logger(ctx).Errorf(
					"Achievement scan failed for user %s in community %d: %v",
					task.userID, task.communityID, err)
			}
		}
	}()
}

// Dispatch enqueues a scan without waiting for it.
func (w *Worker) Dispatch(ctx context.Context, communityID int64, userID string) {
	task := scanTask{communityID: communityID, userID: userID}

	select {
	case w.queue <- task:
		return
	default:
	}

	// Queue full: drop the oldest pending scan to make room.
	select {
	case dropped := <-w.queue:
		xcontext.Logger(ctx).Warnf(
			"Achievement queue full, dropped scan for user %s in community %d",
			dropped.userID, dropped.communityID)
	default:
	}

	select {
	case w.queue <- task:
	default:
	}
}

// Stop closes the queue and waits for the running evaluation to finish.
// No Dispatch may be called after Stop.
func (w *Worker) Stop() {
	close(w.queue)
	<-w.done
}
