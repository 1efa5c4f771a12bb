package notifications

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/services/shared/notificationqueue"
	"sync"
	"time"

	"go.uber.org/zap"
)

const consumeRetryDelay = 5 * time.Second

// Worker drains the notification queue into the notifications table.
type Worker struct {
	log     *zap.Logger
	queue   *notificationqueue.Service
	usecase contracts.NotificationUsecase
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewWorker(log *zap.Logger, queue *notificationqueue.Service, usecase contracts.NotificationUsecase) *Worker {
	return &Worker{log: log, queue: queue, usecase: usecase}
}

func (w *Worker) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			err := w.queue.Consume(runCtx, w.usecase.StoreNotification)
			if runCtx.Err() != nil {
				return
			}
			w.log.Warn("notifications.worker: consumer stopped, retrying", zap.Error(err))
			select {
			case <-runCtx.Done():
				return
			case <-time.After(consumeRetryDelay):
			}
		}
	}()
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
