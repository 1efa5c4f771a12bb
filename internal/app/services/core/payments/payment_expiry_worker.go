package payments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackExpiryCronSpec = "@every 1m"

// ExpiryWorker periodically cancels stale PENDING payments. Only the instance
// holding the leader lock runs a tick.
type ExpiryWorker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	paymentUsecase contracts.PaymentUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewExpiryWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, paymentUsecase contracts.PaymentUsecase) *ExpiryWorker {
	return &ExpiryWorker{log: log, cfg: cfg, locker: lockerSvc, paymentUsecase: paymentUsecase}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.Worker.PaymentExpiryCronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.expiryWorker: invalid cron spec, falling back",
			zap.String("spec", w.cfg.Worker.PaymentExpiryCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackExpiryCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running tick to finish.
func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ExpiryWorker) RunOnce(ctx context.Context) {
	if w.locker != nil {
		ttl := time.Duration(w.cfg.Worker.LeaderLockTTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = time.Minute
		}
		acquired, token, err := w.locker.TryLock(ctx, constvars.PaymentExpiryLockKey, ttl)
		if err != nil {
			w.log.Warn("payments.expiryWorker: leader lock attempt failed", zap.Error(err))
			return
		}
		if !acquired {
			w.log.Debug("payments.expiryWorker: leader lock held by another instance")
			return
		}
		defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.PaymentExpiryLockKey, token)
	}

	expired, err := w.paymentUsecase.ExpireStalePayments(ctx)
	if err != nil {
		w.log.Warn("payments.expiryWorker: run failed", zap.Error(err))
		return
	}
	if expired > 0 {
		w.log.Info("payments.expiryWorker: expired stale payments", zap.Int(constvars.LoggingCountKey, expired))
	}
}
