// Package reconcile periodically re-reads the gateway status of payments that
// have been processing for too long.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/service/paymentservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit   = 100
	defaultWorkers = 5
)

type Payments interface {
	StaleProcessing(ctx context.Context, age time.Duration, limit uint32) ([]domain.Order, error)
	Reconcile(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type Service struct {
	payments   Payments
	workerPool WorkerPoolI
	interval   time.Duration
	staleAge   time.Duration
	limit      uint32
	inFlight   sync.Map
	done       chan struct{}
}

func New(cfg *config.Config, payments Payments) *Service {
	return &Service{
		payments:   payments,
		workerPool: NewWorkerPool(defaultWorkers),
		interval:   cfg.ReconcileInterval,
		staleAge:   cfg.ReconcileInterval,
		limit:      defaultLimit,
		done:       make(chan struct{}),
	}
}

// Start runs the reconcile loop until ctx is canceled. A zero interval disables it.
func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 {
		zap.L().Info("Payment reconciler disabled")
		s.workerPool.Close()
		close(s.done)
		return
	}
	zap.L().Info("Payment reconciler started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Done is closed once the loop has stopped.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		s.workerPool.Close()
		close(s.done)
	}()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.reconcileStale(ctx)
		}
	}
}

func (s *Service) reconcileStale(ctx context.Context) {
	orders, err := s.payments.StaleProcessing(ctx, s.staleAge, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch stale payments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, order := range orders {
		order := order

		if _, loaded := s.inFlight.LoadOrStore(order.OrderID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, Task{
				OrderID: order.OrderID,
				Run: func() error {
					defer s.inFlight.Delete(order.OrderID)
					return s.reconcileOrder(ctx, order)
				},
			})
			if err != nil {
				s.inFlight.Delete(order.OrderID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling reconcile tasks", zap.Error(err))
	}
}

func (s *Service) reconcileOrder(ctx context.Context, order domain.Order) error {
	updated, err := s.payments.Reconcile(ctx, order)
	if errors.Is(err, paymentservice.ErrNoGatewayIntent) {
		// The gateway has not confirmed the charge yet; retried on the next tick.
		zap.L().Warn("Stale payment not confirmed by the gateway yet", zap.String("order_id", order.OrderID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to reconcile order %s: %w", order.OrderID, err)
	}
	if updated != nil && updated.PaymentStatus != order.PaymentStatus {
		zap.L().Info("Stale payment reconciled",
			zap.String("order_id", order.OrderID),
			zap.String("payment_status", string(updated.PaymentStatus)),
		)
	}
	return nil
}
