package inventory

import (
	"context"
	"time"

	"github.com/agrostock/agrostock-api/pkg/logger"
)

// ResolverScheduler ejecuta ResolvePending de forma periódica, replicando el
// polling del cliente original pero del lado del host. El timer pertenece al
// host, no al motor: se detiene limpio con el contexto y no deja trabajo de
// fondo colgado en el apagado.
type ResolverScheduler struct {
	recharge *RechargeUseCase
	interval time.Duration
	log      *logger.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewResolverScheduler construye el scheduler.
func NewResolverScheduler(recharge *RechargeUseCase, interval time.Duration, log *logger.Logger) *ResolverScheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ResolverScheduler{
		recharge: recharge,
		interval: interval,
		log:      log,
	}
}

// Start lanza la goroutine del scheduler. Corre un ciclo inmediato y luego
// uno por tick hasta que el contexto se cancele.
func (s *ResolverScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.log.Info().Dur("interval", s.interval).Msg("scheduler de recargas iniciado")

		s.runCycle(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info().Msg("scheduler de recargas detenido")
				return
			case <-ticker.C:
				s.runCycle(ctx)
			}
		}
	}()
}

// Stop cancela la goroutine y espera a que termine.
func (s *ResolverScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
}

func (s *ResolverScheduler) runCycle(ctx context.Context) {
	resolved, err := s.recharge.ResolvePending(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("resolver solicitudes de recarga")
		return
	}
	if resolved > 0 {
		s.log.Info().Int("resolved", resolved).Msg("solicitudes de recarga resueltas")
	}
}
