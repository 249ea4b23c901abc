package reporting

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

// AttemptFunc é uma tentativa completa de consulta a uma fonte: obter o token e chamar o backend.
type AttemptFunc func(ctx context.Context) ([]domain.MetricRow, error)

// RetryPolicy conta tentativas totais: MaxAttempts=3 significa a chamada original mais duas repetições.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	Multiplier     float64
	JitterFraction float64
	AttemptTimeout time.Duration
}

type Dispatcher struct {
	policy  RetryPolicy
	metrics metrics.Recorder
	sleep   func(ctx context.Context, d time.Duration) error
	jitter  func() float64
}

func NewDispatcher(cfg *config.Config, recorder metrics.Recorder) *Dispatcher {
	if recorder == nil {
		recorder = metrics.Noop()
	}
	return &Dispatcher{
		policy: RetryPolicy{
			MaxAttempts:    cfg.Dispatcher.MaxAttempts,
			BaseDelay:      cfg.Dispatcher.BaseDelay,
			Multiplier:     cfg.Dispatcher.Multiplier,
			JitterFraction: cfg.Dispatcher.JitterFraction,
			AttemptTimeout: cfg.Dispatcher.AttemptTimeout,
		},
		metrics: recorder,
		sleep:   sleepContext,
		jitter:  rand.Float64,
	}
}

// Backoff devolve a espera depois da tentativa attempt (1 = primeira). O jitter soma até
// JitterFraction do atraso base; com Multiplier > 1+JitterFraction as esperas são crescentes.
func (d *Dispatcher) Backoff(attempt int) time.Duration {
	base := float64(d.policy.BaseDelay) * math.Pow(d.policy.Multiplier, float64(attempt-1))
	return time.Duration(base + base*d.policy.JitterFraction*d.jitter())
}

// Dispatch executa call com timeout por tentativa e repete apenas erros transitórios.
// O erro final volta classificado dentro do SourceResult.
func (d *Dispatcher) Dispatch(ctx context.Context, source domain.Source, call AttemptFunc) domain.SourceResult {
	logger := log.ForContext(ctx).WithField("source", source)
	result := domain.SourceResult{Source: source}

	for attempt := 1; ; attempt++ {
		result.Attempts = attempt

		started := time.Now()
		rows, err := d.attempt(ctx, call)
		if err == nil {
			d.metrics.ObserveBackendAttempt(string(source), "ok", time.Since(started))
			result.Rows = rows
			return result
		}

		re := classify(ctx, source, err)
		d.metrics.ObserveBackendAttempt(string(source), string(re.Kind), time.Since(started))

		if !re.Retryable() || attempt >= d.policy.MaxAttempts || ctx.Err() != nil {
			logger.WithFields(log.Fields{
				"attempts": attempt,
				"kind":     re.Kind,
			}).Warn("reporting: consulta à fonte falhou")
			result.Err = re
			return result
		}

		delay := d.Backoff(attempt)
		logger.WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
			"error":   re.Message,
		}).Info("reporting: erro transitório, nova tentativa")

		if err := d.sleep(ctx, delay); err != nil {
			result.Err = domain.NewTransientError("requisição cancelada durante a espera", err).WithSource(source)
			return result
		}
	}
}

func (d *Dispatcher) attempt(ctx context.Context, call AttemptFunc) ([]domain.MetricRow, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, d.policy.AttemptTimeout)
	defer cancel()
	return call(attemptCtx)
}

func classify(parent context.Context, source domain.Source, err error) *domain.ReportError {
	if re, ok := domain.AsReportError(err); ok {
		if re.Source == "" {
			return re.WithSource(source)
		}
		return re
	}

	switch {
	case parent.Err() != nil:
		return domain.NewTransientError("requisição cancelada", parent.Err()).WithSource(source)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewTransientError("tempo da tentativa esgotado", err).WithSource(source)
	}

	return domain.NewReportError(domain.KindUnknown, "falha não classificada", err).WithSource(source)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
