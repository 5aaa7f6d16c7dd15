package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// RateRefreshService pulls rates and the BTC price from a RateProvider into
// the rate store, on demand or on a cron schedule.
type RateRefreshService struct {
	BaseService
	provider portsrepo.RateProvider
	store    portssvc.RateWriterSvc
	timeout  time.Duration

	refreshMu sync.Mutex
	mu        sync.Mutex // guards scheduler
	scheduler *cron.Cron
}

// NewRateRefreshService creates a new RateRefreshService. A timeout <= 0
// leaves refreshes bounded only by the caller's context.
func NewRateRefreshService(provider portsrepo.RateProvider, store portssvc.RateWriterSvc, timeout time.Duration, logger *slog.Logger) *RateRefreshService {
	return &RateRefreshService{
		BaseService: BaseService{Logger: logger},
		provider:    provider,
		store:       store,
		timeout:     timeout,
	}
}

// Refresh fetches EUR rates, USD rates and the BTC price concurrently and
// applies them. If any fetch fails nothing is applied.
func (s *RateRefreshService) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	symbols := domain.SupportedCurrencies()
	var (
		eurRates, usdRates map[domain.Currency]float64
		btcEUR, btcUSD     float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		eurRates, err = s.provider.FetchRates(gctx, domain.EUR, symbols)
		return err
	})
	g.Go(func() error {
		var err error
		usdRates, err = s.provider.FetchRates(gctx, domain.USD, symbols)
		return err
	})
	g.Go(func() error {
		var err error
		btcEUR, btcUSD, err = s.provider.FetchBTCPrice(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Rate refresh failed, keeping previous rates")
		return fmt.Errorf("%w: %w", apperrors.ErrRateSourceUnavailable, err)
	}

	// The price is checked before any write; the update is all or nothing.
	if err := validateBTCPriceEUR(btcEUR); err != nil {
		s.LogError(ctx, err, "Rate source returned unusable BTC price")
		return err
	}
	if err := s.store.UpdateExchangeRates(eurRates, usdRates); err != nil {
		s.LogError(ctx, err, "Rate source returned unusable rates")
		return err
	}
	if err := s.store.SetBTCPrice(btcEUR, btcUSD); err != nil {
		s.LogError(ctx, err, "Rate source returned unusable BTC price")
		return err
	}

	s.LogInfo(ctx, "Rates refreshed",
		slog.Int("eur_rates", len(eurRates)),
		slog.Int("usd_rates", len(usdRates)),
		slog.Float64("btc_price_eur", btcEUR),
	)
	return nil
}

// Start runs Refresh on the given cron schedule (standard cron syntax or
// descriptors such as "@every 15m"). It returns immediately.
func (s *RateRefreshService) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		return fmt.Errorf("%w: rate refresher already started", apperrors.ErrValidation)
	}

	logger := cron.VerbosePrintfLogger(slog.NewLogLogger(s.GetLogger(context.Background()).Handler(), slog.LevelDebug))
	scheduler := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := scheduler.AddFunc(schedule, func() {
		// Failures are logged by Refresh and retried on the next tick.
		_ = s.Refresh(context.Background())
	}); err != nil {
		return fmt.Errorf("%w: invalid refresh schedule %q: %v", apperrors.ErrValidation, schedule, err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	s.GetLogger(context.Background()).Info("Rate refresher started", slog.String("schedule", schedule))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish or ctx to expire.
func (s *RateRefreshService) Stop(ctx context.Context) error {
	s.mu.Lock()
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if scheduler == nil {
		return nil
	}

	select {
	case <-scheduler.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
