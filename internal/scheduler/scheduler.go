// Package scheduler ejecuta tareas periódicas sobre el libro de stock.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

const scanTimeout = time.Minute

// LowStockSource entrega las entradas en o bajo el umbral ("" = todas las unidades).
type LowStockSource interface {
	GetLowStock(ctx context.Context, unitID string) ([]*entity.StockEntry, error)
}

// LowStockGauge recibe el total del último escaneo. Puede ser nil.
type LowStockGauge interface {
	SetLowStock(n int)
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron   *cron.Cron
	source LowStockSource
	gauge  LowStockGauge
	spec   string
	log    zerolog.Logger
}

// New crea el scheduler. spec es una expresión cron estándar o un descriptor (@every 15m).
func New(spec string, source LowStockSource, gauge LowStockGauge, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		source: source,
		gauge:  gauge,
		spec:   spec,
		log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Start programa el escaneo de stock bajo y arranca el cron. spec vacío no programa nada.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("escaneo de stock bajo desactivado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runScan); err != nil {
		return fmt.Errorf("programar escaneo de stock bajo %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que terminen las tareas en curso o venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con tareas en curso")
	}
}

func (s *Scheduler) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()
	if _, err := s.ScanLowStock(ctx); err != nil {
		s.log.Error().Err(err).Msg("escaneo de stock bajo falló")
	}
}

// ScanLowStock recorre las entradas en alerta, las registra y actualiza el gauge.
func (s *Scheduler) ScanLowStock(ctx context.Context) (int, error) {
	entries, err := s.source.GetLowStock(ctx, "")
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		s.log.Warn().
			Str("unit_id", e.UnitID).
			Str("item_id", e.ItemID).
			Int("quantity", e.Quantity).
			Int("min_stock_alert", e.MinStockAlert).
			Msg("stock bajo")
	}
	if s.gauge != nil {
		s.gauge.SetLowStock(len(entries))
	}
	s.log.Info().Int("low_stock", len(entries)).Msg("escaneo de stock bajo completado")
	return len(entries), nil
}
