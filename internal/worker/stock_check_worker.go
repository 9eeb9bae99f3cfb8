package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BobadilloLeftLane/medweg-api/internal/cache"
	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// StockLoader provides the low-stock scan query.
type StockLoader interface {
	GetBelowReorderLevel() ([]models.Product, error)
}

// StockCheckWorker periodically scans the catalog for products at or below
// their reorder level and publishes the result for the admin dashboard.
type StockCheckWorker struct {
	products    StockLoader
	stockAlerts *cache.StockAlertCache
	interval    time.Duration
}

// NewStockCheckWorker constructs a StockCheckWorker.
func NewStockCheckWorker(products StockLoader, stockAlerts *cache.StockAlertCache, interval time.Duration) *StockCheckWorker {
	return &StockCheckWorker{products: products, stockAlerts: stockAlerts, interval: interval}
}

// Start begins the periodic scan loop until context is canceled. One scan
// runs immediately so the dashboard is populated right after boot.
func (w *StockCheckWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting stock check worker")

	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Stock check worker stopped")
			return
		}
	}
}

func (w *StockCheckWorker) run(ctx context.Context) {
	low, err := w.products.GetBelowReorderLevel()
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan for low stock products")
		return
	}

	snapshot := &cache.StockAlertSnapshot{
		Alerts:    make([]cache.StockAlert, 0, len(low)),
		ScannedAt: time.Now(),
	}
	for _, p := range low {
		snapshot.Alerts = append(snapshot.Alerts, cache.StockAlert{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			StockQty:     p.StockQty,
			ReorderLevel: p.ReorderLevel,
		})
		log.Warn().
			Str("sku", p.SKU).
			Int("stock_qty", p.StockQty).
			Int("reorder_level", p.ReorderLevel).
			Msg("Product below reorder level")
	}

	if err := w.stockAlerts.Store(ctx, snapshot, w.interval); err != nil {
		log.Error().Err(err).Msg("Failed to store stock alert snapshot")
		return
	}

	if len(snapshot.Alerts) > 0 {
		log.Info().Int("count", len(snapshot.Alerts)).Msg("Low stock scan complete")
	}
}
