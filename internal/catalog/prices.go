package catalog

import (
	"context"
	"log"
	"time"

	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerPriceSource wraps the batched price lookup in a circuit breaker so a
// struggling catalog store fails cart refreshes fast instead of piling up
// slow queries. Cart refresh already tolerates failure (last-known prices
// stay in place), which makes it a safe place to shed load.
type BreakerPriceSource struct {
	repo RepoInterface
	cb   *gobreaker.CircuitBreaker[map[string]domain.ProductPricing]
}

func NewBreakerPriceSource(repo RepoInterface) *BreakerPriceSource {
	settings := gobreaker.Settings{
		Name:    "catalog-prices",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &BreakerPriceSource{
		repo: repo,
		cb:   gobreaker.NewCircuitBreaker[map[string]domain.ProductPricing](settings),
	}
}

func (b *BreakerPriceSource) GetPrices(ctx context.Context, productIDs []string) (map[string]domain.ProductPricing, error) {
	return b.cb.Execute(func() (map[string]domain.ProductPricing, error) {
		return b.repo.GetPrices(ctx, productIDs)
	})
}
