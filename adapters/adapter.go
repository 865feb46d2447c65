// Package adapters contains one connector per marketplace site. Each adapter
// turns a search query into raw listings; site markup is unstable, so
// selectors are best-effort and a parse miss simply yields fewer listings.
package adapters

import (
	"context"
	"net/http"

	"github.com/hhandc/GoodUsed/config"
	"github.com/hhandc/GoodUsed/models"
)

// Adapter is the capability every marketplace connector implements. Search
// returns whatever listings it could extract; ordinary failures (network
// errors, empty markup) surface as an error the orchestrator downgrades to
// an empty contribution, never as a failed request.
type Adapter interface {
	Site() string
	Search(ctx context.Context, query string) ([]*models.RawListing, error)
}

// Registry assembles the active adapters once at startup. The slice order is
// fixed: the orchestrator flattens results in this order, which keeps the
// clustering input deterministic across runs.
func Registry(cfg *config.Config, transport http.RoundTripper) []Adapter {
	fetcher := NewFetcher(cfg.FetchTimeout, cfg.UserAgent, transport)
	return []Adapter{
		NewCarrot(cfg, transport),
		NewJoongna(fetcher),
		NewBungae(cfg, transport),
	}
}
