// Package search runs the end-to-end aggregation: concurrent source fan-out,
// clustering, condition scoring, fair-price estimation and ranking.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hhandc/GoodUsed/adapters"
	"github.com/hhandc/GoodUsed/cluster"
	"github.com/hhandc/GoodUsed/condition"
	"github.com/hhandc/GoodUsed/config"
	"github.com/hhandc/GoodUsed/models"
	"github.com/hhandc/GoodUsed/parser"
	"github.com/hhandc/GoodUsed/pricing"
)

// unknownPriceRank sorts clusters without any known price after everything
// that has one.
const unknownPriceRank = 9e9

// scoreFloor bounds the ranking denominator so pathologically low condition
// scores cannot blow up the value metric.
const scoreFloor = 0.2

// Service aggregates listings from a fixed set of marketplace adapters.
type Service struct {
	cfg      *config.Config
	adapters []adapters.Adapter
	metrics  *Metrics
	cache    *expirable.LRU[string, *models.SearchResult]
}

// New builds a search service over the given adapter registry.
func New(cfg *config.Config, registry []adapters.Adapter, metrics *Metrics) *Service {
	return &Service{
		cfg:      cfg,
		adapters: registry,
		metrics:  metrics,
		cache:    expirable.NewLRU[string, *models.SearchResult](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Search returns the ranked clusters for a query, best deals first. A recent
// identical query is served from the cache without touching the sources.
// referencePrice is an optional manufacturer/list price anchoring the
// fair-price estimate.
func (s *Service) Search(ctx context.Context, query string, referencePrice *float64) *models.SearchResult {
	key := cacheKey(query, referencePrice)
	if result, ok := s.cache.Get(key); ok {
		s.metrics.IncCacheHit()
		return result
	}

	start := time.Now()
	result := s.aggregate(ctx, query, referencePrice)
	s.metrics.IncSearch()
	s.metrics.ObserveDuration(time.Since(start))

	s.cache.Add(key, result)
	return result
}

func (s *Service) aggregate(ctx context.Context, query string, referencePrice *float64) *models.SearchResult {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SearchTimeout)
	defer cancel()

	pool := s.fanOut(ctx, query)
	clusters := cluster.Partition(pool, cluster.Options{
		TitleSimilarity: s.cfg.TitleSimilarity,
		PriceTolerance:  s.cfg.PriceTolerance,
	})

	items := make([]*models.ScoredCluster, 0, len(clusters))
	for _, c := range clusters {
		items = append(items, s.score(c, referencePrice))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return valueRank(items[i]) < valueRank(items[j])
	})

	slog.Debug("search aggregated",
		slog.String("query", query),
		slog.Int("listings", len(pool)),
		slog.Int("clusters", len(items)),
	)
	return &models.SearchResult{Query: query, Items: items}
}

type sourceResult struct {
	index    int
	listings []*models.RawListing
}

// fanOut queries every adapter concurrently and flattens the results in
// registry order, so downstream clustering sees a deterministic pool
// regardless of which source answered first. A source that errors or misses
// the deadline contributes nothing; its late result is dropped, not awaited.
func (s *Service) fanOut(ctx context.Context, query string) []*models.RawListing {
	results := make([][]*models.RawListing, len(s.adapters))
	// Buffered per adapter so straggler goroutines can finish and exit even
	// after the deadline path stops reading.
	ch := make(chan sourceResult, len(s.adapters))

	for i, a := range s.adapters {
		go func(i int, a adapters.Adapter) {
			listings, err := a.Search(ctx, query)
			if err != nil {
				reason := adapters.ErrorLabel(err)
				s.metrics.IncSourceError(a.Site(), reason)
				slog.Warn("source failed",
					slog.String("site", a.Site()),
					slog.String("reason", reason),
					slog.Any("error", err),
				)
				ch <- sourceResult{index: i}
				return
			}
			s.metrics.AddListings(a.Site(), len(listings))
			ch <- sourceResult{index: i, listings: listings}
		}(i, a)
	}

collect:
	for range s.adapters {
		select {
		case r := <-ch:
			results[r.index] = r.listings
		case <-ctx.Done():
			break collect
		}
	}

	var pool []*models.RawListing
	for _, listings := range results {
		pool = append(pool, listings...)
	}
	return pool
}

// score turns one cluster into a ScoredCluster. Condition is read from the
// longest description, falling back to the title; the declared or guessed
// year feeds the scorer's age hook.
func (s *Service) score(c *models.Cluster, referencePrice *float64) *models.ScoredCluster {
	text := c.Description
	if strings.TrimSpace(text) == "" {
		text = c.Title
	}

	year := 0
	if y, ok := parser.GuessYear(c.Title + " " + c.Description); ok {
		year = y
	}

	score := condition.Score(text, year)

	prices := make([]*float64, 0, len(c.Listings))
	for _, l := range c.Listings {
		prices = append(prices, l.Price)
	}

	return &models.ScoredCluster{
		Cluster:   *c,
		Score:     score,
		FairPrice: pricing.FairPrice(prices, score, referencePrice),
	}
}

// valueRank is the ordering key price/max(0.2, score); lower is a better
// deal. Clusters without a price sort last.
func valueRank(sc *models.ScoredCluster) float64 {
	price := unknownPriceRank
	if sc.Price != nil {
		price = *sc.Price
	}
	floor := sc.Score
	if floor < scoreFloor {
		floor = scoreFloor
	}
	return price / floor
}

func cacheKey(query string, referencePrice *float64) string {
	if referencePrice == nil {
		return query
	}
	return fmt.Sprintf("%s|%g", query, *referencePrice)
}
