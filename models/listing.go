// Package models defines data structures shared across the aggregator.
package models

import "time"

// RawListing is one scraped item record from a single marketplace.
// Optional fields are pointers so "unknown" stays distinguishable from zero.
type RawListing struct {
	Site        string     `json:"site"`
	Title       string     `json:"title"`
	Price       *float64   `json:"price,omitempty"`
	URL         string     `json:"url"`
	Image       string     `json:"image,omitempty"`
	Location    string     `json:"location,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Cluster groups raw listings believed to describe the same physical item,
// plus representative fields chosen from its members.
type Cluster struct {
	Title       string        `json:"title"`
	Price       *float64      `json:"price,omitempty"`
	URL         string        `json:"url"`
	Image       string        `json:"image,omitempty"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	Sources     []string      `json:"sources"`
	Listings    []*RawListing `json:"listings"`
}

// ScoredCluster is a cluster enriched with a condition score and a fair-price
// estimate. It lives only for the duration of one search request.
type ScoredCluster struct {
	Cluster
	Score     float64  `json:"score"`
	FairPrice *float64 `json:"fair_price,omitempty"`
}

// SearchResult is the ordered response for one query, best deals first.
type SearchResult struct {
	Query string           `json:"query"`
	Items []*ScoredCluster `json:"items"`
}
