// Package cluster groups raw listings from different sources into clusters
// believed to describe the same physical item.
//
// The assignment is greedy and order sensitive: listings are processed in
// stable input order and attached to the first cluster whose representative
// matches, so the result is a reproducible approximation, not an optimal
// grouping.
package cluster

import (
	"strings"

	"github.com/hhandc/GoodUsed/models"
	"github.com/hhandc/GoodUsed/parser"
)

// Options holds the clustering policy knobs. They are configuration, not
// tuned truths; see config.DefaultConfig for the defaults in use.
type Options struct {
	// TitleSimilarity is the minimum token-overlap ratio between normalized
	// titles for two listings to be candidates for the same cluster.
	TitleSimilarity float64
	// PriceTolerance is the maximum relative difference between two known
	// prices, measured against the larger one.
	PriceTolerance float64
}

// builder accumulates one cluster while the pool is being partitioned.
type builder struct {
	key      string
	repPrice *float64
	members  []*models.RawListing
	// priced is the member whose price (and therefore URL) represents the
	// cluster; nil while no member has a known price.
	priced *models.RawListing
	first  *models.RawListing
}

// Partition splits the pooled listings into clusters. Every input listing
// lands in exactly one cluster; a cluster is never empty.
func Partition(pool []*models.RawListing, opts Options) []*models.Cluster {
	var builders []*builder

next:
	for _, l := range pool {
		key := parser.NormalizeTitle(l.Title)
		for _, b := range builders {
			if b.matches(key, l.Price, opts) {
				b.add(l)
				continue next
			}
		}
		b := &builder{key: key, first: l}
		b.add(l)
		builders = append(builders, b)
	}

	clusters := make([]*models.Cluster, 0, len(builders))
	for _, b := range builders {
		clusters = append(clusters, b.finish())
	}
	return clusters
}

// matches reports whether a listing belongs with this cluster: the titles
// must be similar, and any two known prices must sit within tolerance.
func (b *builder) matches(key string, price *float64, opts Options) bool {
	if tokenOverlap(b.key, key) < opts.TitleSimilarity {
		return false
	}
	if b.repPrice == nil || price == nil {
		return true
	}
	return withinTolerance(*b.repPrice, *price, opts.PriceTolerance)
}

func (b *builder) add(l *models.RawListing) {
	b.members = append(b.members, l)
	// Representative price is the minimum known price, first seen winning ties.
	if l.Price != nil && (b.repPrice == nil || *l.Price < *b.repPrice) {
		b.repPrice = l.Price
		b.priced = l
	}
}

func (b *builder) finish() *models.Cluster {
	c := &models.Cluster{
		Price:    b.repPrice,
		Listings: b.members,
	}

	linked := b.priced
	if linked == nil {
		linked = b.first
	}
	c.URL = linked.URL
	c.Image = linked.Image
	c.Location = linked.Location

	seen := make(map[string]struct{}, len(b.members))
	for _, m := range b.members {
		if len(m.Title) > len(c.Title) {
			c.Title = m.Title
		}
		if len(m.Description) > len(c.Description) {
			c.Description = m.Description
		}
		if _, ok := seen[m.Site]; !ok {
			seen[m.Site] = struct{}{}
			c.Sources = append(c.Sources, m.Site)
		}
	}
	return c
}

// tokenOverlap returns |A∩B| / min(|A|, |B|) over the whitespace tokens of
// two normalized title keys. Identical keys score 1, disjoint keys 0.
func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		if a == b {
			return 1
		}
		return 0
	}

	set := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		set[t] = struct{}{}
	}
	common := 0
	seen := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			common++
		}
	}

	denom := len(set)
	if len(seen) < denom {
		denom = len(seen)
	}
	return float64(common) / float64(denom)
}

func withinTolerance(a, b, tol float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	larger := a
	if b > larger {
		larger = b
	}
	if larger <= 0 {
		return true
	}
	return diff/larger <= tol
}
