package cluster

import (
	"testing"

	"github.com/hhandc/GoodUsed/models"
)

func fptr(v float64) *float64 { return &v }

func testOptions() Options {
	return Options{TitleSimilarity: 0.5, PriceTolerance: 0.2}
}

func listing(site, title string, price *float64) *models.RawListing {
	return &models.RawListing{
		Site:  site,
		Title: title,
		Price: price,
		URL:   "https://" + site + ".example/" + title,
	}
}

func TestPartitionMergesSameItemAcrossSources(t *testing.T) {
	pool := []*models.RawListing{
		listing("carrot", "iPhone 12 128GB 블랙", fptr(350000)),
		listing("joongna", "iPhone 12 128GB 블랙", fptr(360000)),
		listing("bungae", "iPhone 12 128GB 블랙", fptr(600000)),
	}

	clusters := Partition(pool, testOptions())
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}

	merged := clusters[0]
	if len(merged.Listings) != 2 {
		t.Fatalf("merged cluster has %d members, want 2", len(merged.Listings))
	}
	if merged.Price == nil || *merged.Price != 350000 {
		t.Errorf("representative price = %v, want 350000", merged.Price)
	}
	if got := merged.URL; got != pool[0].URL {
		t.Errorf("cluster URL = %q, want the cheapest member's %q", got, pool[0].URL)
	}
	if len(merged.Sources) != 2 {
		t.Errorf("sources = %v, want two distinct sites", merged.Sources)
	}
}

func TestPartitionIsAPartition(t *testing.T) {
	pool := []*models.RawListing{
		listing("carrot", "iPhone 12 128GB 블랙", fptr(350000)),
		listing("carrot", "에어팟 프로 2세대", nil),
		listing("joongna", "iPhone 12 128GB", fptr(355000)),
		listing("bungae", "닌텐도 스위치 OLED", fptr(280000)),
		listing("bungae", "iPhone 12 128GB 블랙 미개봉", fptr(900000)),
	}

	clusters := Partition(pool, testOptions())

	seen := make(map[*models.RawListing]int)
	for _, c := range clusters {
		if len(c.Listings) == 0 {
			t.Fatalf("empty cluster produced")
		}
		for _, m := range c.Listings {
			seen[m]++
		}
	}
	if len(seen) != len(pool) {
		t.Fatalf("partition covers %d listings, want %d", len(seen), len(pool))
	}
	for l, n := range seen {
		if n != 1 {
			t.Errorf("listing %q appears in %d clusters, want exactly 1", l.Title, n)
		}
	}
}

func TestPartitionUnknownPriceJoinsSimilarTitle(t *testing.T) {
	pool := []*models.RawListing{
		listing("carrot", "LG 그램 17인치 노트북", fptr(800000)),
		listing("joongna", "LG 그램 17인치 노트북", nil),
	}

	clusters := Partition(pool, testOptions())
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1 (unknown price must not block a merge)", len(clusters))
	}
}

func TestPartitionKeepsDissimilarTitlesApart(t *testing.T) {
	pool := []*models.RawListing{
		listing("carrot", "iPhone 12", fptr(350000)),
		listing("carrot", "청소기 무선", fptr(350000)),
	}

	clusters := Partition(pool, testOptions())
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
}

func TestPartitionRepresentativeFields(t *testing.T) {
	a := listing("carrot", "소니 WH-1000XM4", fptr(200000))
	a.Description = "기스없음"
	b := listing("joongna", "소니 WH-1000XM4 헤드폰 풀박스", fptr(190000))
	b.Description = "풀박스, 영수증 포함된 깨끗한 상품입니다"

	clusters := Partition([]*models.RawListing{a, b}, testOptions())
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Title != b.Title {
		t.Errorf("title = %q, want the longest member title %q", c.Title, b.Title)
	}
	if c.Description != b.Description {
		t.Errorf("description = %q, want the longest member description", c.Description)
	}
	if c.URL != b.URL {
		t.Errorf("URL = %q, want the cheapest member's %q", c.URL, b.URL)
	}
}

func TestPartitionSameSourceMayMerge(t *testing.T) {
	pool := []*models.RawListing{
		listing("carrot", "플스5 디스크 에디션", fptr(450000)),
		listing("carrot", "플스5 디스크 에디션", fptr(440000)),
	}

	clusters := Partition(pool, testOptions())
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1 (no same-source exclusion)", len(clusters))
	}
	if len(clusters[0].Sources) != 1 {
		t.Errorf("sources = %v, want a single de-duplicated site", clusters[0].Sources)
	}
}

func TestPartitionEmptyPool(t *testing.T) {
	if got := Partition(nil, testOptions()); len(got) != 0 {
		t.Fatalf("Partition(nil) = %d clusters, want 0", len(got))
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"iphone 12 128gb", "iphone 12 128gb", 1},
		{"iphone 12 128gb 블랙", "iphone 12 128gb", 1},
		{"iphone 12", "galaxy s21", 0},
		{"", "", 1},
		{"iphone", "", 0},
	}
	for _, tt := range tests {
		if got := tokenOverlap(tt.a, tt.b); got != tt.want {
			t.Errorf("tokenOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
