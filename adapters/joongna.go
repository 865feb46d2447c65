package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hhandc/GoodUsed/models"
	"github.com/hhandc/GoodUsed/parser"
)

const (
	joongnaBaseURL   = "https://web.joongna.com"
	joongnaSearchURL = joongnaBaseURL + "/search?keyword=%s"
)

// Joongna scrapes web.joongna.com search results. The site renders several
// card variants, so the selector set is deliberately loose: any anchor into
// /product/ is treated as a listing card.
type Joongna struct {
	fetcher *Fetcher
}

func NewJoongna(fetcher *Fetcher) *Joongna {
	return &Joongna{fetcher: fetcher}
}

func (a *Joongna) Site() string { return "joongna" }

func (a *Joongna) Search(ctx context.Context, query string) ([]*models.RawListing, error) {
	html, err := a.fetcher.Fetch(ctx, fmt.Sprintf(joongnaSearchURL, url.QueryEscape(query)))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var listings []*models.RawListing
	seen := make(map[string]struct{})

	doc.Find(`[data-testid="product-card"], .ProductCard, a[href*="/product/"]`).Each(func(_ int, card *goquery.Selection) {
		anchor := card
		if !card.Is("a") {
			anchor = card.Find(`a[href*="/product/"]`).First()
			if anchor.Length() == 0 {
				return
			}
		}

		href, _ := anchor.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = joongnaBaseURL + href
		}

		title := strings.TrimSpace(card.Find(`[data-testid="product-title"], .title, .name`).First().Text())
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}
		if title == "" || href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		l := &models.RawListing{
			Site:  a.Site(),
			Title: title,
			URL:   href,
		}
		if img, ok := card.Find("img").First().Attr("src"); ok {
			l.Image = img
		}
		priceText := card.Find(`[data-testid="product-price"], .price`).First().Text()
		if priceText == "" {
			priceText = anchor.Text()
		}
		if price, ok := parser.ParsePrice(priceText); ok {
			l.Price = &price
		}
		if dateText := card.Find(`[data-testid="product-date"], time`).First().Text(); dateText != "" {
			if posted, ok := parser.ParseDate(dateText); ok {
				l.PostedAt = &posted
			}
		}
		listings = append(listings, l)
	})

	return listings, nil
}
