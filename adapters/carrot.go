package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/hhandc/GoodUsed/config"
	"github.com/hhandc/GoodUsed/models"
	"github.com/hhandc/GoodUsed/parser"
)

// Carrot Market public search page; markup may change.
const carrotSearchURL = "https://www.daangn.com/search/%s"

// Carrot scrapes daangn.com search results.
type Carrot struct {
	cfg       *config.Config
	transport http.RoundTripper
}

func NewCarrot(cfg *config.Config, transport http.RoundTripper) *Carrot {
	return &Carrot{cfg: cfg, transport: transport}
}

func (a *Carrot) Site() string { return "carrot" }

func (a *Carrot) Search(ctx context.Context, query string) ([]*models.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := a.newCollector()
	var listings []*models.RawListing
	var fetchErr error

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = ErrStatus{Code: r.StatusCode}
			return
		}
		fetchErr = classify(err)
	})

	c.OnHTML(".flea-market-article, .card-top", func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(".article-title, .card-title"))
		href := e.ChildAttr("a", "href")
		if title == "" || href == "" {
			return
		}

		l := &models.RawListing{
			Site:     a.Site(),
			Title:    title,
			URL:      e.Request.AbsoluteURL(href),
			Image:    e.ChildAttr("img", "src"),
			Location: strings.TrimSpace(e.ChildText(".article-region-name, .card-region-name")),
		}
		if price, ok := parser.ParsePrice(e.ChildText(".article-price, .card-price")); ok {
			l.Price = &price
		}
		listings = append(listings, l)
	})

	if err := c.Visit(fmt.Sprintf(carrotSearchURL, url.PathEscape(query))); err != nil {
		// OnError has already classified response-level failures.
		if fetchErr != nil {
			return nil, fetchErr
		}
		return nil, classify(err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return listings, nil
}

func (a *Carrot) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(a.cfg.UserAgent))
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(a.cfg.FetchTimeout)
	if a.transport != nil {
		c.WithTransport(a.transport)
	}
	return c
}
