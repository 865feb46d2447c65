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

// Bungae Jangtu mobile search page; markup may change.
const bungaeSearchURL = "https://m.bunjang.co.kr/search/products?q=%s"

// Bungae scrapes m.bunjang.co.kr search results.
type Bungae struct {
	cfg       *config.Config
	transport http.RoundTripper
}

func NewBungae(cfg *config.Config, transport http.RoundTripper) *Bungae {
	return &Bungae{cfg: cfg, transport: transport}
}

func (a *Bungae) Site() string { return "bungae" }

func (a *Bungae) Search(ctx context.Context, query string) ([]*models.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.UserAgent(a.cfg.UserAgent))
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(a.cfg.FetchTimeout)
	if a.transport != nil {
		c.WithTransport(a.transport)
	}

	var listings []*models.RawListing
	var fetchErr error

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = ErrStatus{Code: r.StatusCode}
			return
		}
		fetchErr = classify(err)
	})

	c.OnHTML(".product-card, .sc-kAzzGY", func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(".name, .product-title"))
		href := e.ChildAttr("a", "href")
		if title == "" || href == "" {
			return
		}

		l := &models.RawListing{
			Site:        a.Site(),
			Title:       title,
			URL:         e.Request.AbsoluteURL(href),
			Image:       e.ChildAttr("img", "src"),
			Description: strings.TrimSpace(e.ChildText(".desc")),
		}
		if price, ok := parser.ParsePrice(e.ChildText(".price, .product-price")); ok {
			l.Price = &price
		}
		listings = append(listings, l)
	})

	if err := c.Visit(fmt.Sprintf(bungaeSearchURL, url.QueryEscape(query))); err != nil {
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
