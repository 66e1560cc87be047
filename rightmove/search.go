package rightmove

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
)

const (
	// resultsPerPage is the fixed page size the search endpoint serves.
	resultsPerPage = 24
	// maxAPIResults is the highest result index the endpoint will
	// serve; offsets at or beyond it are never requested. Both values
	// are undocumented server-side behaviour and may silently change.
	maxAPIResults = 1000
)

// SearchOptions tune a search. The zero value searches BUY listings
// priced in GBP within a 3 mile radius, matching the site defaults.
type SearchOptions struct {
	Channel      string  // "BUY" or "RENT"
	CurrencyCode string  // e.g. "GBP"
	Radius       float64 // miles
	SortType     int
	MaxPrice     int // 0 means no price ceiling
	IncludeSSTC  bool
}

func (o *SearchOptions) withDefaults() {
	if o.Channel == "" {
		o.Channel = "BUY"
	}
	if o.CurrencyCode == "" {
		o.CurrencyCode = "GBP"
	}
	if o.Radius <= 0 {
		o.Radius = 3.0
	}
	if o.SortType == 0 {
		o.SortType = 6
	}
}

type searchResponse struct {
	ResultCount string `json:"resultCount"`
	Properties  []any  `json:"properties"`
}

func (c *Client) searchURL(locationID string, offset int, opts SearchOptions) string {
	q := url.Values{}
	q.Set("areaSizeUnit", "sqft")
	q.Set("channel", opts.Channel)
	q.Set("currencyCode", opts.CurrencyCode)
	q.Set("includeSSTC", strconv.FormatBool(opts.IncludeSSTC))
	q.Set("index", strconv.Itoa(offset))
	q.Set("isFetching", "false")
	q.Set("locationIdentifier", locationID)
	q.Set("numberOfPropertiesPerPage", strconv.Itoa(resultsPerPage))
	q.Set("radius", strconv.FormatFloat(opts.Radius, 'f', 1, 64))
	q.Set("sortType", strconv.Itoa(opts.SortType))
	q.Set("viewType", "LIST")
	if opts.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(opts.MaxPrice))
	}
	return c.baseURL + "/api/_search?" + q.Encode()
}

// SearchAll returns every matching property in a location, subject to
// the endpoint's result ceiling. The first page is fetched
// synchronously to learn the total count; remaining pages are fetched
// concurrently and merged as they complete, so ordering beyond the
// first page follows completion, not page order. A failed page
// degrades only its own contribution.
func (c *Client) SearchAll(ctx context.Context, locationID string, opts SearchOptions) ([]Property, error) {
	opts.withDefaults()
	log.Printf("rightmove: scraping all properties in location %s", locationID)

	var first searchResponse
	if err := c.getJSON(ctx, c.searchURL(locationID, 0, opts), &first); err != nil {
		return nil, fmt.Errorf("search %s first page: %w", locationID, err)
	}
	total, err := parseResultCount(first.ResultCount)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", locationID, err)
	}

	// resultCount is upstream-controlled; never size an allocation
	// past what the ceiling allows us to fetch.
	hint := total
	if hint > maxAPIResults {
		hint = maxAPIResults
	}
	results := make([]Property, 0, hint)
	for _, raw := range first.Properties {
		results = append(results, ParseProperty(raw, searchParseMap))
	}

	var offsets []int
	for offset := resultsPerPage; offset < total && offset < maxAPIResults; offset += resultsPerPage {
		offsets = append(offsets, offset)
	}

	type pageResult struct {
		offset int
		props  []any
		err    error
	}
	pages := make(chan pageResult, len(offsets))
	for _, offset := range offsets {
		go func(offset int) {
			var page searchResponse
			err := c.getJSON(ctx, c.searchURL(locationID, offset, opts), &page)
			pages <- pageResult{offset: offset, props: page.Properties, err: err}
		}(offset)
	}
	for range offsets {
		page := <-pages
		if page.err != nil {
			log.Printf("rightmove: search %s offset %d failed, skipping page: %v", locationID, page.offset, page.err)
			continue
		}
		for _, raw := range page.props {
			results = append(results, ParseProperty(raw, searchParseMap))
		}
	}

	log.Printf("rightmove: found %d properties in location %s", len(results), locationID)
	return results, nil
}

// parseResultCount reads the comma-grouped count string the search
// endpoint reports, e.g. "1,234".
func parseResultCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("bad result count %q: %w", raw, err)
	}
	return n, nil
}
