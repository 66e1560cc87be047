package rightmove

import (
	"context"
	"errors"
	"log"
)

// ScrapeURLs fetches property detail pages concurrently and returns
// one record per URL that is actually a listing page. Output follows
// completion order, not input order. A URL that fails to fetch or
// decode is logged and dropped without affecting its siblings.
func (c *Client) ScrapeURLs(ctx context.Context, urls []string) []Property {
	log.Printf("rightmove: scraping properties from %d urls", len(urls))

	type urlResult struct {
		url  string
		prop Property
		err  error
	}
	done := make(chan urlResult, len(urls))
	for _, u := range urls {
		go func(u string) {
			body, err := c.get(ctx, u)
			if err != nil {
				done <- urlResult{url: u, err: err}
				return
			}
			data, err := extractPropertyData(string(body))
			if err != nil {
				done <- urlResult{url: u, err: err}
				return
			}
			done <- urlResult{url: u, prop: ParseProperty(data, detailParseMap)}
		}(u)
	}

	properties := make([]Property, 0, len(urls))
	for range urls {
		res := <-done
		switch {
		case errors.Is(res.err, ErrNotListingPage):
			log.Printf("rightmove: page %s is not a property listing page", res.url)
		case res.err != nil:
			log.Printf("rightmove: skipping %s: %v", res.url, res.err)
		default:
			properties = append(properties, res.prop)
		}
	}
	return properties
}
