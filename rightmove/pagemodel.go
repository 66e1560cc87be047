package rightmove

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const pageModelMarker = "PAGE_MODEL = "

// ErrNotListingPage marks an HTML document with no embedded property
// data, e.g. a search page or an error page reached via redirect.
var ErrNotListingPage = errors.New("page has no embedded property data")

// extractPropertyData pulls the JSON blob rightmove assigns to the
// PAGE_MODEL script variable on property detail pages and returns its
// propertyData member, the raw payload for the detail parse map.
func extractPropertyData(html string) (any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var blob string
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		i := strings.Index(text, pageModelMarker)
		if i < 0 {
			return true
		}
		blob = strings.TrimSpace(text[i+len(pageModelMarker):])
		found = true
		return false
	})
	if !found {
		return nil, ErrNotListingPage
	}

	var model struct {
		PropertyData any `json:"propertyData"`
	}
	if err := json.Unmarshal([]byte(blob), &model); err != nil {
		return nil, fmt.Errorf("decode PAGE_MODEL: %w", err)
	}
	if model.PropertyData == nil {
		return nil, errors.New("PAGE_MODEL has no propertyData")
	}
	return model.PropertyData, nil
}
