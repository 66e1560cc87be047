package rightmove

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Tokenise converts a location name into rightmove's typeahead token
// format: uppercased and grouped two characters at a time, so
// "manchester" becomes "MA/NC/HE/ST/ER". An odd-length name keeps its
// final character as a single group; there is no trailing separator.
func Tokenise(location string) string {
	runes := []rune(strings.ToUpper(location))
	groups := make([]string, 0, (len(runes)+1)/2)
	for i := 0; i < len(runes); i += 2 {
		end := i + 2
		if end > len(runes) {
			end = len(runes)
		}
		groups = append(groups, string(runes[i:end]))
	}
	return strings.Join(groups, "/")
}

type typeAheadResponse struct {
	Locations []struct {
		LocationIdentifier string `json:"locationIdentifier"`
	} `json:"typeAheadLocations"`
}

// FindLocations queries rightmove's typeahead endpoint for a free-text
// location name and returns the matching location identifiers in the
// platform's own relevance order. No predictions is not an error; the
// result is simply empty.
func (c *Client) FindLocations(ctx context.Context, location string) ([]string, error) {
	log.Printf("rightmove: finding location ids for %q", location)

	u := c.baseURL + "/typeAhead/uknostreet/" + Tokenise(location) + "/"
	var resp typeAheadResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("typeahead %q: %w", location, err)
	}

	ids := make([]string, 0, len(resp.Locations))
	for _, prediction := range resp.Locations {
		ids = append(ids, prediction.LocationIdentifier)
	}
	log.Printf("rightmove: found %d location ids for %q", len(ids), location)
	return ids, nil
}
