// Package geo carries the post-extraction transform: distance to a
// configured centre point, a distance cut-off, and a price sort.
package geo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yourorg/rightmove-ingest/rightmove"
)

// Point is a lon/lat coordinate pair in decimal degrees.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// ParsePoint reads a "lon,lat" pair, the CITY_CENTRE env format.
func ParsePoint(v string) (Point, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("point %q: want \"lon,lat\"", v)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", v, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", v, err)
	}
	return Point{Longitude: lon, Latitude: lat}, nil
}

const earthRadiusMiles = 3956.0

// Haversine is the great-circle distance between two points in miles.
func Haversine(a, b Point) float64 {
	lon1, lat1 := radians(a.Longitude), radians(a.Latitude)
	lon2, lat2 := radians(b.Longitude), radians(b.Latitude)

	dlon := lon2 - lon1
	dlat := lat2 - lat1
	h := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * math.Asin(math.Sqrt(h)) * earthRadiusMiles
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Located is a canonical record annotated with its distance to the
// configured centre; the distance is null when the record carries no
// coordinates or no centre was configured.
type Located struct {
	rightmove.Property
	DistanceToCentreMiles *float64 `json:"distanceToCityCenter,omitempty"`
}

// Wrap lifts records into Located without computing distances.
func Wrap(records []rightmove.Property) []Located {
	located := make([]Located, 0, len(records))
	for _, p := range records {
		located = append(located, Located{Property: p})
	}
	return located
}

// Annotate lifts records into Located, computing the distance to
// centre for every record that has coordinates.
func Annotate(records []rightmove.Property, centre Point) []Located {
	located := make([]Located, 0, len(records))
	for _, p := range records {
		l := Located{Property: p}
		if p.Latitude != nil && p.Longitude != nil {
			d := Haversine(Point{Longitude: *p.Longitude, Latitude: *p.Latitude}, centre)
			l.DistanceToCentreMiles = &d
		}
		located = append(located, l)
	}
	return located
}

// FilterByDistance keeps records strictly closer than maxMiles.
// Records without a computed distance are dropped: they cannot be
// shown to be in range.
func FilterByDistance(records []Located, maxMiles float64) []Located {
	kept := records[:0]
	for _, l := range records {
		if l.DistanceToCentreMiles == nil || *l.DistanceToCentreMiles >= maxMiles {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// SortByPrice orders records by ascending numeric price. Records
// without a parseable price sort last, in their existing order.
func SortByPrice(records []Located) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, iok := records[i].PriceAmount()
		pj, jok := records[j].PriceAmount()
		if iok != jok {
			return iok
		}
		return pi < pj
	})
}

// Transform runs the full pipeline step: annotate distances, apply
// the cut-off when one is configured, and sort by price.
func Transform(records []rightmove.Property, centre Point, maxDistanceMiles float64) []Located {
	located := Annotate(records, centre)
	if maxDistanceMiles > 0 {
		located = FilterByDistance(located, maxDistanceMiles)
	}
	SortByPrice(located)
	return located
}
