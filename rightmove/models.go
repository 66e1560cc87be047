package rightmove

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Property is the canonical record produced from either raw payload
// shape. Every field except ID may be null when the source payload
// has no value for it.
type Property struct {
	ID                   stringNumber  `json:"id"`
	Available            *bool         `json:"available"`
	Archived             *bool         `json:"archived"`
	Phone                *string       `json:"phone"`
	URL                  *string       `json:"url"`
	Bedrooms             *int          `json:"bedrooms"`
	Bathrooms            *int          `json:"bathrooms"`
	Type                 *string       `json:"type"`
	PropertyType         *string       `json:"property_type"`
	Tags                 []string      `json:"tags"`
	Description          *string       `json:"description"`
	Title                *string       `json:"title"`
	Subtitle             *string       `json:"subtitle"`
	Price                *stringNumber `json:"price"`
	PriceSqft            *stringNumber `json:"price_sqft"`
	Address              any           `json:"address"`
	Latitude             *float64      `json:"latitude"`
	Longitude            *float64      `json:"longitude"`
	Features             []string      `json:"features"`
	History              any           `json:"history"`
	Photos               []Media       `json:"photos"`
	Floorplans           []Media       `json:"floorplans"`
	Agency               *Agency       `json:"agency"`
	IndustryAffiliations []string      `json:"industryAffiliations"`
	NearestAirports      []Landmark    `json:"nearest_airports"`
	NearestStations      []Landmark    `json:"nearest_stations"`
	Sizings              []Sizing      `json:"sizings"`
	Brochures            any           `json:"brochures"`
}

// Media is a photo or floorplan entry.
type Media struct {
	URL     *string `json:"url"`
	Caption *string `json:"caption"`
}

// Landmark is a nearby airport or station with its distance in miles.
type Landmark struct {
	Name     *string  `json:"name"`
	Distance *float64 `json:"distance"`
}

// Sizing is a floor-area range in a given unit.
type Sizing struct {
	Unit *string  `json:"unit"`
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
}

// Agency is the listing branch.
type Agency struct {
	ID          stringNumber `json:"id"`
	Branch      *string      `json:"branch"`
	Company     *string      `json:"company"`
	Address     *string      `json:"address"`
	Commercial  *bool        `json:"commercial"`
	BuildToRent *bool        `json:"buildToRent"`
	IsNew       *bool        `json:"isNew"`
}

// PriceAmount parses the price into a number. Search results carry a
// plain amount while detail pages render a display string such as
// "£325,000"; both reduce to the same figure.
func (p Property) PriceAmount() (float64, bool) {
	if p.Price == nil {
		return 0, false
	}
	var b strings.Builder
	for _, r := range strings.TrimSpace(string(*p.Price)) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stringNumber accepts string or number JSON and stores the textual
// form; rightmove switches between the two across payload shapes.
// Any other shape decodes to empty rather than failing the record.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err == nil {
			*s = stringNumber(str)
		}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = stringNumber(num.String())
	}
	return nil
}
