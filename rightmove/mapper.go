package rightmove

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/jmespath/go-jmespath"
)

// Parse maps bind each canonical Property field to the JMESPath that
// locates it inside a raw payload. An empty expression means the
// payload shape carries no such field and it stays null. The two
// shapes (search results vs detail-page PAGE_MODEL data) are
// structurally incompatible, which is why each gets its own table;
// when rightmove moves a field, only the table changes.

const agencyExpr = `customer.{
	id: branchId,
	branch: branchName,
	company: companyName,
	address: displayAddress,
	commercial: commercial,
	buildToRent: buildToRent,
	isNew: isNewHomeDeveloper
}`

var searchParseMap = map[string]string{
	"id":                   "id",
	"available":            "",
	"archived":             "",
	"phone":                "",
	"url":                  "propertyUrl",
	"bedrooms":             "bedrooms",
	"bathrooms":            "bathrooms",
	"type":                 "transactionType",
	"property_type":        "propertySubType",
	"tags":                 "tags",
	"description":          "summary",
	"title":                "",
	"subtitle":             "",
	"price":                "price.amount",
	"price_sqft":           "",
	"address":              "displayAddress",
	"latitude":             "location.latitude",
	"longitude":            "location.longitude",
	"features":             "",
	"history":              "",
	"photos":               "propertyImages.images[*].{url: srcUrl, caption: caption}",
	"floorplans":           "floorplans[*].{url: url, caption: caption}",
	"agency":               agencyExpr,
	"industryAffiliations": "",
	"nearest_airports":     "",
	"nearest_stations":     "",
	"sizings":              "",
	"brochures":            "",
}

var detailParseMap = map[string]string{
	"id":                   "id",
	"available":            "status.published",
	"archived":             "status.archived",
	"phone":                "contactInfo.telephoneNumbers.localNumber",
	"url":                  "",
	"bedrooms":             "bedrooms",
	"bathrooms":            "bathrooms",
	"type":                 "transactionType",
	"property_type":        "propertySubType",
	"tags":                 "tags",
	"description":          "text.description",
	"title":                "text.pageTitle",
	"subtitle":             "text.propertyPhrase",
	"price":                "prices.primaryPrice",
	"price_sqft":           "prices.pricePerSqFt",
	"address":              "address",
	"latitude":             "location.latitude",
	"longitude":            "location.longitude",
	"features":             "keyFeatures",
	"history":              "listingHistory",
	"photos":               "images[*].{url: url, caption: caption}",
	"floorplans":           "floorplans[*].{url: url, caption: caption}",
	"agency":               agencyExpr,
	"industryAffiliations": "industryAffiliations[*].name",
	"nearest_airports":     "nearestAirports[*].{name: name, distance: distance}",
	"nearest_stations":     "nearestStations[*].{name: name, distance: distance}",
	"sizings":              "sizings[*].{unit: unit, min: minimumSize, max: maximumSize}",
	"brochures":            "brochures",
}

var exprCache sync.Map // expression -> *jmespath.JMESPath

// searchPath evaluates a JMESPath expression against a decoded
// payload. Missing keys, out-of-range indexes and type mismatches all
// come back as nil; path evaluation never fails a record.
func searchPath(expr string, data any) any {
	cached, ok := exprCache.Load(expr)
	if !ok {
		compiled, err := jmespath.Compile(expr)
		if err != nil {
			log.Printf("rightmove: invalid parse-map expression %q: %v", expr, err)
			return nil
		}
		cached, _ = exprCache.LoadOrStore(expr, compiled)
	}
	v, err := cached.(*jmespath.JMESPath).Search(data)
	if err != nil {
		return nil
	}
	return v
}

// ParseProperty maps one raw payload into the canonical record using
// the given parse map. Fields whose path does not resolve are null;
// schema drift degrades individual fields, never the whole record.
func ParseProperty(data any, parseMap map[string]string) Property {
	fields := make(map[string]any, len(parseMap))
	for name, expr := range parseMap {
		if expr == "" {
			fields[name] = nil
			continue
		}
		fields[name] = searchPath(expr, data)
	}

	// A wrong-typed value would otherwise leave a half-decoded zero
	// behind (Unmarshal allocates the target before it fails), so each
	// type error nulls the whole offending field and the decode runs
	// again. Terminates: every pass removes one field.
	for {
		var p Property
		buf, err := json.Marshal(fields)
		if err != nil {
			return Property{}
		}
		err = json.Unmarshal(buf, &p)
		if err == nil {
			return p
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return Property{}
		}
		name := typeErr.Field
		if i := strings.IndexAny(name, ".["); i >= 0 {
			name = name[:i]
		}
		if name == "" || fields[name] == nil {
			return Property{}
		}
		fields[name] = nil
	}
}
