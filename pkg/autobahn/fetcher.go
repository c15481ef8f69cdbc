package autobahn

import (
	"context"
	"encoding/json"
	"fmt"
)

// category describes one upstream service category. The three categories
// are structurally identical; only the resource path and the wrapper
// field holding the record array differ.
type category struct {
	// name labels the category in overview slots, metrics, and logs.
	name string
	// service is the upstream path segment under /{highwayId}/services/.
	service string
	// field is the wrapper object key holding the record array.
	field string
}

var (
	warningsCategory = category{
		name:    "warnings",
		service: "warning",
		field:   "warning",
	}
	closuresCategory = category{
		name:    "closures",
		service: "closure",
		field:   "closure",
	}
	chargingStationsCategory = category{
		name:    "charging_stations",
		service: "electric_charging_station",
		field:   "electric_charging_station",
	}
)

// fetchCategory fetches one category of records for a highway whose
// identifier has already been resolved against the catalog. The upstream
// wrapper object is flattened to the bare record array and projected into
// the category's typed records at this boundary; loosely-typed payloads
// never leak past it.
func fetchCategory[T any](ctx context.Context, client *Client, cat category, canonicalID string) ([]T, error) {
	resourcePath := canonicalID + "/services/" + cat.service

	envelope, err := fetchResource[map[string]json.RawMessage](ctx, client, resourcePath, cat.name)
	if err != nil {
		return nil, err
	}

	raw, ok := envelope[cat.field]
	if !ok {
		// The upstream omits the array field when a highway has no
		// records in this category.
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, NewUpstreamBadResponseError(
			fmt.Sprintf("unexpected shape for %s records", cat.name), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
