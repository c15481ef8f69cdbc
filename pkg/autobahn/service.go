package autobahn

import (
	"context"

	"github.com/stacklok/autobahn-mcp/pkg/config"
)

// Service is the façade behind the MCP tools. It validates and normalizes
// highway identifiers against the catalog, delegates to the category
// fetchers, and shapes the upstream records into the tool output forms.
type Service struct {
	client  *Client
	catalog *Catalog
}

// NewService wires a service against the configured upstream API.
func NewService(cfg *config.Config) *Service {
	client := NewClient(cfg)
	return &Service{
		client:  client,
		catalog: NewCatalog(client, cfg.CatalogTTL),
	}
}

// Location is a point location in tool output.
type Location struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// WarningReport is one traffic warning in tool output.
type WarningReport struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Description  []string `json:"description"`
	Location     Location `json:"location"`
	TrafficType  *string  `json:"traffic_type"`
	AverageSpeed *string  `json:"average_speed"`
	Delay        *string  `json:"delay"`
	Timestamp    *string  `json:"timestamp"`
}

// WarningsReport is the get_traffic_warnings tool output.
type WarningsReport struct {
	Autobahn      string          `json:"autobahn"`
	WarningsCount int             `json:"warnings_count"`
	Warnings      []WarningReport `json:"warnings"`
}

// ClosureReport is one road closure in tool output.
type ClosureReport struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description []string `json:"description"`
	Location    Location `json:"location"`
	Delay       *string  `json:"delay"`
	Timestamp   *string  `json:"timestamp"`
}

// ClosuresReport is the get_road_closures tool output.
type ClosuresReport struct {
	Autobahn      string          `json:"autobahn"`
	ClosuresCount int             `json:"closures_count"`
	Closures      []ClosureReport `json:"closures"`
}

// StationReport is one charging station in tool output.
type StationReport struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description []string `json:"description"`
	Location    Location `json:"location"`
}

// StationsReport is the get_charging_stations tool output.
type StationsReport struct {
	Autobahn         string          `json:"autobahn"`
	StationsCount    int             `json:"stations_count"`
	ChargingStations []StationReport `json:"charging_stations"`
}

// ListAutobahns returns all valid highway identifiers in upstream order.
func (s *Service) ListAutobahns(ctx context.Context) ([]string, error) {
	return s.catalog.Roads(ctx)
}

// TrafficWarnings returns the current traffic warnings for one highway.
func (s *Service) TrafficWarnings(ctx context.Context, id string) (*WarningsReport, error) {
	canonical, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	warnings, err := fetchCategory[Warning](ctx, s.client, warningsCategory, canonical)
	if err != nil {
		return nil, err
	}
	return newWarningsReport(canonical, warnings), nil
}

// RoadClosures returns the current road closures for one highway.
func (s *Service) RoadClosures(ctx context.Context, id string) (*ClosuresReport, error) {
	canonical, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	closures, err := fetchCategory[Closure](ctx, s.client, closuresCategory, canonical)
	if err != nil {
		return nil, err
	}
	return newClosuresReport(canonical, closures), nil
}

// ChargingStations returns the electric charging stations along one highway.
func (s *Service) ChargingStations(ctx context.Context, id string) (*StationsReport, error) {
	canonical, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	stations, err := fetchCategory[ChargingStation](ctx, s.client, chargingStationsCategory, canonical)
	if err != nil {
		return nil, err
	}
	return newStationsReport(canonical, stations), nil
}

func newWarningsReport(autobahn string, warnings []Warning) *WarningsReport {
	reports := make([]WarningReport, 0, len(warnings))
	for _, w := range warnings {
		reports = append(reports, WarningReport{
			Title:        w.Title,
			Subtitle:     w.Subtitle,
			Description:  w.Description,
			Location:     Location{Lat: w.Coordinate.Lat, Long: w.Coordinate.Long},
			TrafficType:  optional(w.AbnormalTrafficType),
			AverageSpeed: withUnit(w.AverageSpeed, "km/h"),
			Delay:        withUnit(w.DelayTimeValue, "minutes"),
			Timestamp:    optional(w.StartTimestamp),
		})
	}
	return &WarningsReport{
		Autobahn:      autobahn,
		WarningsCount: len(reports),
		Warnings:      reports,
	}
}

func newClosuresReport(autobahn string, closures []Closure) *ClosuresReport {
	reports := make([]ClosureReport, 0, len(closures))
	for _, c := range closures {
		reports = append(reports, ClosureReport{
			Title:       c.Title,
			Subtitle:    c.Subtitle,
			Description: c.Description,
			Location:    Location{Lat: c.Coordinate.Lat, Long: c.Coordinate.Long},
			Delay:       withUnit(c.DelayTimeValue, "minutes"),
			Timestamp:   optional(c.StartTimestamp),
		})
	}
	return &ClosuresReport{
		Autobahn:      autobahn,
		ClosuresCount: len(reports),
		Closures:      reports,
	}
}

func newStationsReport(autobahn string, stations []ChargingStation) *StationsReport {
	reports := make([]StationReport, 0, len(stations))
	for _, st := range stations {
		reports = append(reports, StationReport{
			Title:       st.Title,
			Subtitle:    st.Subtitle,
			Description: st.Description,
			Location:    Location{Lat: st.Coordinate.Lat, Long: st.Coordinate.Long},
		})
	}
	return &StationsReport{
		Autobahn:         autobahn,
		StationsCount:    len(reports),
		ChargingStations: reports,
	}
}

// optional returns nil for empty upstream fields so they render as JSON
// null, matching the declared tool output.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// withUnit renders an upstream numeric string with its unit ("30 km/h",
// "10 minutes"), or nil when the field is absent.
func withUnit(value, unit string) *string {
	if value == "" {
		return nil
	}
	formatted := value + " " + unit
	return &formatted
}
