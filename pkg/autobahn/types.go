// Package autobahn implements the traffic data layer of the server: the
// upstream REST client, the cached highway identifier catalog, the
// per-category fetchers, the concurrent overview composer, and the
// service façade behind the MCP tools.
package autobahn

// Coordinate is a point location as delivered by the upstream API.
// The API encodes lat/long as quoted decimal strings.
type Coordinate struct {
	Lat  float64 `json:"lat,string"`
	Long float64 `json:"long,string"`
}

// Geometry is the GeoJSON-style geometry attached to some records.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Warning is one traffic warning record from the upstream API.
type Warning struct {
	Identifier          string     `json:"identifier"`
	Icon                string     `json:"icon"`
	Title               string     `json:"title"`
	Subtitle            string     `json:"subtitle"`
	Description         []string   `json:"description"`
	Coordinate          Coordinate `json:"coordinate"`
	StartTimestamp      string     `json:"startTimestamp,omitempty"`
	DelayTimeValue      string     `json:"delayTimeValue,omitempty"`
	AbnormalTrafficType string     `json:"abnormalTrafficType,omitempty"`
	AverageSpeed        string     `json:"averageSpeed,omitempty"`
	Geometry            *Geometry  `json:"geometry,omitempty"`
}

// Closure is one road closure record from the upstream API.
type Closure struct {
	Identifier     string     `json:"identifier"`
	Icon           string     `json:"icon"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	Description    []string   `json:"description"`
	Coordinate     Coordinate `json:"coordinate"`
	StartTimestamp string     `json:"startTimestamp,omitempty"`
	DelayTimeValue string     `json:"delayTimeValue,omitempty"`
	Geometry       *Geometry  `json:"geometry,omitempty"`
}

// ChargingStation is one electric charging station record from the
// upstream API.
type ChargingStation struct {
	Identifier  string     `json:"identifier"`
	Icon        string     `json:"icon"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description []string   `json:"description"`
	Coordinate  Coordinate `json:"coordinate"`
	Geometry    *Geometry  `json:"geometry,omitempty"`
}

// roadsResponse is the upstream enumeration endpoint payload.
type roadsResponse struct {
	Roads []string `json:"roads"`
}
