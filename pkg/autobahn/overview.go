package autobahn

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/autobahn-mcp/pkg/logger"
)

// OverviewSummary is the per-category record count block of an overview.
type OverviewSummary struct {
	Warnings         int `json:"warnings"`
	Closures         int `json:"closures"`
	ChargingStations int `json:"charging_stations"`
}

// OverviewReport is the get_autobahn_overview tool output. Every category
// sequence is always present; categories that failed are empty sequences
// with an accompanying note in Failures, and Complete is true only when
// all three categories succeeded.
type OverviewReport struct {
	Autobahn         string            `json:"autobahn"`
	Complete         bool              `json:"complete"`
	Summary          OverviewSummary   `json:"summary"`
	Warnings         []WarningReport   `json:"warnings"`
	Closures         []ClosureReport   `json:"closures"`
	ChargingStations []StationReport   `json:"charging_stations"`
	Failures         map[string]string `json:"failures,omitempty"`
}

// Overview composes all three categories for one highway. The identifier
// is validated once, then the three fetches run concurrently and are
// joined unconditionally: a failing category never blocks or aborts its
// siblings, and whatever succeeded is always returned.
func (s *Service) Overview(ctx context.Context, id string) (*OverviewReport, error) {
	canonical, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		warnings []Warning
		closures []Closure
		stations []ChargingStation

		warningsErr error
		closuresErr error
		stationsErr error
	)

	// A bare errgroup, not errgroup.WithContext: a failure in one
	// category must not cancel the in-flight sibling fetches.
	var g errgroup.Group
	g.Go(func() error {
		warnings, warningsErr = fetchCategory[Warning](ctx, s.client, warningsCategory, canonical)
		return nil
	})
	g.Go(func() error {
		closures, closuresErr = fetchCategory[Closure](ctx, s.client, closuresCategory, canonical)
		return nil
	})
	g.Go(func() error {
		stations, stationsErr = fetchCategory[ChargingStation](ctx, s.client, chargingStationsCategory, canonical)
		return nil
	})
	_ = g.Wait()

	failures := make(map[string]string)
	if warningsErr != nil {
		logger.Warnw("Overview category failed", "autobahn", canonical,
			"category", warningsCategory.name, "error", warningsErr)
		failures[warningsCategory.name] = warningsErr.Error()
		warnings = nil
	}
	if closuresErr != nil {
		logger.Warnw("Overview category failed", "autobahn", canonical,
			"category", closuresCategory.name, "error", closuresErr)
		failures[closuresCategory.name] = closuresErr.Error()
		closures = nil
	}
	if stationsErr != nil {
		logger.Warnw("Overview category failed", "autobahn", canonical,
			"category", chargingStationsCategory.name, "error", stationsErr)
		failures[chargingStationsCategory.name] = stationsErr.Error()
		stations = nil
	}

	warningsReport := newWarningsReport(canonical, warnings)
	closuresReport := newClosuresReport(canonical, closures)
	stationsReport := newStationsReport(canonical, stations)

	report := &OverviewReport{
		Autobahn: canonical,
		Complete: len(failures) == 0,
		Summary: OverviewSummary{
			Warnings:         warningsReport.WarningsCount,
			Closures:         closuresReport.ClosuresCount,
			ChargingStations: stationsReport.StationsCount,
		},
		Warnings:         warningsReport.Warnings,
		Closures:         closuresReport.Closures,
		ChargingStations: stationsReport.ChargingStations,
	}
	if len(failures) > 0 {
		report.Failures = failures
	}
	return report, nil
}
