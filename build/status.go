package build

import (
	"math"

	"github.com/skyfend/sapient-client/adapter"
	"github.com/skyfend/sapient-client/radar"
	"github.com/skyfend/sapient-client/wire"
)

const (
	positionEpsilon = 0.00001
	angleEpsilon    = 0.1
	tempEpsilon     = 5.0
)

// StatusSnapshot is the subset of radar.State the status worker compares
// across reports to decide INFO_NEW vs INFO_UNCHANGED.
type StatusSnapshot struct {
	SysStatus     uint32
	FaultCount    int
	MaxFaultLevel uint32

	Lon, Lat, Alt      float64
	Heading, Pitch, Roll float64

	TrackEnabled         bool
	OTMMode              bool
	FilterLevel          int
	WeatherClutterFilter bool
	TemperatureC         float64
}

// equal compares two snapshots using fixed epsilons, so tiny
// floating-point jitter in position/angle/temperature readings doesn't
// flip every report to INFO_NEW.
func (s StatusSnapshot) equal(o StatusSnapshot) bool {
	return s.SysStatus == o.SysStatus &&
		s.FaultCount == o.FaultCount &&
		s.MaxFaultLevel == o.MaxFaultLevel &&
		nearlyEqual(s.Lon, o.Lon, positionEpsilon) &&
		nearlyEqual(s.Lat, o.Lat, positionEpsilon) &&
		nearlyEqual(s.Alt, o.Alt, positionEpsilon) &&
		nearlyEqual(s.Heading, o.Heading, angleEpsilon) &&
		nearlyEqual(s.Pitch, o.Pitch, angleEpsilon) &&
		nearlyEqual(s.Roll, o.Roll, angleEpsilon) &&
		s.TrackEnabled == o.TrackEnabled &&
		s.OTMMode == o.OTMMode &&
		s.FilterLevel == o.FilterLevel &&
		s.WeatherClutterFilter == o.WeatherClutterFilter &&
		nearlyEqual(s.TemperatureC, o.TemperatureC, tempEpsilon)
}

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// snapshotFromState builds a StatusSnapshot out of the externally-owned
// radar.State and runtime config flags.
func snapshotFromState(state radar.State, cfg radar.ConfigProvider) StatusSnapshot {
	maxLevel := uint32(0)
	for _, f := range state.Faults {
		if f.Level > maxLevel {
			maxLevel = f.Level
		}
	}
	clutter := cfg.ClutterStatus()
	return StatusSnapshot{
		SysStatus:            state.SysStatus,
		FaultCount:           len(state.Faults),
		MaxFaultLevel:        maxLevel,
		Lon:                  state.Longitude,
		Lat:                  state.Latitude,
		Alt:                  state.Altitude,
		Heading:              state.Heading,
		Pitch:                state.Pitch,
		Roll:                 state.Roll,
		TrackEnabled:         cfg.TrackEnabled(),
		OTMMode:              cfg.OTMMode(),
		FilterLevel:          clutter.FilterLevel,
		WeatherClutterFilter: clutter.WeatherClutterFilter,
		TemperatureC:         state.TemperatureC,
	}
}

// StatusBuilder wraps Builder with the mutable last-snapshot state used
// for change detection, kept as an instance field rather than a global so
// multiple builders can track independent histories.
type StatusBuilder struct {
	*Builder
	lastSnapshot *StatusSnapshot
}

// NewStatusBuilder wraps b with per-worker change-detection state.
func NewStatusBuilder(b *Builder) *StatusBuilder {
	return &StatusBuilder{Builder: b}
}

// BuildStatusReport builds a StatusReport wrapper from the current radar
// state and config flags, comparing against the last snapshot this
// StatusBuilder reported as INFO_NEW to decide INFO_NEW vs INFO_UNCHANGED.
func (sb *StatusBuilder) BuildStatusReport(state radar.State, cfg radar.ConfigProvider, activeTaskID string) (*wire.Wrapper, error) {
	snap := snapshotFromState(state, cfg)
	info := "INFO_UNCHANGED"
	if sb.lastSnapshot == nil || !sb.lastSnapshot.equal(snap) {
		info = "INFO_NEW"
		sb.lastSnapshot = &snap
	}

	source := adapter.PowerSourceBits(state.StatusBits)
	powerSrc, powerStatus, level, hasLevel := adapter.Power(source, state.BatteryLevelPercent)
	power := wire.Power{Source: powerSrc, Status: powerStatus}
	if hasLevel {
		power.Level = level
	}

	azimuth := adapter.NormalizeAzimuth(state.AziScanCenter + state.Heading)
	fov := wire.FieldOfView{
		Azimuth:          azimuth,
		Elevation:        state.EleScanCenter + state.Pitch,
		Range:            state.ScanRadius,
		HorizontalExtent: state.HorizontalScope,
		VerticalExtent:   state.VerticalScope,
	}

	entries := statusEntries(state, cfg)

	report := &wire.StatusReport{
		ReportID:     sb.ulids.New(),
		ActiveTaskID: activeTaskID,
		Info:         info,
		System:       adapter.SystemLevel(snap.MaxFaultLevel, snap.SysStatus),
		Mode:         adapter.Mode(snap.SysStatus),
		NodeLocation: wire.NodeLocation{
			Longitude:    state.Longitude,
			Latitude:     state.Latitude,
			Altitude:     state.Altitude,
			ErrorDegrees: adapter.NodeLocationErrorDegrees(),
			Datum:        "WGS84",
		},
		Power:         power,
		FieldOfView:   fov,
		StatusEntries: entries,
	}
	return sb.wrap(report)
}

func statusEntries(state radar.State, cfg radar.ConfigProvider) []wire.StatusEntry {
	clutter := cfg.ClutterStatus()
	entries := []wire.StatusEntry{
		{Type: "platform_type", Level: "INFO", Value: itoa(adapter.PlatformType(state.StatusBits))},
		{Type: "attitude_source", Level: "INFO", Value: itoa(adapter.AttitudeSource(state.StatusBits))},
		{Type: "otm_mode", Level: "INFO", Value: boolStr(cfg.OTMMode())},
		{Type: "filter_level", Level: "INFO", Value: itoa(uint32(clutter.FilterLevel))},
		{Type: "weather_clutter_filter", Level: "INFO", Value: boolStr(clutter.WeatherClutterFilter)},
		{Type: "temperature", Level: adapter.TemperatureLevel(state.TemperatureC), Value: ftoa(state.TemperatureC)},
	}
	for _, f := range state.Faults {
		entries = append(entries, wire.StatusEntry{
			Type:  "fault",
			Level: adapter.FaultLevel(f.Level),
			Value: itoa(f.Code),
		})
	}
	return entries
}
