// Package radar declares the external collaborators the SAPIENT client
// depends on but does not implement: the radar data source, the
// configuration store's runtime flags, and device identity. These are
// injected into the client via Options so a host application supplies its
// own radar fusion stack and configuration backend.
package radar

import "time"

// State is the latest fused radar snapshot, refreshed asynchronously by the
// host application and read by the status and detection builders through a
// thread-safe Source.
type State struct {
	// sysStatus is the raw status enum reported by the radar firmware (see
	// adapter.Mode for the mapping table).
	SysStatus uint32

	// StatusBits is the raw radar status bitfield: platform type (B3..B5),
	// power source/level (B9..B10), attitude source (B15..B16).
	StatusBits uint32

	// Faults is the list of currently active fault codes; each entry's
	// Level follows the same 0x01/0x02/0x03 scale as StatusBits-derived
	// severities (0x03 is the most severe).
	Faults []Fault

	Longitude float64
	Latitude  float64
	Altitude  float64

	Heading float64
	Pitch   float64
	Roll    float64

	// AziScanCenter/EleScanCenter/ScanRadius/HorizontalScope/VerticalScope
	// describe the radar's current field of view in the platform frame.
	AziScanCenter   float64
	EleScanCenter   float64
	ScanRadius      float64
	HorizontalScope float64
	VerticalScope   float64

	// TemperatureC is the maximum validated temperature across all sensed
	// elements, already resolved from raw ADC codes by the host.
	TemperatureC float64

	// BatteryLevelPercent is only meaningful when the power source bits
	// report INTERNAL_BATTERY; ignored otherwise.
	BatteryLevelPercent float64

	// SerialNumber is the device serial embedded in the fused snapshot,
	// used as the fallback source when SerialNumberProvider is unavailable.
	SerialNumber string

	CapturedAt time.Time
}

// Fault is one currently active fault condition.
type Fault struct {
	Code  uint32
	Level uint32
}

// TrackItem is one tracked target as seen by the radar's tracker, the input
// to the DetectionReport builder.
type TrackItem struct {
	ID uint64

	Longitude float64
	Latitude  float64
	Altitude  float64

	Azimuth   float64
	Elevation float64
	Range     float64

	// RadialVelocity is the closing speed along the line of sight.
	RadialVelocity float64
	// AbsoluteVelocity is the track's speed over ground.
	AbsoluteVelocity float64

	// Vx, Vy, Vz are the track's velocity components in the radar's local
	// NWU frame (north, west, up), converted to ENU by the adapter package.
	Vx, Vy, Vz float64
	// VxVariance etc. back the per-component velocity error estimate.
	VxVariance, VyVariance, VzVariance float64

	RCS float64

	// ExistingProb/ClassifyProb are percentages in [0,100].
	ExistingProb float64
	ClassifyProb float64

	// Classification is the raw taxonomy code (see adapter.Classify).
	Classification uint32

	// MotionType drives the behaviour fallback (see adapter.Behaviour).
	MotionType uint32

	// TwsTasFlag: 0 => "TWS", else "TAS".
	TwsTasFlag uint32
	// StateType: 1 => "Confirmed", else "Tentative".
	StateType uint32

	Heading       float64
	TrackDuration float64
}

// ClutterStatus reflects the operator-configured clutter filter flags.
type ClutterStatus struct {
	FilterLevel         int
	WeatherClutterFilter bool
}

// Source is the thread-safe accessor for the latest fused radar state and
// live track stream, implemented by the host application.
type Source interface {
	// LatestState returns the most recently captured State. ok is false if
	// no snapshot has been captured yet.
	LatestState() (state State, ok bool)
	// Tracks returns the currently visible track items.
	Tracks() []TrackItem
}

// ConfigProvider returns the runtime flags that are not part of the DMM
// endpoint configuration but still feed into StatusReport.
type ConfigProvider interface {
	TrackEnabled() bool
	OTMMode() bool
	ClutterStatus() ClutterStatus
}

// SerialNumberProvider returns the device serial number from persistent
// storage. When it returns an error, the caller falls back to the serial
// number embedded in the latest radar State, if any.
type SerialNumberProvider interface {
	SerialNumber() (string, error)
}
