package build

import (
	"testing"

	"github.com/skyfend/sapient-client/radar"
	"github.com/stretchr/testify/require"
)

type fakeConfig struct {
	trackEnabled bool
	otmMode      bool
	clutter      radar.ClutterStatus
}

func (f fakeConfig) TrackEnabled() bool               { return f.trackEnabled }
func (f fakeConfig) OTMMode() bool                    { return f.otmMode }
func (f fakeConfig) ClutterStatus() radar.ClutterStatus { return f.clutter }

func baseState() radar.State {
	return radar.State{
		SysStatus:     4,
		StatusBits:    0,
		Longitude:     1.0,
		Latitude:      2.0,
		Altitude:      3.0,
		Heading:       10,
		Pitch:         1,
		Roll:          0,
		AziScanCenter: 0,
		EleScanCenter: 0,
		ScanRadius:    1000,
		TemperatureC:  40,
	}
}

func TestBuildStatusReportFirstCallIsInfoNew(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	w, err := sb.BuildStatusReport(baseState(), cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INFO_NEW", w.StatusReport.Info)
}

// TestBuildStatusReportChangeDetection: a second report built from an
// unchanged snapshot (within epsilon) reports
// INFO_UNCHANGED, while a report built after a field moves beyond its
// epsilon reports INFO_NEW again.
func TestBuildStatusReportChangeDetection(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	_, err := sb.BuildStatusReport(baseState(), cfg, "")
	require.NoError(t, err)

	unchanged := baseState()
	unchanged.Longitude += 0.000001 // well within positionEpsilon
	w2, err := sb.BuildStatusReport(unchanged, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INFO_UNCHANGED", w2.StatusReport.Info)

	changed := baseState()
	changed.Longitude += 1.0 // far beyond positionEpsilon
	w3, err := sb.BuildStatusReport(changed, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INFO_NEW", w3.StatusReport.Info)
}

// TestBuildStatusReportAltitudeUsesPositionEpsilon: altitude drift is held
// to the same epsilon as longitude/latitude, not a coarser one.
func TestBuildStatusReportAltitudeUsesPositionEpsilon(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	_, err := sb.BuildStatusReport(baseState(), cfg, "")
	require.NoError(t, err)

	withinEpsilon := baseState()
	withinEpsilon.Altitude += 0.000001 // well within positionEpsilon
	w2, err := sb.BuildStatusReport(withinEpsilon, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INFO_UNCHANGED", w2.StatusReport.Info)

	beyondEpsilon := baseState()
	beyondEpsilon.Altitude += 1.0 // far beyond positionEpsilon
	w3, err := sb.BuildStatusReport(beyondEpsilon, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INFO_NEW", w3.StatusReport.Info)
}

func TestBuildStatusReportPowerBlockFromBatteryBits(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	state := baseState()
	state.StatusBits = 0x1 << 9 // power source bits = internal battery
	state.BatteryLevelPercent = 15

	w, err := sb.BuildStatusReport(state, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "INTERNAL_BATTERY", w.StatusReport.Power.Source)
	require.Equal(t, "FAULT", w.StatusReport.Power.Status)
	require.Equal(t, 15.0, w.StatusReport.Power.Level)
}

func TestBuildStatusReportIncludesFaultEntries(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	state := baseState()
	state.Faults = []radar.Fault{{Code: 7, Level: 0x03}}

	w, err := sb.BuildStatusReport(state, cfg, "")
	require.NoError(t, err)

	var found bool
	for _, e := range w.StatusReport.StatusEntries {
		if e.Type == "fault" {
			found = true
			require.Equal(t, "ERROR", e.Level)
			require.Equal(t, "7", e.Value)
		}
	}
	require.True(t, found, "expected a fault status entry")
	require.Equal(t, "ERROR", w.StatusReport.System)
}

func TestBuildStatusReportCarriesActiveTaskID(t *testing.T) {
	b := newTestBuilder(t)
	sb := NewStatusBuilder(b)
	cfg := fakeConfig{}

	w, err := sb.BuildStatusReport(baseState(), cfg, "task-77")
	require.NoError(t, err)
	require.Equal(t, "task-77", w.StatusReport.ActiveTaskID)
}
