package build

import (
	"math"

	"github.com/skyfend/sapient-client/adapter"
	"github.com/skyfend/sapient-client/radar"
	"github.com/skyfend/sapient-client/wire"
)

const (
	azimuthGateDeg   = 60
	elevationGateDeg = 40
	maxRangeM        = 6000
	minAltitudeM     = -10000
	maxAltitudeM     = 10000

	fixedAzElErrorDeg = 1
	fixedRangeErrorM  = 10

	rcsMin = -100.0
	rcsMax = 100.0

	radialVelocityMin = -50.0
	radialVelocityMax = 50.0
	absVelocityMin    = 0.0
	absVelocityMax    = 100.0

	headingMin       = 0.0
	headingMax       = 360.0
	trackDurationMin = 0.0
	trackDurationMax = 10000.0
)

// DetectionBuilder pairs a Builder with the ObjectID table tracks resolve
// through, so object ids stay stable for the life of a track.
type DetectionBuilder struct {
	*Builder
	objectIDs *ObjectIDTable
}

// NewDetectionBuilder wraps b with a bounded ObjectID table. capacity <= 0
// uses the default size.
func NewDetectionBuilder(b *Builder, capacity int) *DetectionBuilder {
	return &DetectionBuilder{Builder: b, objectIDs: NewObjectIDTable(capacity)}
}

// BuildDetectionReport converts one radar.TrackItem into a DetectionReport
// wrapper.
func (db *DetectionBuilder) BuildDetectionReport(track radar.TrackItem, radarHeading float64, activeTaskID string) (*wire.Wrapper, error) {
	report := &wire.DetectionReport{
		ReportID:            db.ulids.New(),
		ObjectID:            db.objectIDs.Resolve(track.ID),
		TaskID:              activeTaskID,
		State:               "detected",
		ID:                  "track_" + formatUint64(track.ID),
		DetectionConfidence: clamp01(track.ExistingProb / 100),
	}

	if track.Longitude != 0 || track.Latitude != 0 {
		alt := track.Altitude
		if alt < minAltitudeM {
			alt = minAltitudeM
		} else if alt > maxAltitudeM {
			alt = maxAltitudeM
		}
		report.Location = &wire.Location{
			Longitude: track.Longitude,
			Latitude:  track.Latitude,
			Altitude:  alt,
			Datum:     "WGS84",
		}
	} else {
		rb := &wire.RangeBearing{
			AzimuthErr:   fixedAzElErrorDeg,
			ElevationErr: fixedAzElErrorDeg,
			RangeErr:     fixedRangeErrorM,
		}
		if math.Abs(track.Azimuth) <= azimuthGateDeg {
			rb.Azimuth = adapter.NormalizeAzimuth(track.Azimuth + radarHeading)
		}
		if math.Abs(track.Elevation) <= elevationGateDeg {
			rb.Elevation = track.Elevation
		}
		if track.Range > 0 && track.Range <= maxRangeM {
			rb.Range = track.Range
		}
		report.RangeBearing = rb
	}

	report.ObjectInfo = detectionObjectInfo(track)

	cls := adapter.Classify(track.Classification, track.ClassifyProb)
	report.Classification = &wire.Classification{
		Type:       cls.Type,
		SubClass:   cls.SubClass,
		Confidence: cls.Confidence,
	}

	report.Behaviour = adapter.Behaviour(track.MotionType, track.AbsoluteVelocity, track.RadialVelocity, track.Vx, track.Vy, track.Vz)

	if track.Vx != 0 || track.Vy != 0 || track.Vz != 0 {
		v := adapter.NWUToENU(track.Vx, track.Vy, track.Vz, track.VxVariance, track.VyVariance, track.VzVariance)
		report.Velocity = &wire.Velocity{
			East: v.East, North: v.North, Up: v.Up,
			EastErr: v.EastErr, NorthErr: v.NorthErr, UpErr: v.UpErr,
		}
	}

	return db.wrap(report)
}

func detectionObjectInfo(track radar.TrackItem) []wire.ObjectInfo {
	var info []wire.ObjectInfo
	add := func(typ, val string) {
		info = append(info, wire.ObjectInfo{Type: typ, Value: val})
	}

	if track.Range > 0 && track.Range <= maxRangeM {
		add("range", ftoa(track.Range))
	}
	if math.Abs(track.Azimuth) <= azimuthGateDeg {
		add("azimuth", ftoa(track.Azimuth))
	}
	if math.Abs(track.Elevation) <= elevationGateDeg {
		add("elevation", ftoa(track.Elevation))
	}
	if track.RadialVelocity >= radialVelocityMin && track.RadialVelocity <= radialVelocityMax {
		add("radial_velocity", ftoa(track.RadialVelocity))
	}
	if track.AbsoluteVelocity >= absVelocityMin && track.AbsoluteVelocity <= absVelocityMax {
		add("absVel", ftoa(track.AbsoluteVelocity))
	}
	if track.RCS >= rcsMin && track.RCS <= rcsMax && !math.IsInf(track.RCS, 0) && !math.IsNaN(track.RCS) {
		add("RCS", ftoa(track.RCS))
	}

	trackType := "TWS"
	if track.TwsTasFlag != 0 {
		trackType = "TAS"
	}
	add("trackType", trackType)

	trackState := "Tentative"
	if track.StateType == 1 {
		trackState = "Confirmed"
	}
	add("trackState", trackState)

	if track.Heading >= headingMin && track.Heading <= headingMax {
		add("heading", ftoa(track.Heading))
	}
	if track.TrackDuration >= trackDurationMin && track.TrackDuration <= trackDurationMax {
		add("trackDuration", ftoa(track.TrackDuration))
	}

	return info
}
