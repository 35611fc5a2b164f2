package sapient

import (
	"io"
	"time"

	"github.com/skyfend/sapient-client/config"
	"github.com/skyfend/sapient-client/radar"
	"github.com/skyfend/sapient-client/wire"
)

// ClientOptions configures a Client. Zero-value duration/count fields are
// replaced with the defaults documented below by applyDefaults.
type ClientOptions struct {
	// Endpoint is the DMM address; normally produced by config.Load.
	Endpoint config.Endpoint

	// NodeIDPath is where the persistent node id is cached; configurable
	// rather than hardcoded.
	NodeIDPath string

	// ObjectIDCacheSize bounds the track-id -> object-id LRU. <= 0 uses
	// build.defaultObjectIDCacheSize.
	ObjectIDCacheSize int

	// RadarSource, RadarConfig and SerialNumberProvider are the external
	// collaborators a host application supplies. RadarSource and
	// RadarConfig are required; SerialNumberProvider is optional (falls
	// back to the serial embedded in the latest radar.State).
	RadarSource          radar.Source
	RadarConfig          radar.ConfigProvider
	SerialNumberProvider radar.SerialNumberProvider

	// DeviceFirmwareVersion is a free-form version string parsed for the
	// Registration message's software_version field.
	DeviceFirmwareVersion string

	// Codec controls wire (de)serialization; defaults to wire.DefaultCodec{}.
	Codec wire.Codec

	// LogLevel is a zerolog level name ("debug", "info", ...); default "info".
	LogLevel string
	// LogWriter overrides the default stderr console writer.
	LogWriter io.Writer

	ConnectTimeout                 time.Duration
	RegistrationAckTimeout         time.Duration
	DisconnectReregisterThreshold time.Duration
	ReconnectInterval              time.Duration
	InitialAttachAttempts          int
	InitialAttachSpacing           time.Duration
	RecvTimeout                    time.Duration
	StatusReportInterval           time.Duration
	WorkerJoinTimeout              time.Duration
}

func (o *ClientOptions) applyDefaults() {
	if o.NodeIDPath == "" {
		o.NodeIDPath = "./sapient_node_id.txt"
	}
	if o.Codec == nil {
		o.Codec = wire.DefaultCodec{}
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.RegistrationAckTimeout <= 0 {
		o.RegistrationAckTimeout = 30 * time.Second
	}
	if o.DisconnectReregisterThreshold <= 0 {
		o.DisconnectReregisterThreshold = 120 * time.Second
	}
	if o.ReconnectInterval <= 0 {
		o.ReconnectInterval = 10 * time.Second
	}
	if o.InitialAttachAttempts <= 0 {
		o.InitialAttachAttempts = 3
	}
	if o.InitialAttachSpacing <= 0 {
		o.InitialAttachSpacing = 5 * time.Second
	}
	if o.RecvTimeout <= 0 {
		o.RecvTimeout = 1 * time.Second
	}
	if o.StatusReportInterval <= 0 {
		o.StatusReportInterval = 5 * time.Second
	}
	if o.WorkerJoinTimeout <= 0 {
		o.WorkerJoinTimeout = 2 * time.Second
	}
}
