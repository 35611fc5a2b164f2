// Package sapient implements a client for the SAPIENT BSI Flex 335 v2.0
// sensor-interoperability protocol: framed TCP transport, the
// connection/registration state machine, periodic status reporting,
// detection-report streaming and task handling.
package sapient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfend/sapient-client/build"
	"github.com/skyfend/sapient-client/identity"
	"github.com/skyfend/sapient-client/radar"
	"github.com/skyfend/sapient-client/wire"
)

// Client is a long-lived SAPIENT DMM connection. Create one with New,
// release it with Close. A Client is safe for concurrent use by multiple
// goroutines.
type Client struct {
	opts ClientOptions
	log  zerolog.Logger

	builder          *build.Builder
	statusBuilder    *build.StatusBuilder
	detectionBuilder *build.DetectionBuilder

	// connMu guards conn and is held across the brief window of publishing
	// a freshly dialed connection.
	connMu sync.Mutex
	conn   *net.TCPConn

	// sendMu serializes every frame write across the lifetime of the
	// client, regardless of which connection is current ("send_mutex").
	sendMu sync.Mutex

	// regMu guards registration timing and the disconnect timer
	// ("registration_mutex").
	regMu                sync.Mutex
	state                connState
	registrationSentTime time.Time
	awaitingAck          bool
	disconnectTime       time.Time
	hasDisconnectTime    bool
	ackTimeoutForced     bool

	// taskMu guards the single active task id ("task_id_mutex").
	taskMu       sync.Mutex
	activeTaskID string

	online *event

	stopCh      chan struct{}
	stopOnce    sync.Once
	workersOnce sync.Once
	wg          sync.WaitGroup

	reconnecting uint32
}

// New validates opts, resolves identity, and attempts the initial attach.
// It does not return an error solely because the DMM is currently
// unreachable: after exhausting the initial attempts it spawns a
// background reconnect loop and returns successfully, since the peer
// being briefly down is not a configuration failure.
func New(opts ClientOptions) (*Client, error) {
	if !opts.Endpoint.Enabled {
		return nil, ErrNotConfigured
	}
	if err := opts.Endpoint.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	if opts.RadarSource == nil || opts.RadarConfig == nil {
		return nil, fmt.Errorf("%w: RadarSource and RadarConfig are required", ErrNotConfigured)
	}
	opts.applyDefaults()

	nodeID := identity.NewNodeID(opts.NodeIDPath)
	builder := build.NewBuilder(nodeID)

	c := &Client{
		opts:             opts,
		log:              newLogger(&opts),
		builder:          builder,
		statusBuilder:    build.NewStatusBuilder(builder),
		detectionBuilder: build.NewDetectionBuilder(builder, opts.ObjectIDCacheSize),
		online:           newEvent(),
		stopCh:           make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout*time.Duration(opts.InitialAttachAttempts)+opts.InitialAttachSpacing*time.Duration(opts.InitialAttachAttempts))
	defer cancel()

	for attempt := 1; attempt <= opts.InitialAttachAttempts; attempt++ {
		if err := c.connectOnce(ctx, true); err == nil {
			c.startWorkers()
			return c, nil
		} else {
			c.log.Warn().Err(err).Int("attempt", attempt).Msg("initial attach failed")
		}
		if attempt < opts.InitialAttachAttempts {
			time.Sleep(opts.InitialAttachSpacing)
		}
	}

	c.log.Warn().Msg("initial attach exhausted, starting background reconnect")
	c.wg.Add(1)
	go c.backgroundReconnect()
	return c, nil
}

// Close shuts the client down: signals every worker, waits up to
// WorkerJoinTimeout for them to exit, and closes the socket. Close is
// idempotent.
func (c *Client) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.opts.WorkerJoinTimeout):
		c.log.Warn().Msg("worker shutdown timed out")
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

// WaitOnline blocks until the connection reaches the Online state or
// timeout elapses, returning whether it was observed online.
func (c *Client) WaitOnline(timeout time.Duration) bool {
	return c.online.WaitFor(timeout)
}

// Shipper methods: SendDetectionReport, SendAlert are the outward-facing
// APIs a host application's radar/track pipeline calls.

// SendDetectionReport builds and sends a DetectionReport for track.
func (c *Client) SendDetectionReport(track radar.TrackItem) error {
	heading := 0.0
	if state, ok := c.opts.RadarSource.LatestState(); ok {
		heading = state.Heading
	}
	w, err := c.detectionBuilder.BuildDetectionReport(track, heading, c.getActiveTaskID())
	if err != nil {
		return err
	}
	return c.send(w)
}

// SendAlert builds and sends an Alert.
func (c *Client) SendAlert(description, alertType, status string) error {
	w, err := c.builder.BuildAlert(description, alertType, status)
	if err != nil {
		return err
	}
	return c.send(w)
}

// sendStatusReport builds and sends a StatusReport from the current radar
// state, used directly by the status worker and by the receive worker's
// "immediate status after ack" rule.
func (c *Client) sendStatusReport() error {
	state, ok := c.opts.RadarSource.LatestState()
	if !ok {
		return fmt.Errorf("%w: no radar state captured yet", ErrProtocol)
	}
	w, err := c.statusBuilder.BuildStatusReport(state, c.opts.RadarConfig, c.getActiveTaskID())
	if err != nil {
		return err
	}
	return c.send(w)
}

// send marshals and writes w as one frame on the current connection,
// serialized by sendMu. A send failure is treated as a connection loss.
func (c *Client) send(w *wire.Wrapper) error {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: not connected", ErrSendFailed)
	}

	c.sendMu.Lock()
	_, err := sendFrameOn(conn, c.opts.Codec, w)
	c.sendMu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Msg("send failed, requesting reconnect")
		go c.triggerReconnect(false)
	}
	return err
}

func (c *Client) getActiveTaskID() string {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()
	return c.activeTaskID
}

func (c *Client) setActiveTaskID(id string) {
	c.taskMu.Lock()
	c.activeTaskID = id
	c.taskMu.Unlock()
}

func (c *Client) clearActiveTaskID() {
	c.setActiveTaskID("")
}

func (c *Client) deviceInfo() build.DeviceInfo {
	serial := ""
	if c.opts.SerialNumberProvider != nil {
		if sn, err := c.opts.SerialNumberProvider.SerialNumber(); err == nil {
			serial = sn
		}
	}
	if serial == "" {
		if state, ok := c.opts.RadarSource.LatestState(); ok {
			serial = state.SerialNumber
		}
	}
	return build.DeviceInfo{
		SerialNumber:   serial,
		RawFirmwareVer: c.opts.DeviceFirmwareVersion,
	}
}
