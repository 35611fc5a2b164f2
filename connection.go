package sapient

import (
	"context"
	"sync/atomic"
	"time"
)

// connectOnce dials a fresh connection and, when forceRegister is true or
// the current outage has lasted at least DisconnectReregisterThreshold,
// writes a Registration frame through it before publishing it as the client's
// current connection. Keeping the new connection private until the
// registration write completes, rather than publishing first and racing
// other senders, means sendMu is held for that write exactly like any
// other frame, because no other goroutine can reach this connection yet.
func (c *Client) connectOnce(ctx context.Context, forceRegister bool) error {
	conn, err := dialTCP(ctx, c.opts.Endpoint.Addr(), c.opts.ConnectTimeout)
	if err != nil {
		return err
	}

	register := forceRegister || c.disconnectElapsed() >= c.opts.DisconnectReregisterThreshold

	if register {
		w, err := c.builder.BuildRegistration(c.deviceInfo())
		if err != nil {
			conn.Close()
			return err
		}
		c.sendMu.Lock()
		_, err = sendFrameOn(conn, c.opts.Codec, w)
		c.sendMu.Unlock()
		if err != nil {
			conn.Close()
			return err
		}
	}

	c.connMu.Lock()
	old := c.conn
	c.conn = conn
	c.connMu.Unlock()
	if old != nil {
		old.Close()
	}

	c.regMu.Lock()
	if register {
		c.registrationSentTime = time.Now()
		c.awaitingAck = true
		c.state = stateAwaitingRegistrationAck
		c.ackTimeoutForced = false
	} else {
		c.awaitingAck = false
		c.state = stateOnline
	}
	c.regMu.Unlock()

	if !register {
		c.online.Set()
	}

	c.log.Info().Bool("registered", register).Msg("connected")
	return nil
}

// disconnectElapsed returns how long the connection has been down, or a
// negative duration if no disconnect is currently recorded.
func (c *Client) disconnectElapsed() time.Duration {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	if !c.hasDisconnectTime {
		return -1
	}
	return time.Since(c.disconnectTime)
}

// markDisconnected records the earliest disconnect instant for this
// outage (never overwritten while already set) and transitions out of
// Online.
func (c *Client) markDisconnected() {
	c.regMu.Lock()
	if !c.hasDisconnectTime {
		c.disconnectTime = time.Now()
		c.hasDisconnectTime = true
	}
	c.state = stateReconnecting
	c.regMu.Unlock()
	c.online.Clear()
}

// clearDisconnectTimer is called by the status worker after it emits a
// report beyond the re-registration threshold.
func (c *Client) clearDisconnectTimer() {
	c.regMu.Lock()
	c.hasDisconnectTime = false
	c.regMu.Unlock()
}

// checkRegistrationAckTimeout enforces the 30s registration-ack deadline:
// if no ack has arrived in time, force-close and reconnect with
// unconditional re-registration.
func (c *Client) checkRegistrationAckTimeout() {
	c.regMu.Lock()
	timedOut := c.awaitingAck && time.Since(c.registrationSentTime) >= c.opts.RegistrationAckTimeout
	if timedOut {
		c.ackTimeoutForced = true
	}
	c.regMu.Unlock()

	if timedOut {
		c.log.Warn().Msg("registration ack timeout, forcing reconnect")
		c.markDisconnected()
		c.triggerReconnect(true)
	}
}

// onRegistrationAck transitions the client to Online on a received ack and
// triggers the immediate follow-up status report.
func (c *Client) onRegistrationAck() {
	c.regMu.Lock()
	c.awaitingAck = false
	c.state = stateOnline
	c.regMu.Unlock()
	c.online.Set()

	if err := c.sendStatusReport(); err != nil {
		c.log.Warn().Err(err).Msg("initial status report after registration ack failed")
	}
}

// triggerReconnect serializes concurrent reconnect requests with an atomic
// guard and retries connectOnce at ReconnectInterval until it succeeds or
// the client is shut down.
func (c *Client) triggerReconnect(forceRegister bool) {
	if !atomic.CompareAndSwapUint32(&c.reconnecting, 0, 1) {
		return
	}
	defer atomic.StoreUint32(&c.reconnecting, 0)

	c.markDisconnected()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.opts.ConnectTimeout)
		err := c.connectOnce(ctx, forceRegister)
		cancel()
		if err == nil {
			return
		}
		c.log.Warn().Err(err).Msg("reconnect attempt failed")

		select {
		case <-c.stopCh:
			return
		case <-time.After(c.opts.ReconnectInterval):
		}
	}
}

// backgroundReconnect is spawned once from New when every initial attach
// attempt failed. It differs from triggerReconnect only in that it must
// start the workers once a connection is finally established, since no
// workers are running yet.
func (c *Client) backgroundReconnect() {
	defer c.wg.Done()
	c.triggerReconnect(true)
	select {
	case <-c.stopCh:
		return
	default:
	}
	c.connMu.Lock()
	connected := c.conn != nil
	c.connMu.Unlock()
	if connected {
		c.startWorkers()
	}
}

// startWorkers launches the receive and status workers exactly once for
// the lifetime of the client.
func (c *Client) startWorkers() {
	c.workersOnce.Do(func() {
		c.wg.Add(2)
		go c.receiveWorker()
		go c.statusWorker()
	})
}
