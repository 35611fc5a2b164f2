package sapient

import (
	"errors"
	"time"

	"github.com/skyfend/sapient-client/wire"
)

const maxConsecutiveRecvErrors = 3

// receiveWorker is the single cooperative receive loop. It exits when
// stopCh is closed; any in-progress recv returns within
// RecvTimeout of that happening because every read is bounded.
func (c *Client) receiveWorker() {
	defer c.wg.Done()

	consecutiveErrors := 0

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		c.checkRegistrationAckTimeout()

		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()
		if conn == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		body, err := recvFrameOn(conn, c.opts.RecvTimeout)
		switch {
		case err == nil:
			consecutiveErrors = 0
			c.dispatch(body)

		case errors.Is(err, ErrTimeout):
			consecutiveErrors = 0

		default:
			consecutiveErrors++
			c.log.Warn().Err(err).Int("consecutive_errors", consecutiveErrors).Msg("recv error")
			if consecutiveErrors >= maxConsecutiveRecvErrors {
				consecutiveErrors = 0
				c.triggerReconnect(false)
				c.connMu.Lock()
				reconnected := c.conn != conn
				c.connMu.Unlock()
				if reconnected {
					continue
				}
				select {
				case <-c.stopCh:
					return
				case <-time.After(5 * time.Second):
				}
			} else {
				select {
				case <-c.stopCh:
					return
				case <-time.After(100 * time.Millisecond):
				}
			}
		}
	}
}

// dispatch decodes body as a Wrapper and routes it by content variant.
func (c *Client) dispatch(body []byte) {
	w, err := c.opts.Codec.Unmarshal(body)
	if err != nil {
		c.log.Warn().Err(err).Msg("malformed wrapper, discarding")
		return
	}

	switch content := w.Content().(type) {
	case *wire.Task:
		c.handleTask(content)

	case *wire.RegistrationAck:
		c.onRegistrationAck()

	case *wire.StatusReport:
		c.log.Info().Msg("received status report")

	case *wire.DetectionReport:
		c.log.Info().Msg("received detection report")

	case *wire.Alert:
		c.log.Info().Msg("received alert")

	default:
		c.log.Info().Msg("received unknown or empty wrapper, ignoring")
	}
}
