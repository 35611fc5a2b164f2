package sapient

import "time"

// statusWorker is the periodic status-report loop: it sleeps in 1s ticks
// up to StatusReportInterval, skips emission while the
// connection has been down for less than DisconnectReregisterThreshold,
// and clears the disconnect timer after the first post-threshold emission.
func (c *Client) statusWorker() {
	defer c.wg.Done()

	elapsed := time.Duration(0)
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-tick.C:
		}

		elapsed += time.Second
		if elapsed < c.opts.StatusReportInterval {
			continue
		}
		elapsed = 0

		d := c.disconnectElapsed()
		if d >= 0 && d < c.opts.DisconnectReregisterThreshold {
			continue
		}

		if err := c.sendStatusReport(); err != nil {
			c.log.Warn().Err(err).Msg("status report failed")
			continue
		}
		if d >= c.opts.DisconnectReregisterThreshold {
			c.clearDisconnectTimer()
		}
	}
}
