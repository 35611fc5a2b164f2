package sapient

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/skyfend/sapient-client/wire"
)

// dialTCP performs a non-blocking connect bounded by timeout (net.Dialer
// implements this natively) and applies the socket tuning this protocol
// requires: TCP_NODELAY on, keepalive with idle=10s/interval=5s/count=3.
func dialTCP(ctx context.Context, addr string, timeout time.Duration) (*net.TCPConn, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp4", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnectFailed, addr, err)
	}
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("%w: non-TCP connection to %s", ErrConnectFailed, addr)
	}
	if err := tc.SetNoDelay(true); err != nil {
		tc.Close()
		return nil, fmt.Errorf("%w: set nodelay: %v", ErrConnectFailed, err)
	}
	if err := tc.SetKeepAliveConfig(net.KeepAliveConfig{
		Enable:   true,
		Idle:     10 * time.Second,
		Interval: 5 * time.Second,
		Count:    3,
	}); err != nil {
		tc.Close()
		return nil, fmt.Errorf("%w: set keepalive: %v", ErrConnectFailed, err)
	}
	return tc, nil
}

// sendFrameOn marshals w with codec and writes it as one length-prefixed
// frame directly on conn. Callers are responsible for holding sendMu; this
// function exists so the reconnect path can write a Registration frame on
// a not-yet-published connection without acquiring sendMu twice: the
// connection becomes visible to other senders only once this write has
// completed.
func sendFrameOn(conn *net.TCPConn, codec wire.Codec, w *wire.Wrapper) ([]byte, error) {
	binary, _, err := codec.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	if err := wire.WriteFrame(conn, binary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return binary, nil
}

// recvFrameOn reads one frame from conn bounded by timeout.
func recvFrameOn(conn *net.TCPConn, timeout time.Duration) ([]byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("%w: set read deadline: %v", ErrRecvFailed, err)
	}
	body, err := wire.ReadFrame(conn)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecvFailed, err)
	}
	return body, nil
}
