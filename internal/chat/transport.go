package chat

import (
	"bufio"
	"net"
)

// transport abstracts one client connection so the TCP listener and the
// websocket ingress feed the same codec and event loop.
type transport interface {
	// Read returns the next chunk of raw bytes. The returned slice is
	// only valid until the next call; callers must consume it first.
	Read() ([]byte, error)
	// WriteLine writes one encoded, newline-terminated frame.
	WriteLine(line []byte) error
	Close() error
	RemoteAddr() string
}

type tcpTransport struct {
	conn net.Conn
	w    *bufio.Writer
	buf  [4096]byte
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{conn: conn, w: bufio.NewWriter(conn)}
}

func (t *tcpTransport) Read() ([]byte, error) {
	n, err := t.conn.Read(t.buf[:])
	if err != nil {
		return nil, err
	}
	return t.buf[:n], nil
}

func (t *tcpTransport) WriteLine(line []byte) error {
	if _, err := t.w.Write(line); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *tcpTransport) Close() error { return t.conn.Close() }

func (t *tcpTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
