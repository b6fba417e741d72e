package chat

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"
)

type testClient struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func dialTest(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn, r: bufio.NewReader(conn)}
}

func (c *testClient) write(raw string) {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(raw)); err != nil {
		c.t.Fatalf("write %q: %v", raw, err)
	}
}

func (c *testClient) expect(want string) {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := c.r.ReadString('\n')
	if err != nil {
		c.t.Fatalf("waiting for %q: %v", want, err)
	}
	if got := strings.TrimSuffix(line, "\n"); got != want {
		c.t.Fatalf("got %q, want %q", got, want)
	}
}

func TestServerOverTCP(t *testing.T) {
	srv := NewServer("127.0.0.1:0", nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)
	addr := srv.Addr().String()

	alice := dialTest(t, addr)
	bob := dialTest(t, addr)

	// A command split across two writes must still decode as one line.
	alice.write("/nick al")
	alice.write("ice\r\n")
	alice.expect("OK")

	bob.write("/nick alice\n")
	bob.expect("ERROR")
	bob.write("/nick bob\n")
	bob.expect("OK")

	alice.write("/join lobby\n")
	alice.expect("OK")
	bob.write("/join lobby\n")
	bob.expect("OK")
	alice.expect("JOINED bob")

	alice.write("hello\n")
	bob.expect("MESSAGE alice hello")

	bob.write("/priv alice psst\n")
	bob.expect("OK")
	alice.expect("MESSAGE bob psst")

	alice.write("/bye\n")
	alice.expect("BYE")
	bob.expect("LEFT alice")

	// Dropping the socket without /bye cleans up the same way. The
	// detach races this client, so retry until the name frees up.
	bob.conn.Close()
	carol := dialTest(t, addr)
	deadline := time.Now().Add(2 * time.Second)
	for {
		carol.write("/nick bob\n")
		carol.conn.SetReadDeadline(deadline)
		line, err := carol.r.ReadString('\n')
		if err != nil {
			t.Fatalf("reclaiming nick: %v", err)
		}
		if strings.TrimSuffix(line, "\n") == "OK" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("nick never released after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
