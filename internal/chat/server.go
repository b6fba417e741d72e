package chat

import (
	"log/slog"
	"net"
	"time"

	"github.com/RodrigoMarques16/Networks-18/internal/protocol"
)

// Server owns the listener and the event loop. Exactly one goroutine,
// run, mutates sessions, rooms and registries; reader goroutines only
// produce events, writer goroutines only drain outbound queues. That
// serialization is what upholds the uniqueness and membership invariants
// without locks.
type Server struct {
	addr   string
	logger *slog.Logger

	events chan event
	stopCh chan struct{}
	doneCh chan struct{}

	listener net.Listener
	clients  *ClientRegistry
	rooms    *RoomRegistry
}

func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:    addr,
		logger:  logger,
		events:  make(chan event, 128),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		clients: NewClientRegistry(),
		rooms:   NewRoomRegistry(),
	}
}

// Start binds the listener and launches the event loop and accept loop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go s.run()
	go s.acceptLoop(ln)

	s.logger.Info("server started", "addr", ln.Addr().String())
	return nil
}

// Addr reports the bound listen address, or nil before Start. Useful
// when the configured address was ":0".
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener, halts the event loop and waits for it.
func (s *Server) Stop() {
	s.logger.Info("shutting down")
	if s.listener != nil {
		s.listener.Close()
	}
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("shutdown complete")
}

func (s *Server) run() {
	defer close(s.doneCh)
	for {
		select {
		case ev := <-s.events:
			start := time.Now()
			label := s.dispatch(ev)
			MessagesTotal.WithLabelValues(label).Inc()
			EventProcessingDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		case <-s.stopCh:
			return
		}
	}
}

// dispatch applies one event and names it for the metrics.
func (s *Server) dispatch(ev event) string {
	switch ev.typ {
	case evAttach:
		s.clients.Register(ev.sess)
		ConnectedClients.Set(float64(s.clients.Len()))
		s.logger.Info("client connected", "id", ev.sess.ID, "addr", ev.sess.tr.RemoteAddr())
		return "attach"
	case evDetach:
		s.teardown(ev.sess, false)
		return "detach"
	case evCommand:
		if ev.sess.closed {
			// lines decoded behind a /bye in the same read
			return "stale"
		}
		if ev.err != nil {
			s.send(ev.sess, protocol.Error())
			return "badcommand"
		}
		s.handleCommand(ev.sess, ev.cmd)
		return cmdLabel(ev.cmd.Kind)
	}
	return "unknown"
}

// teardown is the single exit path for a session: implicit leave,
// best-effort BYE when requested, registry cleanup, queue close. The
// reader goroutine's detach event arriving afterwards is a no-op.
func (s *Server) teardown(sess *Session, sendBye bool) {
	if sess.closed {
		return
	}
	if sess.Room != "" {
		s.leaveRoom(sess)
	}
	s.clients.Unregister(sess)
	if sendBye {
		sess.enqueue(protocol.Bye()) // best-effort
	}
	sess.closed = true
	close(sess.out)
	ConnectedClients.Set(float64(s.clients.Len()))
	s.logger.Info("client disconnected", "id", sess.ID, "nick", sess.Nick)
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			// listener closed during shutdown
			return
		}
		s.attach(newTCPTransport(conn))
	}
}

// attach hands a new connection to the engine: writer goroutine, attach
// event, then the reader loop. Shared by the TCP and websocket ingresses.
func (s *Server) attach(tr transport) {
	sess := &Session{tr: tr, out: make(chan []byte, outboundQueueSize)}
	startWriter(tr, sess.out)
	if !s.post(event{typ: evAttach, sess: sess}) {
		close(sess.out) // server stopping; the writer closes the transport
		return
	}
	go s.readLoop(sess)
}

// readLoop turns raw reads into ordered events. Any transport fault,
// orderly close included, detaches the session.
func (s *Server) readLoop(sess *Session) {
	var dec protocol.Decoder
	for {
		chunk, err := sess.tr.Read()
		if err != nil {
			s.post(event{typ: evDetach, sess: sess})
			return
		}
		lines, decErr := dec.Feed(chunk)
		for _, line := range lines {
			cmd, parseErr := protocol.Parse(line)
			if !s.post(event{typ: evCommand, sess: sess, cmd: cmd, err: parseErr}) {
				return
			}
		}
		if decErr != nil {
			// invalid encoding is unrecoverable for this connection
			s.logger.Warn("dropping connection", "addr", sess.tr.RemoteAddr(), "error", decErr)
			s.post(event{typ: evDetach, sess: sess})
			return
		}
	}
}

// post delivers an event unless the server is stopping.
func (s *Server) post(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.stopCh:
		return false
	}
}

func cmdLabel(k protocol.CmdKind) string {
	switch k {
	case protocol.CmdChat:
		return "chat"
	case protocol.CmdNick:
		return "nick"
	case protocol.CmdJoin:
		return "join"
	case protocol.CmdLeave:
		return "leave"
	case protocol.CmdBye:
		return "bye"
	case protocol.CmdPriv:
		return "priv"
	}
	return "unknown"
}
