package chat

import (
	"github.com/RodrigoMarques16/Networks-18/internal/protocol"
)

const maxNickLen = 32

// handleCommand applies one parsed line against the session's state. It
// runs on the event loop, so a command's full effect, state transition
// plus broadcasts, is atomic from every other client's point of view.
func (s *Server) handleCommand(sess *Session, cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.CmdChat:
		s.chat(sess, cmd.Text)
	case protocol.CmdNick:
		s.reply(sess, s.setNick(sess, cmd.Name))
	case protocol.CmdJoin:
		s.reply(sess, s.join(sess, cmd.Room))
	case protocol.CmdLeave:
		s.reply(sess, s.leave(sess))
	case protocol.CmdPriv:
		s.reply(sess, s.private(sess, cmd.To, cmd.Text))
	case protocol.CmdBye:
		s.teardown(sess, true)
	}
}

// reply answers the issuing session with OK or ERROR.
func (s *Server) reply(sess *Session, err error) {
	if err != nil {
		s.logger.Debug("command rejected", "id", sess.ID, "reason", err)
		s.send(sess, protocol.Error())
		return
	}
	s.send(sess, protocol.OK())
}

// setNick is legal from any state. Renaming while in a room keeps the
// membership and tells the other members.
func (s *Server) setNick(sess *Session, name string) error {
	if name == "" || len(name) > maxNickLen {
		return ErrNickInvalid
	}
	if !s.clients.TryClaimName(sess, name) {
		return ErrNameInUse
	}
	old := sess.Nick
	sess.Nick = name
	if sess.State == StateUnregistered {
		sess.State = StateIdle
	}
	if sess.Room != "" && old != name {
		s.broadcast(s.rooms.Get(sess.Room), protocol.NewNick(old, name), sess.ID)
	}
	return nil
}

// join moves the session into room, leaving its current room first.
// Joining the room it is already in is rejected, not silently ignored.
func (s *Server) join(sess *Session, room string) error {
	if sess.Nick == "" {
		return ErrNotRegistered
	}
	if sess.Room == room {
		return ErrAlreadyInRoom
	}
	if sess.Room != "" {
		s.leaveRoom(sess)
	}
	rm := s.rooms.GetOrCreate(room)
	s.rooms.Add(rm, sess)
	s.broadcast(rm, protocol.Joined(sess.Nick), sess.ID)
	OpenRooms.Set(float64(s.rooms.Len()))
	return nil
}

func (s *Server) leave(sess *Session) error {
	if sess.Room == "" {
		return ErrNotInRoom
	}
	s.leaveRoom(sess)
	return nil
}

// leaveRoom removes the session from its current room and tells the
// remaining members.
func (s *Server) leaveRoom(sess *Session) {
	rm := s.rooms.Get(sess.Room)
	s.rooms.Remove(sess)
	if rm != nil {
		s.broadcast(rm, protocol.Left(sess.Nick), sess.ID)
	}
	OpenRooms.Set(float64(s.rooms.Len()))
}

// chat fans a room message out to every other member; the sender gets no
// echo. Outside a room chat is silently ignored.
func (s *Server) chat(sess *Session, text string) {
	if sess.State != StateInRoom {
		return
	}
	s.broadcast(s.rooms.Get(sess.Room), protocol.Chat(sess.Nick, text), sess.ID)
}

// private delivers a directed message, bypassing room membership. The OK
// reply doubles as the sender's confirmation.
func (s *Server) private(sess *Session, to, text string) error {
	if sess.Nick == "" {
		return ErrNotRegistered
	}
	if to == sess.Nick {
		return ErrSelfTarget
	}
	target := s.clients.LookupByName(to)
	if target == nil {
		return ErrUnknownUser
	}
	s.send(target, protocol.Chat(sess.Nick, text))
	return nil
}

// broadcast fans msg out across a room and disconnects any member whose
// queue overflowed. One slow member never blocks delivery to the rest.
func (s *Server) broadcast(rm *Room, msg protocol.Message, excludeID int64) {
	if rm == nil {
		return
	}
	for _, slow := range rm.Broadcast(msg, excludeID) {
		s.logger.Warn("outbound queue full, dropping session", "id", slow.ID)
		s.teardown(slow, false)
	}
}

// send queues one frame for a single session, disconnecting it when the
// queue is full.
func (s *Server) send(sess *Session, msg protocol.Message) {
	if !sess.enqueue(msg) {
		s.logger.Warn("outbound queue full, dropping session", "id", sess.ID)
		s.teardown(sess, false)
	}
}
