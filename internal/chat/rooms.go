package chat

import (
	"github.com/RodrigoMarques16/Networks-18/internal/protocol"
)

// Room is a named broadcast group. Membership is keyed by session id;
// a session is in at most one room at a time.
type Room struct {
	id      int64
	name    string
	members map[int64]*Session
}

func (rm *Room) ID() int64    { return rm.id }
func (rm *Room) Name() string { return rm.name }
func (rm *Room) Len() int     { return len(rm.members) }

// Broadcast delivers msg to every member except excludeID. One member's
// full queue must not starve the rest, so delivery failures are
// collected and returned for the caller to disconnect.
func (rm *Room) Broadcast(msg protocol.Message, excludeID int64) []*Session {
	var slow []*Session
	for id, member := range rm.members {
		if id == excludeID {
			continue
		}
		if !member.enqueue(msg) {
			slow = append(slow, member)
		}
	}
	return slow
}

// RoomRegistry owns every live room and the room id counter. A room is
// created lazily on first join and dropped as soon as it empties;
// rejoining the name later is indistinguishable from creating it fresh.
type RoomRegistry struct {
	rooms  map[string]*Room
	nextID int64
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

func (r *RoomRegistry) Get(name string) *Room {
	return r.rooms[name]
}

// GetOrCreate returns the room named name, constructing it if absent.
func (r *RoomRegistry) GetOrCreate(name string) *Room {
	if rm, ok := r.rooms[name]; ok {
		return rm
	}
	r.nextID++
	rm := &Room{id: r.nextID, name: name, members: make(map[int64]*Session)}
	r.rooms[name] = rm
	return rm
}

// Add puts the session in the room and updates the session's view.
func (r *RoomRegistry) Add(rm *Room, s *Session) {
	rm.members[s.ID] = s
	s.Room = rm.name
	s.State = StateInRoom
}

// Remove takes the session out of its current room, if any, and deletes
// the room once its last member leaves.
func (r *RoomRegistry) Remove(s *Session) {
	if s.Room == "" {
		return
	}
	if rm, ok := r.rooms[s.Room]; ok {
		delete(rm.members, s.ID)
		if len(rm.members) == 0 {
			delete(r.rooms, rm.name)
		}
	}
	s.Room = ""
	if s.State == StateInRoom {
		s.State = StateIdle
	}
}

func (r *RoomRegistry) Len() int { return len(r.rooms) }
