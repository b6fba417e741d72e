package chat

// ClientRegistry owns the set of live sessions and the nickname claims.
// It holds its own id counter; ids are process-unique and never reused
// while the process runs. Only the event loop touches it, so no locking.
type ClientRegistry struct {
	sessions map[int64]*Session
	names    map[string]int64
	nextID   int64
}

func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		sessions: make(map[int64]*Session),
		names:    make(map[string]int64),
	}
}

// Register assigns the session its id and adds it to the registry.
func (r *ClientRegistry) Register(s *Session) {
	r.nextID++
	s.ID = r.nextID
	r.sessions[s.ID] = s
}

// Unregister removes the session and releases its nickname.
func (r *ClientRegistry) Unregister(s *Session) {
	delete(r.sessions, s.ID)
	if s.Nick != "" && r.names[s.Nick] == s.ID {
		delete(r.names, s.Nick)
	}
}

func (r *ClientRegistry) Lookup(id int64) *Session {
	return r.sessions[id]
}

func (r *ClientRegistry) LookupByName(name string) *Session {
	id, ok := r.names[name]
	if !ok {
		return nil
	}
	return r.sessions[id]
}

// TryClaimName atomically moves the session's nickname claim to name.
// It fails iff a different live session already holds the name; a
// session re-claiming its own name succeeds as a no-op.
func (r *ClientRegistry) TryClaimName(s *Session, name string) bool {
	if id, taken := r.names[name]; taken {
		return id == s.ID
	}
	if s.Nick != "" {
		delete(r.names, s.Nick)
	}
	r.names[name] = s.ID
	return true
}

func (r *ClientRegistry) Len() int { return len(r.sessions) }
