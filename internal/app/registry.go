package app

// Registry is the room membership state: a forward map store → member set
// and a reverse map session → store. It is not safe for concurrent use on
// its own; the Hub serializes every access behind one mutex.
//
// Invariants kept here:
//   - a store key exists iff its member set is non-empty
//   - forward and reverse maps always agree
//   - no member set grows past limit
type Registry struct {
	limit   int
	rooms   map[string]map[SessionID]struct{}
	current map[SessionID]string
}

func NewRegistry(limit int) *Registry {
	return &Registry{
		limit:   limit,
		rooms:   make(map[string]map[SessionID]struct{}),
		current: make(map[SessionID]string),
	}
}

// Limit returns the process-wide per-store member cap.
func (r *Registry) Limit() int { return r.limit }

// AddMember admits sid into storeID, creating the store entry on first join.
// Returns false iff the store is at capacity and sid is not already a member.
// Re-adding an existing member is a no-op reported as success.
func (r *Registry) AddMember(storeID string, sid SessionID) bool {
	members, existed := r.rooms[storeID]
	if !existed {
		members = make(map[SessionID]struct{})
	}
	if _, in := members[sid]; in {
		return true
	}
	if len(members) >= r.limit {
		return false
	}
	members[sid] = struct{}{}
	r.rooms[storeID] = members
	r.current[sid] = storeID
	return true
}

// RemoveMember drops sid from storeID and clears the reverse mapping.
// removed=false means sid was not a member; emptied=true means the removal
// deleted the store entry.
func (r *Registry) RemoveMember(storeID string, sid SessionID) (removed, emptied bool) {
	members, ok := r.rooms[storeID]
	if !ok {
		return false, false
	}
	if _, in := members[sid]; !in {
		return false, false
	}
	delete(members, sid)
	delete(r.current, sid)
	if len(members) == 0 {
		delete(r.rooms, storeID)
		return true, true
	}
	return true, false
}

// MembersOf returns a snapshot of storeID's member set, nil for an unknown
// store.
func (r *Registry) MembersOf(storeID string) []SessionID {
	members, ok := r.rooms[storeID]
	if !ok {
		return nil
	}
	out := make([]SessionID, 0, len(members))
	for sid := range members {
		out = append(out, sid)
	}
	return out
}

// MemberCount returns storeID's current occupancy, zero for an unknown store.
func (r *Registry) MemberCount(storeID string) int {
	return len(r.rooms[storeID])
}

// RoomOf returns sid's current store affiliation, if any.
func (r *Registry) RoomOf(sid SessionID) (string, bool) {
	storeID, ok := r.current[sid]
	return storeID, ok
}

// RoomCount returns how many stores currently have members.
func (r *Registry) RoomCount() int {
	return len(r.rooms)
}
