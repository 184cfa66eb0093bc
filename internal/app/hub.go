package app

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Pusher is the outbound half of one live connection. TrySend must never
// block; a full or closed connection returns an error and the frame is lost
// for that member only.
type Pusher interface {
	TrySend(data []byte) error
}

// Hub owns the live-connection set and the membership Registry. One mutex is
// the single serialization point for every join, leave, disconnect and relay,
// which makes the capacity check-then-admit and the remove-then-maybe-delete
// sequences atomic. Pushes happen while holding the lock: TrySend is
// non-blocking, so the member snapshot a broadcast sees is exactly the one
// the triggering mutation produced.
type Hub struct {
	mu    sync.Mutex
	reg   *Registry
	conns map[SessionID]Pusher
}

func NewHub(limit int) *Hub {
	return &Hub{
		reg:   NewRegistry(limit),
		conns: make(map[SessionID]Pusher),
	}
}

// Limit returns the per-store member cap.
func (h *Hub) Limit() int { return h.reg.Limit() }

// Connect registers a live connection with no store affiliation yet.
func (h *Hub) Connect(sid SessionID, p Pusher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[sid] = p
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("client connected")
}

// Disconnect clears every trace of sid: the live-connection entry and, via
// the reverse mapping, its room membership. A join for the same sid arriving
// after this is refused, so the registry never keeps a member the transport
// no longer has.
func (h *Hub) Disconnect(sid SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, sid)
	if storeID, ok := h.reg.RoomOf(sid); ok {
		h.leaveLocked(sid, storeID)
	}
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("client disconnected")
}

// Join admits sid into storeID. Rejoining the current store is a no-op that
// still refreshes the occupancy count; joining a different store implicitly
// leaves the previous one first. At capacity the caller alone gets a
// store_full notice and the registry is untouched.
func (h *Hub) Join(sid SessionID, storeID string) {
	if storeID == "" {
		log.Warn().Str("module", "app.hub").Str("sid", string(sid)).Msg("join without store id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, live := h.conns[sid]; !live {
		log.Warn().Str("module", "app.hub").Str("sid", string(sid)).Str("store", storeID).Msg("join from gone session")
		return
	}

	if cur, ok := h.reg.RoomOf(sid); ok && cur != storeID {
		// Leave the old store only once admission to the new one is certain;
		// a rejected switch must leave the registry untouched.
		if h.reg.MemberCount(storeID) >= h.reg.Limit() {
			h.sendLocked(sid, EventStoreFull, storeFullPayload{Message: storeFullMessage(h.reg.Limit())})
			log.Info().Str("module", "app.hub").Str("sid", string(sid)).Str("store", storeID).Int("limit", h.reg.Limit()).Msg("store full")
			return
		}
		h.leaveLocked(sid, cur)
		log.Info().Str("module", "app.hub").Str("sid", string(sid)).Str("from", cur).Str("to", storeID).Msg("switching store")
	}

	if !h.reg.AddMember(storeID, sid) {
		h.sendLocked(sid, EventStoreFull, storeFullPayload{Message: storeFullMessage(h.reg.Limit())})
		log.Info().Str("module", "app.hub").Str("sid", string(sid)).Str("store", storeID).Int("limit", h.reg.Limit()).Msg("store full")
		return
	}

	count := h.reg.MemberCount(storeID)
	h.broadcastLocked(storeID, EventUserCount, userCountPayload{Count: count}, "")
	h.sendLocked(sid, EventMaxUsers, maxUsersPayload{Max: h.reg.Limit()})
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Str("store", storeID).Int("count", count).Msg("joined store")
}

// Leave removes sid from storeID. Not a member: no-op. Last one out deletes
// the store entry with no broadcast; otherwise the remainder get a fresh
// occupancy count.
func (h *Hub) Leave(sid SessionID, storeID string) {
	if storeID == "" {
		log.Warn().Str("module", "app.hub").Str("sid", string(sid)).Msg("leave without store id")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.leaveLocked(sid, storeID) {
		log.Info().Str("module", "app.hub").Str("sid", string(sid)).Str("store", storeID).Msg("left store")
	}
}

// RelayEdit forwards a position edit to everyone in the store except the
// sender. Incomplete payloads are dropped with a log line only; membership of
// the sender and existence of the model are accepted as given.
func (h *Hub) RelayEdit(sid SessionID, edit PositionEdit) {
	if !edit.Valid() {
		log.Warn().Str("module", "app.hub").Str("sid", string(sid)).Msg("dropping incomplete position edit")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(edit.StoreID, EventPositionChanged, positionChangedPayload{
		ModelID:  edit.ModelID,
		Position: *edit.Position,
	}, sid)
	log.Debug().Str("module", "app.hub").Str("sid", string(sid)).Str("store", edit.StoreID).Str("model", edit.ModelID).Msg("relayed position edit")
}

// leaveLocked removes sid from storeID and notifies the remainder. Caller
// holds h.mu.
func (h *Hub) leaveLocked(sid SessionID, storeID string) bool {
	removed, emptied := h.reg.RemoveMember(storeID, sid)
	if !removed {
		return false
	}
	if !emptied {
		h.broadcastLocked(storeID, EventUserCount, userCountPayload{Count: h.reg.MemberCount(storeID)}, "")
	}
	return true
}

// broadcastLocked pushes one event to every member of storeID except skip.
// Caller holds h.mu. A member whose connection cannot take the frame is
// skipped, never waited on.
func (h *Hub) broadcastLocked(storeID, event string, data any, skip SessionID) {
	members := h.reg.MembersOf(storeID)
	if len(members) == 0 {
		return
	}
	frame, err := marshalEvent(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.hub").Str("event", event).Msg("marshal broadcast")
		return
	}
	for _, member := range members {
		if member == skip {
			continue
		}
		p, ok := h.conns[member]
		if !ok {
			continue
		}
		if err := p.TrySend(frame); err != nil {
			log.Debug().Err(err).Str("module", "app.hub").Str("sid", string(member)).Str("event", event).Msg("drop frame for member")
		}
	}
}

// sendLocked pushes one event to a single session. Caller holds h.mu.
func (h *Hub) sendLocked(sid SessionID, event string, data any) {
	p, ok := h.conns[sid]
	if !ok {
		return
	}
	frame, err := marshalEvent(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.hub").Str("event", event).Msg("marshal event")
		return
	}
	if err := p.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "app.hub").Str("sid", string(sid)).Str("event", event).Msg("drop frame")
	}
}
