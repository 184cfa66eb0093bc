package app

import (
	"encoding/json"
	"fmt"

	"github.com/chandrasingh0914/mersiv-backend/internal/domain"
)

// SessionID identifies one live socket connection. Opaque, minted by the
// transport adapter.
type SessionID string

// Inbound event names. Anything else is logged and ignored.
const (
	EventJoinStore      = "join-store"
	EventLeaveStore     = "leave-store"
	EventPositionUpdate = "model-position-update"
)

// Outbound event names.
const (
	EventUserCount       = "user_count"
	EventStoreFull       = "store_full"
	EventMaxUsers        = "max_users"
	EventPositionChanged = "model-position-changed"
)

// Envelope frames every message on the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RoomRef is the join/leave payload. Clients send either a bare store id
// string or an object carrying a store_id / storeId field.
type RoomRef struct {
	StoreID string
}

func (r *RoomRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.StoreID = s
		return nil
	}
	var obj struct {
		StoreID string `json:"store_id"`
		Camel   string `json:"storeId"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.StoreID = obj.StoreID
	if r.StoreID == "" {
		r.StoreID = obj.Camel
	}
	return nil
}

// PositionEdit is the model-position-update payload. Position is a pointer so
// a missing field is distinguishable from the origin.
type PositionEdit struct {
	StoreID  string                `json:"storeId"`
	ModelID  string                `json:"modelId"`
	Position *domain.ModelPosition `json:"position"`
}

// Valid reports whether the edit carries everything a rebroadcast needs.
func (e PositionEdit) Valid() bool {
	return e.StoreID != "" && e.ModelID != "" && e.Position != nil
}

type userCountPayload struct {
	Count int `json:"count"`
}

type storeFullPayload struct {
	Message string `json:"message"`
}

type maxUsersPayload struct {
	Max int `json:"max"`
}

type positionChangedPayload struct {
	ModelID  string               `json:"modelId"`
	Position domain.ModelPosition `json:"position"`
}

func storeFullMessage(limit int) string {
	return fmt.Sprintf("Store is full. Maximum %d users allowed.", limit)
}

func marshalEvent(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}
