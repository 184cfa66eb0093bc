package app

import (
	"encoding/json"
	"testing"

	"github.com/chandrasingh0914/mersiv-backend/internal/domain"
)

func TestRoomRefUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare string", `"s1"`, "s1"},
		{"snake object", `{"store_id":"s2"}`, "s2"},
		{"camel object", `{"storeId":"s3"}`, "s3"},
		{"snake wins over camel", `{"store_id":"s4","storeId":"s5"}`, "s4"},
		{"empty object", `{}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ref RoomRef
			if err := json.Unmarshal([]byte(tc.in), &ref); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if ref.StoreID != tc.want {
				t.Errorf("StoreID = %q; want %q", ref.StoreID, tc.want)
			}
		})
	}
}

func TestRoomRefUnmarshalRejectsGarbage(t *testing.T) {
	var ref RoomRef
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Error("numeric payload accepted")
	}
}

func TestPositionEditValid(t *testing.T) {
	pos := domain.ModelPosition{X: 1, Y: 2, Z: 3}
	if !(PositionEdit{StoreID: "s1", ModelID: "m1", Position: &pos}).Valid() {
		t.Error("complete edit reported invalid")
	}
	if (PositionEdit{ModelID: "m1", Position: &pos}).Valid() {
		t.Error("edit without store id reported valid")
	}
	if (PositionEdit{StoreID: "s1", Position: &pos}).Valid() {
		t.Error("edit without model id reported valid")
	}
	if (PositionEdit{StoreID: "s1", ModelID: "m1"}).Valid() {
		t.Error("edit without position reported valid")
	}
}

func TestStoreFullMessage(t *testing.T) {
	if got, want := storeFullMessage(2), "Store is full. Maximum 2 users allowed."; got != want {
		t.Errorf("storeFullMessage(2) = %q; want %q", got, want)
	}
}

func TestMarshalEventEnvelope(t *testing.T) {
	frame, err := marshalEvent(EventUserCount, userCountPayload{Count: 3})
	if err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != EventUserCount {
		t.Errorf("event = %q; want %q", env.Event, EventUserCount)
	}
	var p struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Count != 3 {
		t.Errorf("count = %d; want 3", p.Count)
	}
}
