package app

import "testing"

func TestRegistryAddMemberCapacity(t *testing.T) {
	r := NewRegistry(2)

	if !r.AddMember("s1", "a") {
		t.Fatal("first join rejected")
	}
	if !r.AddMember("s1", "b") {
		t.Fatal("second join rejected")
	}
	if r.AddMember("s1", "c") {
		t.Error("third join admitted past capacity")
	}
	if got := r.MemberCount("s1"); got != 2 {
		t.Errorf("MemberCount = %d; want 2", got)
	}
}

func TestRegistryAddMemberIdempotent(t *testing.T) {
	r := NewRegistry(2)
	r.AddMember("s1", "a")
	r.AddMember("s1", "b")

	// A full store still accepts an existing member.
	if !r.AddMember("s1", "a") {
		t.Error("rejoin of existing member rejected")
	}
	if got := r.MemberCount("s1"); got != 2 {
		t.Errorf("MemberCount after rejoin = %d; want 2", got)
	}
}

func TestRegistryRejectedJoinLeavesNoEmptyRoom(t *testing.T) {
	r := NewRegistry(0)

	if r.AddMember("s1", "a") {
		t.Fatal("join admitted with zero capacity")
	}
	if r.RoomCount() != 0 {
		t.Error("rejected join left an empty room entry behind")
	}
}

func TestRegistryRemoveMember(t *testing.T) {
	r := NewRegistry(4)
	r.AddMember("s1", "a")
	r.AddMember("s1", "b")

	removed, emptied := r.RemoveMember("s1", "a")
	if !removed || emptied {
		t.Errorf("RemoveMember(a) = (%v, %v); want (true, false)", removed, emptied)
	}
	removed, emptied = r.RemoveMember("s1", "b")
	if !removed || !emptied {
		t.Errorf("RemoveMember(b) = (%v, %v); want (true, true)", removed, emptied)
	}
	if r.RoomCount() != 0 {
		t.Error("emptied room still present in registry")
	}

	removed, _ = r.RemoveMember("s1", "b")
	if removed {
		t.Error("removing from a deleted room reported removal")
	}
}

func TestRegistryForwardReverseConsistency(t *testing.T) {
	r := NewRegistry(4)
	r.AddMember("s1", "a")

	storeID, ok := r.RoomOf("a")
	if !ok || storeID != "s1" {
		t.Errorf("RoomOf(a) = (%q, %v); want (s1, true)", storeID, ok)
	}

	r.RemoveMember("s1", "a")
	if _, ok := r.RoomOf("a"); ok {
		t.Error("reverse mapping survived removal")
	}
}

func TestRegistryMembersOfUnknownStore(t *testing.T) {
	r := NewRegistry(4)
	if members := r.MembersOf("nope"); members != nil {
		t.Errorf("MembersOf(unknown) = %v; want nil", members)
	}
	if got := r.MemberCount("nope"); got != 0 {
		t.Errorf("MemberCount(unknown) = %d; want 0", got)
	}
}
