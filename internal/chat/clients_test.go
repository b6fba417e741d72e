package chat

import "testing"

func TestClientRegistry_IDsAreMonotonic(t *testing.T) {
	r := NewClientRegistry()
	a := &Session{}
	b := &Session{}
	r.Register(a)
	r.Register(b)
	r.Unregister(a)

	c := &Session{}
	r.Register(c)
	if c.ID <= b.ID {
		t.Fatalf("id %d reused or went backwards after %d", c.ID, b.ID)
	}
}

func TestClientRegistry_NameClaims(t *testing.T) {
	r := NewClientRegistry()
	a := &Session{}
	b := &Session{}
	r.Register(a)
	r.Register(b)

	if !r.TryClaimName(a, "alice") {
		t.Fatal("first claim refused")
	}
	a.Nick = "alice"
	if r.TryClaimName(b, "alice") {
		t.Fatal("second claim of a held name succeeded")
	}

	// Re-claiming your own name is a no-op success.
	if !r.TryClaimName(a, "alice") {
		t.Fatal("self re-claim refused")
	}

	// Renaming releases the old name.
	if !r.TryClaimName(a, "alicia") {
		t.Fatal("rename refused")
	}
	a.Nick = "alicia"
	if !r.TryClaimName(b, "alice") {
		t.Fatal("released name still held")
	}
	b.Nick = "alice"

	if r.LookupByName("alicia") != a || r.LookupByName("alice") != b {
		t.Fatal("name lookups inconsistent with claims")
	}
}

func TestClientRegistry_UnregisterReleasesName(t *testing.T) {
	r := NewClientRegistry()
	a := &Session{}
	r.Register(a)
	r.TryClaimName(a, "alice")
	a.Nick = "alice"

	r.Unregister(a)
	if r.Lookup(a.ID) != nil {
		t.Fatal("session still resolvable after unregister")
	}
	if r.LookupByName("alice") != nil {
		t.Fatal("name still claimed after unregister")
	}
}
