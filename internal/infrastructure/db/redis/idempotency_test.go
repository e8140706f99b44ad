package redis

import "testing"

func TestIdempotencyKey_ScopedByOwner(t *testing.T) {
	a := idempotencyKey("u-1", "req-1")
	b := idempotencyKey("u-2", "req-1")

	if a != "idempotency:u-1:req-1" {
		t.Fatalf("unexpected key %q", a)
	}
	if a == b {
		t.Fatalf("keys for different owners must differ")
	}
}
