package cache

import (
	"strings"
	"testing"
)

func TestDenylistKey(t *testing.T) {
	key := denylistKey("token-a")
	if !strings.HasPrefix(key, "auth:denylist:") {
		t.Fatalf("unexpected key shape: %q", key)
	}
	if strings.Contains(key, "token-a") {
		t.Fatalf("raw token leaked into key: %q", key)
	}
	if key != denylistKey("token-a") {
		t.Fatal("key derivation must be deterministic")
	}
	if key == denylistKey("token-b") {
		t.Fatal("distinct tokens must map to distinct keys")
	}
}
