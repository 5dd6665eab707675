package idgen

import (
	"strings"
	"testing"
)

func TestGenerateUnique(t *testing.T) {
	s := &Snowflake{workerID: 1}
	seen := make(map[int64]bool, 10000)
	prev := int64(0)
	for i := 0; i < 10000; i++ {
		id := s.Generate()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		if id <= prev {
			t.Fatalf("ids not increasing: %d after %d", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestReferencePrefixes(t *testing.T) {
	if no := GenerateEntryNo(); !strings.HasPrefix(no, "LGR") {
		t.Fatalf("entry no %q missing LGR prefix", no)
	}
	if no := GeneratePromotionNo(); !strings.HasPrefix(no, "PRM") {
		t.Fatalf("promotion no %q missing PRM prefix", no)
	}
}
