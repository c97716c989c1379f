package domain

import (
	"strings"
	"testing"
)

func TestNewCommitmentIsDeterministic(t *testing.T) {
	a := NewCommitment([]byte("write 30 pages"))
	b := NewCommitment([]byte("write 30 pages"))
	c := NewCommitment([]byte("write 31 pages"))

	if a != b {
		t.Fatal("expected identical criteria to produce identical commitments")
	}
	if a == c {
		t.Fatal("expected different criteria to produce different commitments")
	}
}

func TestCommitmentHexRoundTrip(t *testing.T) {
	original := NewCommitment([]byte("run a marathon"))

	encoded := original.String()
	if len(encoded) != CommitmentSize*2 {
		t.Fatalf("expected %d hex characters, got %d", CommitmentSize*2, len(encoded))
	}

	decoded, err := ParseCommitment(encoded)
	if err != nil {
		t.Fatalf("parse commitment: %v", err)
	}
	if decoded != original {
		t.Fatal("expected round-trip to preserve commitment")
	}
}

func TestParseCommitmentRejectsBadInput(t *testing.T) {
	if _, err := ParseCommitment("zz"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParseCommitment(strings.Repeat("ab", 16)); err == nil {
		t.Fatal("expected error for short digest")
	}
}
