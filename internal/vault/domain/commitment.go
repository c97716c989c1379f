package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// CommitmentSize is the byte length of a milestone commitment digest.
const CommitmentSize = 32

// Commitment is the opaque digest anchoring the milestone criteria agreed
// at creation. The vault never inspects it; it exists so observers can
// audit that the verifier attested against the agreed criteria.
type Commitment [CommitmentSize]byte

// NewCommitment digests the milestone criteria document.
func NewCommitment(criteria []byte) Commitment {
	return blake3.Sum256(criteria)
}

// ParseCommitment decodes a hex-encoded commitment.
func ParseCommitment(value string) (Commitment, error) {
	var c Commitment
	raw, err := hex.DecodeString(value)
	if err != nil {
		return Commitment{}, fmt.Errorf("decode commitment: %w", err)
	}
	if len(raw) != CommitmentSize {
		return Commitment{}, fmt.Errorf("commitment must be %d bytes, got %d", CommitmentSize, len(raw))
	}
	copy(c[:], raw)
	return c, nil
}

// String returns the hex encoding of the commitment.
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}
