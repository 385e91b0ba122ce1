package lib

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// UpdateRequest adds a trusted signer or changes its expiry.
// An ExpiresAt of 0 removes the signer.
type UpdateRequest struct {
	TrustedSigner solana.PublicKey `json:"trusted_signer"`
	ExpiresAt     int64            `json:"expires_at"`
}

// UpdateResponse describes the transaction that carried an UpdateRequest.
type UpdateResponse struct {
	Signature solana.Signature `json:"signature"`
	Slot      uint64           `json:"slot"`
}

// TrustedSigner is one entry of the program's trusted signer table.
type TrustedSigner struct {
	PubKey    solana.PublicKey `json:"pubkey"`
	ExpiresAt int64            `json:"expires_at"`
}

// Expiry returns the expiry as a UTC time.
func (s TrustedSigner) Expiry() time.Time {
	return ExpiryTime(s.ExpiresAt)
}

// Expired reports whether the signer is no longer accepted at t.
func (s TrustedSigner) Expired(t time.Time) bool {
	return s.ExpiresAt <= t.Unix()
}
