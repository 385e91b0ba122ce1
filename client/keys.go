package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go4.org/wkfs"
	"golang.org/x/crypto/ed25519"
)

// ErrInvalidKeypair is returned for key material that is not an ed25519 keypair.
var ErrInvalidKeypair = errors.New("invalid keypair")

// ParseKeypair decodes a JSON array of 64 bytes, the format written by solana-keygen:
// a 32 byte seed followed by the 32 byte public key.
func ParseKeypair(data []byte) (solana.PrivateKey, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, errors.Wrapf(ErrInvalidKeypair, "not a JSON byte array: %v", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKeypair, "got %d bytes, want %d", len(ints), ed25519.PrivateKeySize)
	}
	key := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, errors.Wrapf(ErrInvalidKeypair, "value %d at index %d is not a byte", v, i)
		}
		key[i] = byte(v)
	}
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, errors.Wrap(ErrInvalidKeypair, "public key does not match secret key")
	}
	return solana.PrivateKey(key), nil
}

// LoadKeypair reads a keypair from a local file or a well-known filesystem
// (see RegisterKeySources).
func LoadKeypair(path string) (solana.PrivateKey, error) {
	data, err := wkfs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read keypair %s", path)
	}
	key, err := ParseKeypair(data)
	if err != nil {
		return nil, fmt.Errorf("keypair %s: %w", path, err)
	}
	return key, nil
}
