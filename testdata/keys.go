package testdata

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/ed25519"
)

// TrustedSigner is the signer used in examples of the update tool.
const TrustedSigner = "HaXscpSUcbCLSnPQB8Z7H6idyANxp1mZAXTbHeYpfrJJ"

// Keypair returns a deterministic keypair.
func Keypair() solana.PrivateKey {
	seed := sha256.Sum256([]byte("lazer-admin test authority"))
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
}

// KeypairJSON returns Keypair in the JSON byte array format of solana-keygen.
func KeypairJSON() []byte {
	key := Keypair()
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	out, _ := json.Marshal(ints)
	return out
}
