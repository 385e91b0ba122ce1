package testdata

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/pyth-network/lazer-admin/lib"
)

// StorageData lays out a storage account the way the program does, including
// the unused table slots and trailing padding.
func StorageData(authority, treasury solana.PublicKey, fee uint64, signers []lib.TrustedSigner) []byte {
	disc := sha256.Sum256([]byte("account:Storage"))
	buf := new(bytes.Buffer)
	buf.Write(disc[:8])
	buf.Write(authority[:])
	buf.Write(treasury[:])
	binary.Write(buf, binary.LittleEndian, fee)
	buf.WriteByte(byte(len(signers)))
	for i := 0; i < lib.MaxTrustedSigners; i++ {
		var s lib.TrustedSigner
		if i < len(signers) {
			s = signers[i]
		}
		buf.Write(s.PubKey[:])
		binary.Write(buf, binary.LittleEndian, s.ExpiresAt)
	}
	buf.Write(make([]byte, 100))
	return buf.Bytes()
}
