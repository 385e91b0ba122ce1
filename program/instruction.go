package program

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pyth-network/lazer-admin/lib"
)

var (
	updateDiscriminator  = discriminator("global", "update")
	storageDiscriminator = discriminator("account", "Storage")
)

func discriminator(namespace, name string) []byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	return sum[:8]
}

// StorageAddress derives the address of the program's storage account.
func StorageAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(lib.StorageSeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "unable to derive storage address")
	}
	return addr, nil
}

// NewUpdateInstruction builds the `update` instruction. topAuthority must sign
// the transaction and match the authority recorded in the storage account.
func NewUpdateInstruction(programID, topAuthority solana.PublicKey, req *lib.UpdateRequest) (*solana.GenericInstruction, error) {
	storage, err := StorageAddress(programID)
	if err != nil {
		return nil, err
	}
	data, err := encodeUpdate(req)
	if err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(topAuthority).SIGNER(),
		solana.Meta(storage).WRITE(),
	}
	return solana.NewInstruction(programID, accounts, data), nil
}

func encodeUpdate(req *lib.UpdateRequest) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(updateDiscriminator, false); err != nil {
		return nil, errors.Wrap(err, "unable to encode instruction")
	}
	if err := enc.WriteBytes(req.TrustedSigner[:], false); err != nil {
		return nil, errors.Wrap(err, "unable to encode trusted signer")
	}
	if err := enc.WriteInt64(req.ExpiresAt, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "unable to encode expiry")
	}
	return buf.Bytes(), nil
}
