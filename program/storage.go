package program

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pyth-network/lazer-admin/lib"
)

// ErrNotStorage is returned when account data does not carry the storage discriminator.
var ErrNotStorage = errors.New("account is not a lazer storage account")

// Storage is the decoded storage account of the program.
type Storage struct {
	TopAuthority              solana.PublicKey
	Treasury                  solana.PublicKey
	SingleUpdateFeeInLamports uint64
	// Only the populated entries of the on-chain table.
	TrustedSigners []lib.TrustedSigner
}

// DecodeStorage decodes raw account data, including the Anchor discriminator.
func DecodeStorage(data []byte) (*Storage, error) {
	dec := bin.NewBorshDecoder(data)
	disc, err := dec.ReadNBytes(8)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read discriminator")
	}
	if !bytes.Equal(disc, storageDiscriminator) {
		return nil, ErrNotStorage
	}
	s := &Storage{}
	if s.TopAuthority, err = readPublicKey(dec); err != nil {
		return nil, errors.Wrap(err, "unable to read top authority")
	}
	if s.Treasury, err = readPublicKey(dec); err != nil {
		return nil, errors.Wrap(err, "unable to read treasury")
	}
	if s.SingleUpdateFeeInLamports, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "unable to read update fee")
	}
	n, err := dec.ReadUint8()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read trusted signer count")
	}
	if int(n) > lib.MaxTrustedSigners {
		return nil, fmt.Errorf("trusted signer count %d exceeds table size %d", n, lib.MaxTrustedSigners)
	}
	for i := 0; i < int(n); i++ {
		var signer lib.TrustedSigner
		if signer.PubKey, err = readPublicKey(dec); err != nil {
			return nil, errors.Wrapf(err, "unable to read trusted signer %d", i)
		}
		if signer.ExpiresAt, err = dec.ReadInt64(binary.LittleEndian); err != nil {
			return nil, errors.Wrapf(err, "unable to read expiry of trusted signer %d", i)
		}
		s.TrustedSigners = append(s.TrustedSigners, signer)
	}
	return s, nil
}

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	b, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}
