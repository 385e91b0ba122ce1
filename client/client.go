package client

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/pyth-network/lazer-admin/lib"
	"github.com/pyth-network/lazer-admin/program"
)

var (
	// ErrStorageNotFound is returned when the program has not been initialized.
	ErrStorageNotFound = errors.New("storage account not found")

	errNoSigner     = errors.New("no keypair loaded")
	errNotConfirmed = errors.New("transaction not confirmed yet")
)

const defaultPollInterval = 500 * time.Millisecond

// RPC is the subset of the Solana JSON-RPC API used by Client.
// *rpc.Client implements it.
type RPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	SimulateTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// Client submits administrative instructions to the Lazer program.
type Client struct {
	rpc          RPC
	signer       solana.PrivateKey
	programID    solana.PublicKey
	commitment   rpc.CommitmentType
	pollInterval time.Duration
}

// New returns a Client using conn. signer may be nil for read-only use.
func New(conn RPC, signer solana.PrivateKey, conf *Config) (*Client, error) {
	programID, err := conf.Program()
	if err != nil {
		return nil, err
	}
	commitment, err := conf.CommitmentType()
	if err != nil {
		return nil, err
	}
	return &Client{
		rpc:          conn,
		signer:       signer,
		programID:    programID,
		commitment:   commitment,
		pollInterval: defaultPollInterval,
	}, nil
}

// Dial returns a Client talking JSON-RPC to conf.URL. No request is made until
// the client is used.
func Dial(conf *Config, signer solana.PrivateKey) (*Client, error) {
	return New(rpc.New(conf.URL), signer, conf)
}

// Authority returns the public key of the loaded keypair.
func (c *Client) Authority() solana.PublicKey {
	if len(c.signer) == 0 {
		return solana.PublicKey{}
	}
	return c.signer.PublicKey()
}

func (c *Client) buildUpdate(ctx context.Context, req *lib.UpdateRequest) (*solana.Transaction, error) {
	if len(c.signer) == 0 {
		return nil, errNoSigner
	}
	authority := c.Authority()
	ix, err := program.NewUpdateInstruction(c.programID, authority, req)
	if err != nil {
		return nil, err
	}
	bh, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get latest blockhash")
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		bh.Value.Blockhash,
		solana.TransactionPayer(authority),
	)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create transaction")
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(authority) {
			return &c.signer
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to sign transaction")
	}
	return tx, nil
}

// Update adds a trusted signer or changes its expiry, and waits until the
// transaction reaches the configured commitment.
func (c *Client) Update(ctx context.Context, req *lib.UpdateRequest) (*lib.UpdateResponse, error) {
	tx, err := c.buildUpdate(ctx, req)
	if err != nil {
		return nil, err
	}
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to send transaction")
	}
	slot, err := c.waitForConfirmation(ctx, sig)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s", sig)
	}
	return &lib.UpdateResponse{
		Signature: sig,
		Slot:      slot,
	}, nil
}

// Simulate runs the update without submitting it.
func (c *Client) Simulate(ctx context.Context, req *lib.UpdateRequest) (*rpc.SimulateTransactionResult, error) {
	tx, err := c.buildUpdate(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:  true,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to simulate transaction")
	}
	if out.Value == nil {
		return nil, errors.New("empty simulation result")
	}
	return out.Value, nil
}

// Storage fetches and decodes the program's storage account.
func (c *Client) Storage(ctx context.Context) (*program.Storage, error) {
	addr, err := program.StorageAddress(c.programID)
	if err != nil {
		return nil, err
	}
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, errors.Wrapf(ErrStorageNotFound, "address %s", addr)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch storage account")
	}
	if out.Value == nil || out.Value.Data == nil {
		return nil, errors.Wrapf(ErrStorageNotFound, "address %s", addr)
	}
	if !out.Value.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("storage account %s is owned by %s, not %s", addr, out.Value.Owner, c.programID)
	}
	return program.DecodeStorage(out.Value.Data.GetBinary())
}

// waitForConfirmation polls the signature status until it reaches the client's
// commitment, the transaction fails, or ctx is done.
func (c *Client) waitForConfirmation(ctx context.Context, sig solana.Signature) (uint64, error) {
	var slot uint64
	op := func() error {
		out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "unable to get signature status"))
		}
		if len(out.Value) == 0 || out.Value[0] == nil {
			return errNotConfirmed
		}
		status := out.Value[0]
		if status.Err != nil {
			return backoff.Permanent(fmt.Errorf("failed: %v", status.Err))
		}
		if !reached(status.ConfirmationStatus, c.commitment) {
			return errNotConfirmed
		}
		slot = status.Slot
		return nil
	}
	b := backoff.WithContext(backoff.NewConstantBackOff(c.pollInterval), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if ctx.Err() != nil {
			return 0, errors.Wrap(ctx.Err(), "not confirmed")
		}
		return 0, err
	}
	return slot, nil
}

var confirmationLevel = map[rpc.ConfirmationStatusType]int{
	rpc.ConfirmationStatusProcessed: 1,
	rpc.ConfirmationStatusConfirmed: 2,
	rpc.ConfirmationStatusFinalized: 3,
}

var commitmentLevel = map[rpc.CommitmentType]int{
	rpc.CommitmentProcessed: 1,
	rpc.CommitmentConfirmed: 2,
	rpc.CommitmentFinalized: 3,
}

func reached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	got, ok := confirmationLevel[status]
	return ok && got >= commitmentLevel[commitment]
}
