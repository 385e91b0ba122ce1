package lib

// Version of the lazer-admin tools.
var Version = "unknown"

const (
	// DefaultProgramID is the address of the Pyth Lazer program on Solana.
	DefaultProgramID = "pytd2yyk641x7ak7mkaasSJVXh6YYZnC7wTmtgAyxz9"

	// DefaultCommitment is the commitment used for reads, preflight and confirmation.
	DefaultCommitment = "confirmed"

	// StorageSeed is the PDA seed of the program's storage account.
	StorageSeed = "storage"

	// MaxTrustedSigners is the size of the trusted signer table in the storage account.
	MaxTrustedSigners = 5
)
