package client

import (
	"strings"

	"github.com/pyth-network/lazer-admin/wkfs/s3fs"
	"github.com/pyth-network/lazer-admin/wkfs/vaultfs"
)

// RegisterKeySources makes the /vault/ and /s3/ prefixes readable by LoadKeypair.
// S3 is only set up when the keypair lives there, since looking up default AWS
// credentials may query the instance metadata service.
func RegisterKeySources(c *Config) {
	vaultfs.Register(c.VaultAddress, c.VaultToken)
	if strings.HasPrefix(c.KeypairPath, s3fs.Prefix) {
		s3fs.Register(c.AWSRegion, c.AWSAccessKey, c.AWSSecretKey)
	}
}
