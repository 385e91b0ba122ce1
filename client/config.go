package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pyth-network/lazer-admin/helpers/vault"
	"github.com/pyth-network/lazer-admin/lib"
)

// Config holds the client configuration.
type Config struct {
	URL          string `mapstructure:"url"`
	KeypairPath  string `mapstructure:"keypair_path"`
	ProgramID    string `mapstructure:"program_id"`
	Commitment   string `mapstructure:"commitment"`
	Timeout      string `mapstructure:"timeout"`
	VaultAddress string `mapstructure:"vault_address"`
	VaultToken   string `mapstructure:"vault_token"`
	AWSRegion    string `mapstructure:"aws_region"`
	AWSAccessKey string `mapstructure:"aws_access_key"`
	AWSSecretKey string `mapstructure:"aws_secret_key"`
	Pushgateway  string `mapstructure:"pushgateway"`
}

// flagNames maps configuration keys to the command-line flags that override them.
var flagNames = map[string]string{
	"url":          "url",
	"keypair_path": "keypair-path",
	"program_id":   "program-id",
	"commitment":   "commitment",
	"timeout":      "timeout",
	"pushgateway":  "pushgateway",
}

func setDefaults(v *viper.Viper, flags *pflag.FlagSet) {
	for key, name := range flagNames {
		if f := flags.Lookup(name); f != nil {
			v.BindPFlag(key, f)
		}
	}
	v.SetDefault("program_id", lib.DefaultProgramID)
	v.SetDefault("commitment", lib.DefaultCommitment)
	v.SetDefault("timeout", "90s")
}

func setFromEnvironment(c *Config) {
	if c.VaultAddress == "" {
		c.VaultAddress = os.Getenv("VAULT_ADDR")
	}
	if c.VaultToken == "" {
		c.VaultToken = os.Getenv("VAULT_TOKEN")
	}
}

// setFromVault resolves settings of the form /vault/path/key.
// RPC URLs frequently embed provider API keys.
func setFromVault(c *Config) error {
	if c.VaultAddress == "" {
		return nil
	}
	var fields []*string
	for _, f := range []*string{&c.URL, &c.AWSAccessKey, &c.AWSSecretKey} {
		if strings.HasPrefix(*f, vault.Prefix) {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	v, err := vault.NewClient(c.VaultAddress, c.VaultToken)
	if err != nil {
		return fmt.Errorf("vault error: %w", err)
	}
	var errs *multierror.Error
	for _, f := range fields {
		s, err := v.Read(*f)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		*f = s
	}
	return errs.ErrorOrNil()
}

// ReadConfig reads the client configuration from a file and the command-line flags
// into a Config struct. Flags that were set take precedence over the file.
// A missing file is only an error if required is true.
func ReadConfig(path string, required bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, flags)
	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(p)
		if statErr == nil || required {
			v.SetConfigFile(p)
			v.SetConfigType("hcl")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("unable to read config from file %s: %w", p, err)
			}
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	setFromEnvironment(c)
	if err := setFromVault(c); err != nil {
		return nil, err
	}
	p, err := homedir.Expand(c.KeypairPath)
	if err != nil {
		return nil, err
	}
	c.KeypairPath = p
	return c, nil
}

// Verify reports every missing or malformed setting.
func (c *Config) Verify() error {
	var err error
	if c.URL == "" {
		err = multierror.Append(err, errors.New("missing url"))
	}
	if c.KeypairPath == "" {
		err = multierror.Append(err, errors.New("missing keypair-path"))
	}
	if _, perr := c.Program(); perr != nil {
		err = multierror.Append(err, perr)
	}
	if _, cerr := c.CommitmentType(); cerr != nil {
		err = multierror.Append(err, cerr)
	}
	if _, terr := c.TimeoutDuration(); terr != nil {
		err = multierror.Append(err, terr)
	}
	return err
}

// Program returns the program address.
func (c *Config) Program() (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program-id %q: %w", c.ProgramID, err)
	}
	return pk, nil
}

// CommitmentType returns the commitment used for reads, preflight and confirmation.
func (c *Config) CommitmentType() (rpc.CommitmentType, error) {
	switch ct := rpc.CommitmentType(c.Commitment); ct {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return ct, nil
	}
	return "", fmt.Errorf("invalid commitment %q: must be processed, confirmed or finalized", c.Commitment)
}

// TimeoutDuration returns how long to wait for a transaction to be confirmed.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}
