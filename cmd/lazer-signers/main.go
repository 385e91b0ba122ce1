// Command lazer-signers prints the trusted signers recorded in the storage
// account of the Pyth Lazer Solana program.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/pyth-network/lazer-admin/client"
	"github.com/pyth-network/lazer-admin/lib"
	"github.com/pyth-network/lazer-admin/program"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("lazer-signers", pflag.ContinueOnError)
	fs.String("config", "~/.lazer-admin.conf", "Path to config file")
	fs.String("url", "", "Solana RPC endpoint (required)")
	fs.String("program-id", lib.DefaultProgramID, "Address of the Lazer program")
	fs.String("commitment", lib.DefaultCommitment, "Commitment of the storage account read")
	fs.String("timeout", "30s", "Request timeout")
	fs.Bool("version", false, "Print version and exit")
	return fs
}

func readConfig(args []string) (*client.Config, bool, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	if v, _ := fs.GetBool("version"); v {
		return nil, true, nil
	}
	cfg, _ := fs.GetString("config")
	conf, err := client.ReadConfig(cfg, fs.Changed("config"), fs)
	if err != nil {
		return nil, false, err
	}
	if conf.URL == "" {
		return nil, false, errors.New("missing url")
	}
	if _, err := conf.Program(); err != nil {
		return nil, false, err
	}
	if _, err := conf.CommitmentType(); err != nil {
		return nil, false, err
	}
	return conf, false, nil
}

func printStorage(out io.Writer, s *program.Storage, now time.Time) error {
	fmt.Fprintf(out, "top authority: %s\n", s.TopAuthority)
	fmt.Fprintf(out, "treasury:      %s\n", s.Treasury)
	fmt.Fprintf(out, "update fee:    %d lamports\n", s.SingleUpdateFeeInLamports)
	fmt.Fprintf(out, "trusted signers: %d/%d\n", len(s.TrustedSigners), lib.MaxTrustedSigners)
	if len(s.TrustedSigners) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PUBKEY\tEXPIRES AT\tSTATUS")
	for _, signer := range s.TrustedSigners {
		status := "active"
		if signer.Expired(now) {
			status = "expired"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", signer.PubKey, signer.Expiry().Format(time.RFC3339), status)
	}
	return w.Flush()
}

func run(ctx context.Context, conf *client.Config, out io.Writer) error {
	c, err := client.Dial(conf, nil)
	if err != nil {
		return err
	}
	s, err := c.Storage(ctx)
	if err != nil {
		return err
	}
	return printStorage(out, s, time.Now())
}

func main() {
	log.SetPrefix("lazer-signers: ")
	log.SetFlags(0)

	conf, version, err := readConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalln(err)
	}
	if version {
		fmt.Printf("%s\n", lib.Version)
		os.Exit(0)
	}
	timeout, err := conf.TimeoutDuration()
	if err != nil {
		log.Fatalln(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	err = run(ctx, conf, os.Stdout)
	cancel()
	if err != nil {
		log.Fatalln(err)
	}
}
