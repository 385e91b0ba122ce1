// Command add-ed25519-signer adds a trusted signer to the Pyth Lazer Solana
// program or changes its expiry time.
//
// Example:
//
//	add-ed25519-signer --url 'https://api.testnet.solana.com' \
//	   --keypair-path .../key.json --trusted-signer HaXscpSUcbCLSnPQB8Z7H6idyANxp1mZAXTbHeYpfrJJ \
//	   --expiry-time-seconds 2057930841
//
// An expiry time of 0 removes the signer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/browser"
	"github.com/spf13/pflag"

	"github.com/pyth-network/lazer-admin/client"
	"github.com/pyth-network/lazer-admin/lib"
)

type options struct {
	conf          *client.Config
	trustedSigner solana.PublicKey
	expiry        int64
	dryRun        bool
	open          bool
	version       bool
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("add-ed25519-signer", pflag.ContinueOnError)
	fs.String("config", "~/.lazer-admin.conf", "Path to config file")
	fs.String("url", "", "Solana RPC endpoint (required)")
	fs.String("keypair-path", "", "Keypair of the program's top authority; /vault/ and /s3/ paths are supported (required)")
	fs.String("trusted-signer", "", "Public key of the trusted signer (required)")
	fs.Int64("expiry-time-seconds", 0, "Expiry of the trusted signer in seconds since the epoch, 0 removes it (required)")
	fs.String("program-id", lib.DefaultProgramID, "Address of the Lazer program")
	fs.String("commitment", lib.DefaultCommitment, "Commitment to wait for: processed, confirmed or finalized")
	fs.String("timeout", "90s", "How long to wait for confirmation")
	fs.String("pushgateway", "", "Prometheus Pushgateway to report the update to (optional)")
	fs.Bool("dry-run", false, "Simulate the transaction instead of sending it")
	fs.Bool("open", false, "Open the transaction in the Solana explorer")
	fs.Bool("version", false, "Print version and exit")
	return fs
}

// parseOptions validates the command line. It never touches the network.
func parseOptions(args []string) (*options, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts := &options{}
	opts.version, _ = fs.GetBool("version")
	if opts.version {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	opts.dryRun, _ = fs.GetBool("dry-run")
	opts.open, _ = fs.GetBool("open")

	cfg, _ := fs.GetString("config")
	conf, err := client.ReadConfig(cfg, fs.Changed("config"), fs)
	if err != nil {
		return nil, err
	}
	opts.conf = conf

	var errs *multierror.Error
	if err := conf.Verify(); err != nil {
		errs = multierror.Append(errs, err)
	}
	signer, _ := fs.GetString("trusted-signer")
	if signer == "" {
		errs = multierror.Append(errs, errors.New("missing trusted-signer"))
	} else if opts.trustedSigner, err = solana.PublicKeyFromBase58(signer); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid trusted-signer %q: %w", signer, err))
	}
	if !fs.Changed("expiry-time-seconds") {
		errs = multierror.Append(errs, errors.New("missing expiry-time-seconds"))
	}
	opts.expiry, _ = fs.GetInt64("expiry-time-seconds")
	return opts, errs.ErrorOrNil()
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	client.RegisterKeySources(opts.conf)
	key, err := client.LoadKeypair(opts.conf.KeypairPath)
	if err != nil {
		return err
	}
	c, err := client.Dial(opts.conf, key)
	if err != nil {
		return err
	}
	req := &lib.UpdateRequest{
		TrustedSigner: opts.trustedSigner,
		ExpiresAt:     opts.expiry,
	}

	if opts.dryRun {
		res, err := c.Simulate(ctx, req)
		if err != nil {
			return err
		}
		for _, l := range res.Logs {
			fmt.Fprintln(out, l)
		}
		if res.Err != nil {
			return fmt.Errorf("simulation failed: %v", res.Err)
		}
		fmt.Fprintln(out, "simulation succeeded")
		return nil
	}

	start := time.Now()
	resp, err := c.Update(ctx, req)
	if opts.conf.Pushgateway != "" {
		m := client.NewMetrics()
		m.ObserveUpdate(opts.trustedSigner.String(), opts.expiry, time.Since(start), err)
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if perr := m.Push(pctx, opts.conf.Pushgateway); perr != nil {
			log.Printf("unable to push metrics: %v", perr)
		}
		cancel()
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "signer updated")
	fmt.Fprintln(out, resp.Signature)

	if opts.open {
		link := lib.ExplorerURL(resp.Signature.String(), opts.conf.URL)
		if err := browser.OpenURL(link); err != nil {
			fmt.Fprintf(out, "Error launching web browser. Go to %s\n", link)
		}
	}
	return nil
}

func main() {
	log.SetPrefix("add-ed25519-signer: ")
	log.SetFlags(0)

	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalln(err)
	}
	if opts.version {
		fmt.Printf("%s\n", lib.Version)
		os.Exit(0)
	}

	timeout, _ := opts.conf.TimeoutDuration()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	err = run(ctx, opts, os.Stdout)
	cancel()
	if err != nil {
		log.Fatalln(err)
	}
}
