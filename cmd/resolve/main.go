// Command resolve prints the open action data for one marketplace url.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/6529-Collections/nftactions/internal/action"
	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/node"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func init() {
	logger := zap.Must(zap.NewProduction())
	if config.Get().LogZapMode == "development" {
		logger = zap.Must(zap.NewDevelopment())
	}
	zap.ReplaceGlobals(logger)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	url          string
	dstChainID   uint64
	sender       string
	profileOwner string
	quantity     uint64
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.url, "url", "u", "", "marketplace url of the NFT (may also be the first argument)")
	flags.Uint64Var(&opts.dstChainID, "dst-chain", eth.ChainBase, "chain id the action is executed from")
	flags.StringVar(&opts.sender, "sender", "", "buyer address")
	flags.StringVar(&opts.profileOwner, "profile-owner", "", "owner of the acting Lens profile")
	flags.Uint64VarP(&opts.quantity, "quantity", "q", 1, "number of copies to buy")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if opts.url == "" && flags.NArg() > 0 {
		opts.url = flags.Arg(0)
	}
	if opts.url == "" {
		return nil, fmt.Errorf("a marketplace url is required")
	}
	if opts.quantity == 0 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	for name, value := range map[string]string{"sender": opts.sender, "profile-owner": opts.profileOwner} {
		if value != "" && !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%s is not an address: %q", name, value)
		}
	}
	return opts, nil
}

// run returns the process exit code: 0 on success, 1 when resolution fails
// and 2 for bad usage.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg := config.Get()
	resolver, err := node.NewResolver(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer resolver.Close()

	ctx := context.Background()
	if cfg.ResolveTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.ResolveTimeoutSeconds)*time.Second)
		defer cancel()
	}

	data, err := resolver.Assembler.Assemble(ctx, action.Request{
		URL:          opts.url,
		DstChainID:   opts.dstChainID,
		Sender:       common.HexToAddress(opts.sender),
		ProfileOwner: common.HexToAddress(opts.profileOwner),
		Quantity:     new(big.Int).SetUint64(opts.quantity),
	})
	if err != nil {
		encoder := json.NewEncoder(stderr)
		_ = encoder.Encode(map[string]string{
			"error": err.Error(),
			"kind":  string(nfterrors.KindOf(err)),
		})
		return 1
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
