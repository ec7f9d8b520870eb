package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/pflag"
)

type options struct {
	outputMode string
	outputFile string
	dbPath     string
}

func parseOptions(args []string, cfg config.Config) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	flags.StringVarP(&opts.outputMode, "output", "o", "console", "Output mode: 'console' or 'file'")
	flags.StringVarP(&opts.outputFile, "file", "f", "dump.txt", "Output file (if mode is 'file')")
	flags.StringVar(&opts.dbPath, "db", cfg.MetadataCachePath, "Path of the metadata cache")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if opts.outputMode != "console" && opts.outputMode != "file" {
		return nil, fmt.Errorf("unknown output mode %q", opts.outputMode)
	}
	if opts.dbPath == "" {
		return nil, fmt.Errorf("no metadata cache path: set METADATA_CACHE_PATH or pass --db")
	}
	return opts, nil
}

// writeDump prints every cached document and returns how many there were.
func writeDump(store *badger.DB, out io.Writer, gateway string) (int, error) {
	count := 0
	err := metadata.ForEachCached(store, func(uri string, raw []byte) error {
		count++
		fmt.Fprintf(out, "URI: %s\n", uri)
		doc, err := metadata.Parse(raw, gateway)
		if err != nil {
			fmt.Fprintf(out, "  [ERROR] %v\n", err)
			fmt.Fprintf(out, "  Raw: %s\n", string(raw))
		} else {
			fmt.Fprintf(out, "  Name: %s\n", doc.Name)
			fmt.Fprintf(out, "  Image: %s\n", doc.ImageURL)
		}
		fmt.Fprintln(out, "-------------------------")
		return nil
	})
	return count, err
}

func main() {
	cfg := config.Get()
	opts, err := parseOptions(os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var out *os.File
	if opts.outputMode == "file" {
		out, err = os.Create(opts.outputFile)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer out.Close()
	} else {
		out = os.Stdout
	}

	store, err := badger.Open(badger.DefaultOptions(opts.dbPath).WithReadOnly(true).WithLogger(nil))
	if err != nil {
		log.Fatalf("Failed to open BadgerDB: %v", err)
	}
	defer store.Close()

	count, err := writeDump(store, out, cfg.IpfsGatewayUrl)
	if err != nil {
		log.Fatalf("Error while iterating: %v", err)
	}

	fmt.Printf("Dump complete, %d documents.\n", count)
}
