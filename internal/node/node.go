package node

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/6529-Collections/nftactions/internal/action"
	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/registry"
	"github.com/6529-Collections/nftactions/internal/rpc"
	"github.com/dgraph-io/badger/v4"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Resolver is everything a single url resolution needs. It owns the chain
// clients and the metadata cache.
type Resolver struct {
	Registry  *registry.Registry
	Assembler *action.Assembler
	Chains    eth.ChainClients

	cache *badger.DB
}

// NewResolver dials the configured chains and builds the assembler. When
// cfg.MetadataCachePath is set, content-addressed metadata is cached there.
func NewResolver(cfg config.Config) (*Resolver, error) {
	chains, err := eth.DialChainClients()
	if err != nil {
		return nil, err
	}

	httpFetcher := metadata.NewHTTPFetcher(cfg.IpfsGatewayUrl, time.Duration(cfg.MetadataTimeoutSeconds)*time.Second)
	var fetcher metadata.Fetcher = httpFetcher
	var cache *badger.DB
	if cfg.MetadataCachePath != "" {
		cache, err = db.OpenBadger(cfg.MetadataCachePath)
		if err != nil {
			chains.Close()
			return nil, err
		}
		fetcher = metadata.NewCachingFetcher(httpFetcher, cache)
	}

	reg := registry.Default(cfg)
	backends := registry.Backends{Chains: chains, Fetcher: fetcher}
	return &Resolver{
		Registry:  reg,
		Assembler: action.NewAssembler(reg, backends, common.HexToAddress(cfg.LensActionModuleAddress)),
		Chains:    chains,
		cache:     cache,
	}, nil
}

func (r *Resolver) Close() {
	if r.cache != nil {
		if err := r.cache.Close(); err != nil {
			zap.L().Warn("Error closing metadata cache", zap.Error(err))
		}
	}
	r.Chains.Close()
}

// Node is the long running service: a resolver behind the HTTP API, with
// every assembled action recorded in SQLite.
type Node struct {
	mu       sync.Mutex
	cfg      config.Config
	running  bool
	resolver *Resolver
	sqlite   *sql.DB
	closeRPC func()
}

func NewNode(cfg config.Config) *Node {
	return &Node{cfg: cfg}
}

func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return fmt.Errorf("node is already running")
	}
	if n.cfg.RPCPort <= 0 {
		return fmt.Errorf("invalid rpc port %d", n.cfg.RPCPort)
	}

	resolver, err := NewResolver(n.cfg)
	if err != nil {
		return fmt.Errorf("failed to build resolver: %w", err)
	}

	sqlite, err := db.OpenSqlite(n.cfg.SqlitePath)
	if err != nil {
		resolver.Close()
		return err
	}

	n.closeRPC = rpc.StartRPCServer(n.cfg.RPCPort, rpc.Dependencies{
		Assembler:      resolver.Assembler,
		Platforms:      resolver.Registry,
		Chains:         resolver.Chains,
		DB:             sqlite,
		ResolveTimeout: time.Duration(n.cfg.ResolveTimeoutSeconds) * time.Second,
	}, ctx)
	n.resolver = resolver
	n.sqlite = sqlite
	n.running = true

	zap.L().Info("Node started successfully",
		zap.Int("rpcPort", n.cfg.RPCPort),
		zap.Uint64s("chains", resolver.Chains.ChainIDs()),
		zap.String("sqlitePath", n.cfg.SqlitePath),
	)
	return nil
}

// Stop closes the RPC server first so no request sees a closed store.
func (n *Node) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.running {
		return fmt.Errorf("node not running")
	}

	n.closeRPC()
	if err := n.sqlite.Close(); err != nil {
		zap.L().Warn("Error closing DB", zap.Error(err))
	}
	n.resolver.Close()

	n.running = false
	zap.L().Info("Node stopped.")
	return nil
}
