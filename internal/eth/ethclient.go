package eth

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

var CreateEthClient = createEthClient

type EthClient interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

func createEthClient(chainID uint64) (EthClient, error) {
	nodeUrl := NodeUrlForChain(config.Get(), chainID)
	if nodeUrl == "" {
		return nil, fmt.Errorf("failed to configure Ethereum client - node url for chain %d is not set", chainID)
	}
	client, err := ethclient.Dial(nodeUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to configure Ethereum client - %w", err)
	}
	return client, nil
}

// ChainClients holds one client per configured chain. It is built once at
// startup and only read afterwards.
type ChainClients map[uint64]EthClient

// DialChainClients connects to every supported chain that has a node url
// configured. Chains without a url are skipped.
func DialChainClients() (ChainClients, error) {
	clients := ChainClients{}
	for _, chainID := range SupportedChains() {
		if NodeUrlForChain(config.Get(), chainID) == "" {
			zap.L().Info("No node url configured, skipping chain", zap.Uint64("chainId", chainID))
			continue
		}
		client, err := CreateEthClient(chainID)
		if err != nil {
			clients.Close()
			return nil, err
		}
		clients[chainID] = client
	}
	return clients, nil
}

func (c ChainClients) For(chainID uint64) (EthClient, bool) {
	client, ok := c[chainID]
	return client, ok
}

func (c ChainClients) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ReaderFor returns a contract reader for chainID, or ChainReadFailed when no
// node is configured for it.
func (c ChainClients) ReaderFor(chainID uint64) (ContractReader, error) {
	client, ok := c.For(chainID)
	if !ok {
		return nil, nfterrors.New(nfterrors.KindChainReadFailed, "no node configured for chain %d", chainID)
	}
	return NewContractReader(client), nil
}

func (c ChainClients) Close() {
	for _, client := range c {
		client.Close()
	}
}
