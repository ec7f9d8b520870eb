package eth

import (
	"sort"

	"github.com/6529-Collections/nftactions/internal/config"
)

const (
	ChainEthereum uint64 = 1
	ChainOptimism uint64 = 10
	ChainBase     uint64 = 8453
	ChainZora     uint64 = 7777777
)

// Short network names used in marketplace urls, e.g. zora.co/collect/base:0x...
var chainsByPrefix = map[string]uint64{
	"eth":  ChainEthereum,
	"oeth": ChainOptimism,
	"base": ChainBase,
	"zora": ChainZora,
}

func ChainIDForPrefix(prefix string) (uint64, bool) {
	id, ok := chainsByPrefix[prefix]
	return id, ok
}

func SupportedChains() []uint64 {
	ids := make([]uint64, 0, len(chainsByPrefix))
	for _, id := range chainsByPrefix {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func NodeUrlForChain(cfg config.Config, chainID uint64) string {
	switch chainID {
	case ChainEthereum:
		return cfg.EthereumNodeUrl
	case ChainOptimism:
		return cfg.OptimismNodeUrl
	case ChainBase:
		return cfg.BaseNodeUrl
	case ChainZora:
		return cfg.ZoraNodeUrl
	}
	return ""
}
