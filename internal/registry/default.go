package registry

import (
	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/6529-Collections/nftactions/internal/platform/basepaint"
	"github.com/6529-Collections/nftactions/internal/platform/resale"
	"github.com/6529-Collections/nftactions/internal/platform/zora"
	"github.com/ethereum/go-ethereum/common"
)

// Default builds the registry of every supported marketplace from cfg.
func Default(cfg config.Config) *Registry {
	resaleConfig := resale.Config{
		Market:            common.HexToAddress(cfg.ResaleMarketAddress),
		DefaultCollection: common.HexToAddress(cfg.ResaleDefaultCollection),
	}

	return New(
		NFTPlatform{
			Key:     zora.Key,
			Name:    zora.Name,
			LogoURL: zora.LogoURL,
			Pattern: zora.MatchPattern,
			Extract: zora.Extract,
			NewService: func(deps ServiceDeps) platform.Service {
				return zora.NewService(deps.Reader, deps.Fetcher, cfg.ZoraFeePercent)
			},
			APIKey: cfg.ZoraApiKey,
		},
		NFTPlatform{
			Key:     basepaint.Key,
			Name:    basepaint.Name,
			LogoURL: basepaint.LogoURL,
			Pattern: basepaint.MatchPattern,
			Extract: basepaint.Extract,
			NewService: func(deps ServiceDeps) platform.Service {
				return basepaint.NewService(deps.Reader, deps.Fetcher, cfg.BasepaintFeePercent)
			},
		},
		NFTPlatform{
			Key:     resale.Key,
			Name:    resale.Name,
			LogoURL: resale.LogoURL,
			Pattern: resale.MatchPattern,
			Extract: resale.NewExtractor(resaleConfig.DefaultCollection),
			NewService: func(deps ServiceDeps) platform.Service {
				return resale.NewService(deps.Reader, deps.Fetcher, resaleConfig)
			},
		},
	)
}
