// Package resale buys ERC-721 tokens listed on the Resale fixed price
// marketplace. Its own collection is the default; any other collection
// listed there is addressed by embedding the contract in the url.
package resale

import (
	"context"
	"math/big"
	"regexp"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/ethereum/go-ethereum/common"
)

const (
	Key     = "resale"
	Name    = "Resale"
	LogoURL = "https://resale.xyz/logo.svg"

	MintSignature = "buy(address,uint256,uint256,address)"
)

var (
	MatchPattern     = regexp.MustCompile(`^https?://(?:www\.)?resale\.xyz/`)
	referencePattern = regexp.MustCompile(`^https?://(?:www\.)?resale\.xyz/(?:token/(\d+)|collection/(0x[0-9a-fA-F]{40})/(\d+))/?(?:[?#].*)?$`)
	contractPattern  = regexp.MustCompile(`resale\.xyz/collection/(0x[0-9a-fA-F]{40})/`)
)

var marketABI = eth.MustParseABI("ResaleMarket", `[
	{"type":"function","name":"getSalePrice","stateMutability":"view",
	 "inputs":[{"name":"nft","type":"address"},{"name":"tokenId","type":"uint256"}],
	 "outputs":[{"name":"price","type":"uint256"},{"name":"paymentToken","type":"address"},{"name":"seller","type":"address"}]},
	{"type":"function","name":"feePercent","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"buy","stateMutability":"payable",
	 "inputs":[{"name":"nft","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"quantity","type":"uint256"},{"name":"recipient","type":"address"}],
	 "outputs":[]}
]`)

type Config struct {
	Market            common.Address
	DefaultCollection common.Address
}

// NewExtractor returns the url extractor for a marketplace whose own
// collection is defaultCollection.
func NewExtractor(defaultCollection common.Address) func(url string) (*platform.NFTExtraction, error) {
	return func(url string) (*platform.NFTExtraction, error) {
		match := referencePattern.FindStringSubmatch(url)
		if match == nil {
			return nil, nfterrors.New(nfterrors.KindMalformedReference, "not a resale token url: %s", url)
		}
		raw := match[1]
		if raw == "" {
			raw = match[3]
		}
		tokenID, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, nfterrors.New(nfterrors.KindMalformedReference, "invalid token id %q", raw)
		}
		contract := platform.ResolveContract(defaultCollection, url, contractPattern)
		if contract == (common.Address{}) {
			return nil, nfterrors.New(nfterrors.KindMalformedReference, "no collection in %s and no default configured", url)
		}
		return &platform.NFTExtraction{
			ChainID:  eth.ChainEthereum,
			Contract: contract,
			TokenID:  tokenID,
		}, nil
	}
}

type Service struct {
	reader  eth.ContractReader
	fetcher metadata.Fetcher
	config  Config
}

func NewService(reader eth.ContractReader, fetcher metadata.Fetcher, config Config) *Service {
	return &Service{reader: reader, fetcher: fetcher, config: config}
}

// Without a configured market nothing is purchasable; no read is made.
func (s *Service) marketConfigured() bool {
	return s.config.Market != (common.Address{})
}

func (s *Service) MinterAddress(ctx context.Context, contract common.Address, tokenID *big.Int) (*common.Address, error) {
	if !s.marketConfigured() {
		return nil, nil
	}
	market := s.config.Market
	return &market, nil
}

func (s *Service) MintSignature(ctx context.Context, nft platform.NFTExtraction) (string, error) {
	if !s.marketConfigured() {
		return "", nil
	}
	sale, err := s.salePrice(ctx, nft.Contract, nft.TokenID)
	if err != nil {
		return "", err
	}
	if !s.IsSaleValid(sale) {
		return "", nil
	}
	return MintSignature, nil
}

func (s *Service) UIData(ctx context.Context, req platform.UIDataRequest) (*platform.UIData, error) {
	contract := s.resolveContract(req.Contract, req.SourceURL)

	uri, err := platform.CallString(ctx, s.reader, contract, platform.ERC721MetadataABI, "tokenURI", req.TokenID)
	if err != nil {
		return nil, err
	}

	return platform.BuildUIData(ctx, s.fetcher,
		platform.Branding{Name: Name, LogoURL: LogoURL},
		platform.ERC721,
		uri,
		platform.OptionalOwner(ctx, s.reader, contract),
		req.DstChainID)
}

func (s *Service) Price(ctx context.Context, req platform.PriceRequest) (*platform.Quote, error) {
	if !s.marketConfigured() {
		return nil, nil
	}
	contract := s.resolveContract(req.Contract, req.SourceURL)

	sale, err := s.salePrice(ctx, contract, req.TokenID)
	if err != nil {
		return nil, err
	}
	if !s.IsSaleValid(sale) {
		return nil, nil
	}

	feePercent, err := platform.CallBigInt(ctx, s.reader, s.config.Market, marketABI, "feePercent")
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == nil || unit.Sign() <= 0 {
		unit = big.NewInt(1)
	}
	return platform.QuoteSale(sale, feePercent, unit), nil
}

func (s *Service) Args(ctx context.Context, req platform.ArgsRequest) ([]interface{}, error) {
	quantity := req.Quantity
	if quantity == nil || quantity.Sign() <= 0 {
		quantity = big.NewInt(1)
	}
	return []interface{}{
		s.resolveContract(req.Contract, req.SourceURL),
		req.TokenID,
		quantity,
		req.ProfileOwner,
	}, nil
}

func (s *Service) IsSaleValid(sale *platform.SalePrice) bool {
	return platform.IsSaleValid(sale)
}

func (s *Service) resolveContract(contract common.Address, sourceURL string) common.Address {
	if contract == (common.Address{}) {
		contract = s.config.DefaultCollection
	}
	return platform.ResolveContract(contract, sourceURL, contractPattern)
}

func (s *Service) salePrice(ctx context.Context, contract common.Address, tokenID *big.Int) (*platform.SalePrice, error) {
	out, err := platform.Call(ctx, s.reader, s.config.Market, marketABI, "getSalePrice", contract, tokenID)
	if err != nil {
		return nil, err
	}
	if len(out) != 3 {
		return nil, nfterrors.New(nfterrors.KindChainReadFailed, "getSalePrice returned %d values", len(out))
	}
	price, _ := out[0].(*big.Int)
	paymentToken, _ := out[1].(common.Address)
	seller, _ := out[2].(common.Address)
	return &platform.SalePrice{
		Price:        price,
		PaymentToken: paymentToken,
		Seller:       seller,
	}, nil
}
