// Package zora sells ERC-1155 tokens minted through Zora's fixed price sale
// strategy.
package zora

import (
	"context"
	"math/big"
	"regexp"
	"time"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	Key     = "zora"
	Name    = "Zora"
	LogoURL = "https://zora.co/assets/icon.png"

	MintSignature = "mintWithRewards(address,uint256,uint256,bytes,address)"
)

var FixedPriceStrategy = common.HexToAddress("0x04E2516A2c207E84a1839755675dfd8eF6302F0a")

var (
	MatchPattern     = regexp.MustCompile(`^https?://(?:www\.)?zora\.co/collect/`)
	referencePattern = regexp.MustCompile(`^https?://(?:www\.)?zora\.co/collect/([a-z]+):(0x[0-9a-fA-F]{40})/(\d+)/?(?:[?#].*)?$`)
	contractPattern  = regexp.MustCompile(`zora\.co/collect/[a-z]+:(0x[0-9a-fA-F]{40})`)
)

var strategyABI = eth.MustParseABI("ZoraFixedPriceSaleStrategy", `[
	{"type":"function","name":"sale","stateMutability":"view",
	 "inputs":[{"name":"tokenContract","type":"address"},{"name":"tokenId","type":"uint256"}],
	 "outputs":[{"name":"","type":"tuple","components":[
		{"name":"saleStart","type":"uint64"},
		{"name":"saleEnd","type":"uint64"},
		{"name":"maxTokensPerAddress","type":"uint64"},
		{"name":"pricePerToken","type":"uint96"},
		{"name":"fundsRecipient","type":"address"}]}]}
]`)

var creatorABI = eth.MustParseABI("ZoraCreator1155", `[
	{"type":"function","name":"mintFee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`)

var minterArgumentsABI = abi.Arguments{{Type: mustType("address")}}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// SalesConfig mirrors the strategy's per-token sale struct.
type SalesConfig struct {
	SaleStart           uint64
	SaleEnd             uint64
	MaxTokensPerAddress uint64
	PricePerToken       *big.Int
	FundsRecipient      common.Address
}

// Extract parses zora.co/collect/<network>:<contract>/<tokenId>.
func Extract(url string) (*platform.NFTExtraction, error) {
	match := referencePattern.FindStringSubmatch(url)
	if match == nil {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "not a zora token url: %s", url)
	}
	chainID, ok := eth.ChainIDForPrefix(match[1])
	if !ok {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "unknown zora network %q", match[1])
	}
	tokenID, ok := new(big.Int).SetString(match[3], 10)
	if !ok {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "invalid token id %q", match[3])
	}
	return &platform.NFTExtraction{
		ChainID:  chainID,
		Contract: common.HexToAddress(match[2]),
		TokenID:  tokenID,
	}, nil
}

type Service struct {
	reader     eth.ContractReader
	fetcher    metadata.Fetcher
	feePercent *big.Int
	now        func() time.Time
}

func NewService(reader eth.ContractReader, fetcher metadata.Fetcher, feePercent uint64) *Service {
	return &Service{
		reader:     reader,
		fetcher:    fetcher,
		feePercent: new(big.Int).SetUint64(feePercent),
		now:        time.Now,
	}
}

// Creator contracts receive the mint call themselves.
func (s *Service) MinterAddress(ctx context.Context, contract common.Address, tokenID *big.Int) (*common.Address, error) {
	hasCode, err := s.reader.HasCode(ctx, contract)
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindChainReadFailed, err, "checking zora contract")
	}
	if !hasCode {
		return nil, nil
	}
	return &contract, nil
}

func (s *Service) MintSignature(ctx context.Context, nft platform.NFTExtraction) (string, error) {
	sale, err := s.sale(ctx, nft.Contract, nft.TokenID)
	if err != nil {
		return "", err
	}
	if !s.IsSaleValid(sale) {
		return "", nil
	}
	return MintSignature, nil
}

func (s *Service) UIData(ctx context.Context, req platform.UIDataRequest) (*platform.UIData, error) {
	contract := platform.ResolveContract(req.Contract, req.SourceURL, contractPattern)

	uri, err := platform.CallString(ctx, s.reader, contract, platform.ERC1155MetadataABI, "uri", req.TokenID)
	if err != nil {
		return nil, err
	}
	creator := platform.OptionalOwner(ctx, s.reader, contract)

	return platform.BuildUIData(ctx, s.fetcher,
		platform.Branding{Name: Name, LogoURL: LogoURL},
		platform.ERC1155,
		metadata.ExpandTokenID(uri, req.TokenID),
		creator,
		req.DstChainID)
}

func (s *Service) Price(ctx context.Context, req platform.PriceRequest) (*platform.Quote, error) {
	contract := platform.ResolveContract(req.Contract, req.SourceURL, contractPattern)
	sale, err := s.sale(ctx, contract, req.TokenID)
	if err != nil {
		return nil, err
	}
	if !s.IsSaleValid(sale) {
		return nil, nil
	}

	// mintWithRewards requires the protocol's flat per token fee on top of
	// the sale price.
	mintFee, err := platform.CallBigInt(ctx, s.reader, contract, creatorABI, "mintFee")
	if err != nil {
		return nil, err
	}
	perToken := &platform.SalePrice{
		Price:        new(big.Int).Add(sale.Price, mintFee),
		PaymentToken: sale.PaymentToken,
		Seller:       sale.Seller,
	}
	return platform.QuoteSale(perToken, s.feePercent, unitOrOne(req.Unit)), nil
}

func (s *Service) Args(ctx context.Context, req platform.ArgsRequest) ([]interface{}, error) {
	minterArguments, err := minterArgumentsABI.Pack(req.ProfileOwner)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		FixedPriceStrategy,
		req.TokenID,
		unitOrOne(req.Quantity),
		minterArguments,
		req.Sender,
	}, nil
}

func (s *Service) IsSaleValid(sale *platform.SalePrice) bool {
	return platform.IsSaleValid(sale)
}

// sale returns nil when the token has no sale configured or the current time
// is outside its sale window.
func (s *Service) sale(ctx context.Context, contract common.Address, tokenID *big.Int) (*platform.SalePrice, error) {
	out, err := platform.Call(ctx, s.reader, FixedPriceStrategy, strategyABI, "sale", contract, tokenID)
	if err != nil {
		return nil, err
	}
	cfg := *abi.ConvertType(out[0], new(SalesConfig)).(*SalesConfig)

	now := uint64(s.now().Unix())
	if now < cfg.SaleStart || (cfg.SaleEnd != 0 && now > cfg.SaleEnd) {
		return nil, nil
	}
	return &platform.SalePrice{
		Price:  cfg.PricePerToken,
		Seller: cfg.FundsRecipient,
	}, nil
}

func unitOrOne(unit *big.Int) *big.Int {
	if unit == nil || unit.Sign() <= 0 {
		return big.NewInt(1)
	}
	return unit
}
