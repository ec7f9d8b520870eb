// Package basepaint sells the previous day's BasePaint canvas as an open
// edition on Base.
package basepaint

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
	Key     = "basepaint"
	Name    = "BasePaint"
	LogoURL = "https://basepaint.xyz/icon.png"

	MintSignature = "mint(uint256,uint256)"
)

var DefaultContract = common.HexToAddress("0xBa5e05cb26b78eDa3A2f8e3b3814726305dcAc83")

var (
	MatchPattern     = regexp.MustCompile(`^https?://(?:www\.)?basepaint\.xyz/`)
	referencePattern = regexp.MustCompile(`^https?://(?:www\.)?basepaint\.xyz/mint/(?:(0x[0-9a-fA-F]{40})/)?(\d+)/?(?:[?#].*)?$`)
	contractPattern  = regexp.MustCompile(`basepaint\.xyz/mint/(0x[0-9a-fA-F]{40})/`)
)

var basepaintABI = eth.MustParseABI("BasePaint", `[
	{"type":"function","name":"today","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"openEditionPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"mint","stateMutability":"payable","inputs":[{"name":"day","type":"uint256"},{"name":"count","type":"uint256"}],"outputs":[]}
]`)

// Extract parses basepaint.xyz/mint/<day>, optionally with a contract
// before the day.
func Extract(url string) (*platform.NFTExtraction, error) {
	match := referencePattern.FindStringSubmatch(url)
	if match == nil {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "not a basepaint mint url: %s", url)
	}
	day, ok := new(big.Int).SetString(match[2], 10)
	if !ok || day.Sign() <= 0 {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "invalid day %q", match[2])
	}
	return &platform.NFTExtraction{
		ChainID:  eth.ChainBase,
		Contract: platform.ResolveContract(DefaultContract, url, contractPattern),
		TokenID:  day,
	}, nil
}

type Service struct {
	reader     eth.ContractReader
	fetcher    metadata.Fetcher
	feePercent *big.Int
}

func NewService(reader eth.ContractReader, fetcher metadata.Fetcher, feePercent uint64) *Service {
	return &Service{
		reader:     reader,
		fetcher:    fetcher,
		feePercent: new(big.Int).SetUint64(feePercent),
	}
}

func (s *Service) MinterAddress(ctx context.Context, contract common.Address, tokenID *big.Int) (*common.Address, error) {
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

	return platform.BuildUIData(ctx, s.fetcher,
		platform.Branding{Name: Name, LogoURL: LogoURL},
		platform.ERC1155,
		metadata.ExpandTokenID(uri, req.TokenID),
		platform.OptionalOwner(ctx, s.reader, contract),
		req.DstChainID)
}

func (s *Service) Price(ctx context.Context, req platform.PriceRequest) (*platform.Quote, error) {
	contract := platform.ResolveContract(req.Contract, req.SourceURL, contractPattern)
	sale, err := s.sale(ctx, contract, req.TokenID)
	if err != nil {
		return nil, err
	}
	unit := req.Unit
	if unit == nil || unit.Sign() <= 0 {
		unit = big.NewInt(1)
	}
	return platform.QuoteSale(sale, s.feePercent, unit), nil
}

func (s *Service) Args(ctx context.Context, req platform.ArgsRequest) ([]interface{}, error) {
	count := req.Quantity
	if count == nil || count.Sign() <= 0 {
		count = big.NewInt(1)
	}
	return []interface{}{req.TokenID, count}, nil
}

func (s *Service) IsSaleValid(sale *platform.SalePrice) bool {
	return platform.IsSaleValid(sale)
}

// Only yesterday's canvas is on sale; today's is still being painted.
func (s *Service) sale(ctx context.Context, contract common.Address, day *big.Int) (*platform.SalePrice, error) {
	today, err := platform.CallBigInt(ctx, s.reader, contract, basepaintABI, "today")
	if err != nil {
		return nil, err
	}
	if new(big.Int).Sub(today, big.NewInt(1)).Cmp(day) != 0 {
		return nil, nil
	}

	price, err := platform.CallBigInt(ctx, s.reader, contract, basepaintABI, "openEditionPrice")
	if err != nil {
		return nil, err
	}
	return &platform.SalePrice{Price: price, Seller: contract}, nil
}
