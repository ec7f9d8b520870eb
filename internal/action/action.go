// Package action turns a marketplace url into the arguments of a Lens open
// action that buys the NFT behind it.
package action

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/6529-Collections/nftactions/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

type Resolver interface {
	Resolve(url string, backends registry.Backends) (*registry.NFTPlatform, *platform.NFTExtraction, error)
}

// Request carries the url to resolve and the caller supplied Lens identifiers.
type Request struct {
	URL        string
	DstChainID uint64
	Sender     common.Address
	Quantity   *big.Int

	ProfileOwner              common.Address
	PublicationActedProfileID *big.Int
	PublicationActedID        *big.Int
	ActorProfileID            *big.Int
	ReferrerProfileIDs        []*big.Int
	ReferrerPubIDs            []*big.Int
}

// ActArguments are the arguments of the Lens Hub act() call.
type ActArguments struct {
	PublicationActedProfileID *big.Int       `json:"publicationActedProfileId"`
	PublicationActedID        *big.Int       `json:"publicationActedId"`
	ActorProfileID            *big.Int       `json:"actorProfileId"`
	ReferrerProfileIDs        []*big.Int     `json:"referrerProfileIds"`
	ReferrerPubIDs            []*big.Int     `json:"referrerPubIds"`
	ActionModuleAddress       common.Address `json:"actionModuleAddress"`
	ActionModuleData          hexutil.Bytes  `json:"actionModuleData"`
}

// Purchase summarises what the action buys and for how much.
type Purchase struct {
	Platform      string         `json:"platform"`
	ChainID       uint64         `json:"chainId"`
	Contract      common.Address `json:"contract"`
	TokenID       *big.Int       `json:"tokenId"`
	Quantity      *big.Int       `json:"quantity"`
	Target        common.Address `json:"target"`
	MintSignature string         `json:"mintSignature"`
	TotalPrice    *big.Int       `json:"totalPrice"`
	Currency      common.Address `json:"currency"`
}

type ActionData struct {
	ActArguments ActArguments    `json:"actArguments"`
	UIData       platform.UIData `json:"uiData"`
	Purchase     Purchase        `json:"purchase"`
}

type Assembler struct {
	resolver     Resolver
	backends     registry.Backends
	actionModule common.Address
}

func NewAssembler(resolver Resolver, backends registry.Backends, actionModule common.Address) *Assembler {
	return &Assembler{
		resolver:     resolver,
		backends:     backends,
		actionModule: actionModule,
	}
}

// Assemble resolves req.URL and builds the action that buys req.Quantity
// copies of the NFT. Any failed step fails the whole assembly.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*ActionData, error) {
	url := strings.TrimSpace(req.URL)
	quantity := req.Quantity
	if quantity == nil {
		quantity = big.NewInt(1)
	}
	if quantity.Sign() <= 0 {
		return nil, nfterrors.New(nfterrors.KindMalformedReference, "quantity must be positive, got %s", quantity)
	}

	p, nft, err := a.resolver.Resolve(url, a.backends)
	if err != nil {
		return nil, err
	}
	service := nft.Service

	signature, err := service.MintSignature(ctx, *nft)
	if err != nil {
		return nil, err
	}
	if signature == "" {
		return nil, nfterrors.New(nfterrors.KindSaleNotFound, "%s token %s is not currently purchasable", p.Name, nft.TokenID)
	}

	quote, err := service.Price(ctx, platform.PriceRequest{
		Contract:  nft.Contract,
		TokenID:   nft.TokenID,
		Signature: signature,
		Buyer:     req.Sender,
		Unit:      quantity,
		SourceURL: url,
	})
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.Total == nil || quote.Total.Sign() <= 0 {
		return nil, nfterrors.New(nfterrors.KindSaleInvalid, "%s token %s has no valid sale", p.Name, nft.TokenID)
	}

	uiData, err := service.UIData(ctx, platform.UIDataRequest{
		Signature:  signature,
		Contract:   nft.Contract,
		TokenID:    nft.TokenID,
		DstChainID: req.DstChainID,
		SourceURL:  url,
	})
	if err != nil {
		return nil, err
	}
	if uiData == nil || uiData.NFTName == "" || uiData.NFTURI == "" {
		return nil, nfterrors.New(nfterrors.KindMetadataIncomplete, "%s token %s has no display name or image", p.Name, nft.TokenID)
	}

	args, err := service.Args(ctx, platform.ArgsRequest{
		Contract:     nft.Contract,
		TokenID:      nft.TokenID,
		Sender:       req.Sender,
		Signature:    signature,
		Price:        quote.Total,
		Quantity:     quantity,
		ProfileOwner: req.ProfileOwner,
		SourceURL:    url,
	})
	if err != nil {
		return nil, err
	}

	target, err := service.MinterAddress(ctx, nft.Contract, nft.TokenID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nfterrors.New(nfterrors.KindSaleNotFound, "%s cannot sell contract %s", p.Name, nft.Contract.Hex())
	}

	calldata, err := platform.EncodeCall(signature, args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s purchase: %w", p.Name, err)
	}
	moduleData, err := EncodeModuleData(ModuleData{
		Target:     *target,
		DstChainID: new(big.Int).SetUint64(req.DstChainID),
		Currency:   quote.PaymentToken,
		Price:      quote.Total,
		Calldata:   calldata,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Action assembled",
		zap.String("platform", p.Key),
		zap.Uint64("chainId", nft.ChainID),
		zap.String("contract", nft.Contract.Hex()),
		zap.String("tokenId", nft.TokenID.String()),
		zap.String("totalPrice", quote.Total.String()))

	return &ActionData{
		ActArguments: ActArguments{
			PublicationActedProfileID: orZero(req.PublicationActedProfileID),
			PublicationActedID:        orZero(req.PublicationActedID),
			ActorProfileID:            orZero(req.ActorProfileID),
			ReferrerProfileIDs:        orEmpty(req.ReferrerProfileIDs),
			ReferrerPubIDs:            orEmpty(req.ReferrerPubIDs),
			ActionModuleAddress:       a.actionModule,
			ActionModuleData:          moduleData,
		},
		UIData: *uiData,
		Purchase: Purchase{
			Platform:      p.Key,
			ChainID:       nft.ChainID,
			Contract:      nft.Contract,
			TokenID:       nft.TokenID,
			Quantity:      quantity,
			Target:        *target,
			MintSignature: signature,
			TotalPrice:    quote.Total,
			Currency:      quote.PaymentToken,
		},
	}, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func orEmpty(v []*big.Int) []*big.Int {
	if v == nil {
		return []*big.Int{}
	}
	return v
}
