package platform

import (
	"context"

	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/ethereum/go-ethereum/common"
)

// Branding is the display identity of a marketplace.
type Branding struct {
	Name    string
	LogoURL string
}

// BuildUIData fetches the token's metadata document and combines it with the
// on-chain facts the service already read. Missing name or image fails.
func BuildUIData(
	ctx context.Context,
	fetcher metadata.Fetcher,
	branding Branding,
	standard TokenStandard,
	tokenURI string,
	creator *common.Address,
	dstChainID uint64,
) (*UIData, error) {
	if tokenURI == "" {
		return nil, nfterrors.New(nfterrors.KindMetadataFetchFailed, "token has no metadata uri")
	}
	doc, err := fetcher.Fetch(ctx, tokenURI)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" || doc.ImageURL == "" {
		return nil, nfterrors.New(nfterrors.KindMetadataIncomplete, "metadata at %s lacks a name or image", tokenURI)
	}

	return &UIData{
		PlatformName:      branding.Name,
		PlatformLogoURL:   branding.LogoURL,
		NFTName:           doc.Name,
		NFTURI:            doc.ImageURL,
		TokenStandard:     standard,
		NFTCreatorAddress: creator,
		DstChainID:        dstChainID,
	}, nil
}
