package resale

import (
	"context"
	"math/big"
	"testing"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/6529-Collections/nftactions/internal/platform/platformtest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	market            = common.HexToAddress("0x6666666666666666666666666666666666666666")
	defaultCollection = common.HexToAddress("0x7777777777777777777777777777777777777777")
	thirdParty        = common.HexToAddress("0x8888888888888888888888888888888888888888")
	usdc              = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	seller            = common.HexToAddress("0x9999999999999999999999999999999999999999")
	profileOwner      = common.HexToAddress("0x1212121212121212121212121212121212121212")

	thirdPartyURL = "https://resale.xyz/collection/" + thirdParty.Hex() + "/5"
)

func newTestService(t *testing.T) (*Service, *platformtest.Chain, *platformtest.Fetcher) {
	chain := platformtest.NewChain(t)
	fetcher := platformtest.NewFetcher()
	svc := NewService(chain.Reader(), fetcher, Config{Market: market, DefaultCollection: defaultCollection})
	return svc, chain, fetcher
}

func stubListing(chain *platformtest.Chain, contract common.Address, tokenID int64, price int64) {
	chain.Returns(market, marketABI, "getSalePrice", []interface{}{contract, big.NewInt(tokenID)}, big.NewInt(price), usdc, seller)
}

func TestExtractor(t *testing.T) {
	extract := NewExtractor(defaultCollection)

	nft, err := extract("https://resale.xyz/token/42")
	require.NoError(t, err)
	assert.Equal(t, defaultCollection, nft.Contract)
	assert.Equal(t, "42", nft.TokenID.String())
	assert.Equal(t, eth.ChainEthereum, nft.ChainID)

	nft, err = extract(thirdPartyURL)
	require.NoError(t, err)
	assert.Equal(t, thirdParty, nft.Contract)
	assert.Equal(t, "5", nft.TokenID.String())

	_, err = extract("https://resale.xyz/collection/0x12/5")
	assert.ErrorIs(t, err, nfterrors.ErrMalformedReference)

	_, err = extract("https://resale.xyz/profile/alice")
	assert.ErrorIs(t, err, nfterrors.ErrMalformedReference)

	_, err = NewExtractor(common.Address{})("https://resale.xyz/token/42")
	assert.ErrorIs(t, err, nfterrors.ErrMalformedReference)
}

func TestService_PriceAppliesOnChainFee(t *testing.T) {
	svc, chain, _ := newTestService(t)
	stubListing(chain, defaultCollection, 42, 100)
	chain.Returns(market, marketABI, "feePercent", nil, big.NewInt(3))

	for unit, want := range map[int64]string{1: "103", 2: "206", 10: "1030"} {
		quote, err := svc.Price(context.Background(), platform.PriceRequest{
			Contract: defaultCollection, TokenID: big.NewInt(42), Signature: MintSignature, Unit: big.NewInt(unit),
		})
		require.NoError(t, err)
		assert.Equal(t, want, quote.Total.String(), "unit %d", unit)
		assert.Equal(t, usdc, quote.PaymentToken)
	}
}

func TestService_NoSale(t *testing.T) {
	svc, chain, _ := newTestService(t)
	stubListing(chain, defaultCollection, 1, 0)

	nft := platform.NFTExtraction{ChainID: eth.ChainEthereum, Contract: defaultCollection, TokenID: big.NewInt(1)}

	sig, err := svc.MintSignature(context.Background(), nft)
	require.NoError(t, err)
	assert.Empty(t, sig)

	quote, err := svc.Price(context.Background(), platform.PriceRequest{Contract: defaultCollection, TokenID: big.NewInt(1)})
	require.NoError(t, err)
	assert.Nil(t, quote)

	assert.False(t, svc.IsSaleValid(nil))
	assert.False(t, svc.IsSaleValid(&platform.SalePrice{Price: big.NewInt(0), Seller: seller}))
	assert.True(t, svc.IsSaleValid(&platform.SalePrice{Price: big.NewInt(1), Seller: seller}))
}

func TestService_EmbeddedContractOverridesDefault(t *testing.T) {
	svc, chain, fetcher := newTestService(t)
	stubListing(chain, thirdParty, 5, 1_000)
	chain.Returns(market, marketABI, "feePercent", nil, big.NewInt(5))
	chain.Returns(thirdParty, platform.ERC721MetadataABI, "tokenURI", []interface{}{big.NewInt(5)}, "ar://tx5")
	chain.Reverts(thirdParty, platform.OwnableABI, "owner")
	fetcher.Add("ar://tx5", "Third party #5", "https://arweave.net/img5")

	quote, err := svc.Price(context.Background(), platform.PriceRequest{
		Contract: defaultCollection, TokenID: big.NewInt(5), Unit: big.NewInt(1), SourceURL: thirdPartyURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "1050", quote.Total.String())

	ui, err := svc.UIData(context.Background(), platform.UIDataRequest{
		Contract: defaultCollection, TokenID: big.NewInt(5), DstChainID: eth.ChainEthereum, SourceURL: thirdPartyURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "Third party #5", ui.NFTName)
	assert.Equal(t, platform.ERC721, ui.TokenStandard)
	assert.Nil(t, ui.NFTCreatorAddress)

	args, err := svc.Args(context.Background(), platform.ArgsRequest{
		Contract: defaultCollection, TokenID: big.NewInt(5), Quantity: big.NewInt(1),
		ProfileOwner: profileOwner, SourceURL: thirdPartyURL,
	})
	require.NoError(t, err)
	assert.Equal(t, thirdParty, args[0])
	assert.Equal(t, profileOwner, args[3])
}

func TestService_UIDataRequiresImage(t *testing.T) {
	svc, chain, fetcher := newTestService(t)
	chain.Returns(defaultCollection, platform.ERC721MetadataABI, "tokenURI", []interface{}{big.NewInt(42)}, "ipfs://Qm42")
	chain.Returns(defaultCollection, platform.OwnableABI, "owner", nil, seller)
	fetcher.Errors["ipfs://Qm42"] = nfterrors.New(nfterrors.KindMetadataIncomplete, "(root): image is required")

	_, err := svc.UIData(context.Background(), platform.UIDataRequest{Contract: defaultCollection, TokenID: big.NewInt(42)})
	assert.ErrorIs(t, err, nfterrors.ErrMetadataIncomplete)
}

func TestService_MinterAddress(t *testing.T) {
	svc, _, _ := newTestService(t)
	minter, err := svc.MinterAddress(context.Background(), defaultCollection, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, market, *minter)

	unconfigured := NewService(platformtest.NewChain(t).Reader(), platformtest.NewFetcher(), Config{})
	minter, err = unconfigured.MinterAddress(context.Background(), defaultCollection, big.NewInt(1))
	require.NoError(t, err)
	assert.Nil(t, minter)
}

func TestService_UnconfiguredMarketSellsNothing(t *testing.T) {
	// The chain has no expectations: any read fails the test.
	chain := platformtest.NewChain(t)
	svc := NewService(chain.Reader(), platformtest.NewFetcher(), Config{DefaultCollection: defaultCollection})
	nft := platform.NFTExtraction{ChainID: eth.ChainEthereum, Contract: defaultCollection, TokenID: big.NewInt(1)}

	sig, err := svc.MintSignature(context.Background(), nft)
	require.NoError(t, err)
	assert.Empty(t, sig)

	quote, err := svc.Price(context.Background(), platform.PriceRequest{
		Contract: defaultCollection, TokenID: big.NewInt(1), Signature: MintSignature, Unit: big.NewInt(1),
	})
	require.NoError(t, err)
	assert.Nil(t, quote)
}
