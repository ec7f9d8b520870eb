// Package platform defines the capability set every marketplace adapter
// implements, plus the helpers adapters share: fee math, selling-contract
// resolution, display metadata and purchase calldata encoding.
package platform

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type TokenStandard string

const (
	ERC721  TokenStandard = "ERC721"
	ERC1155 TokenStandard = "ERC1155"
)

// NFTExtraction identifies the NFT a marketplace url points at and the
// service that can sell it.
type NFTExtraction struct {
	ChainID  uint64
	Contract common.Address
	TokenID  *big.Int
	Service  Service
}

// SalePrice is an active listing as read from chain. A nil SalePrice or a
// zero Price means there is no sale.
type SalePrice struct {
	Price        *big.Int
	PaymentToken common.Address
	Seller       common.Address
}

// Quote is the total a buyer pays for a number of units, marketplace fee
// included, in the smallest unit of PaymentToken.
type Quote struct {
	Total        *big.Int
	PaymentToken common.Address
}

type UIData struct {
	PlatformName      string          `json:"platformName"`
	PlatformLogoURL   string          `json:"platformLogoUrl"`
	NFTName           string          `json:"nftName"`
	NFTURI            string          `json:"nftUri"`
	TokenStandard     TokenStandard   `json:"nftType"`
	NFTCreatorAddress *common.Address `json:"nftCreatorAddress,omitempty"`
	DstChainID        uint64          `json:"dstChainId"`
}

type UIDataRequest struct {
	Signature  string
	Contract   common.Address
	TokenID    *big.Int
	DstChainID uint64
	SourceURL  string
}

type PriceRequest struct {
	Contract  common.Address
	TokenID   *big.Int
	Signature string
	Buyer     common.Address
	Unit      *big.Int
	SourceURL string
}

type ArgsRequest struct {
	Contract     common.Address
	TokenID      *big.Int
	Sender       common.Address
	Signature    string
	Price        *big.Int
	Quantity     *big.Int
	ProfileOwner common.Address
	SourceURL    string
}

// Service is implemented once per marketplace.
type Service interface {
	// MinterAddress is the contract purchase calls are sent to. nil means the
	// NFT cannot be bought through this service.
	MinterAddress(ctx context.Context, contract common.Address, tokenID *big.Int) (*common.Address, error)

	// MintSignature re-reads the sale and returns the purchase function
	// signature, or "" when the NFT is not purchasable right now.
	MintSignature(ctx context.Context, nft NFTExtraction) (string, error)

	UIData(ctx context.Context, req UIDataRequest) (*UIData, error)

	// Price returns nil when there is no valid sale.
	Price(ctx context.Context, req PriceRequest) (*Quote, error)

	// Args returns the positional arguments for the purchase function.
	Args(ctx context.Context, req ArgsRequest) ([]interface{}, error)

	IsSaleValid(sale *SalePrice) bool
}
