// Package platformtest provides chain and metadata stubs for marketplace
// service tests.
package platformtest

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/eth/mocks"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ErrReverted = errors.New("execution reverted")

// Chain answers contract calls with ABI encoded values through a mocked
// EthClient, so tests exercise the real ContractReader.
type Chain struct {
	t      *testing.T
	Client *mocks.EthClient
}

func NewChain(t *testing.T) *Chain {
	return &Chain{t: t, Client: mocks.NewEthClient(t)}
}

func (c *Chain) Reader() eth.ContractReader {
	return eth.NewContractReader(c.Client)
}

func (c *Chain) expectCall(contract common.Address, contractAbi *abi.ABI, method string, args []interface{}) *mock.Call {
	input, err := contractAbi.Pack(method, args...)
	require.NoError(c.t, err)
	return c.Client.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.To != nil && *msg.To == contract && bytes.Equal(msg.Data, input)
	}), (*big.Int)(nil))
}

// Returns makes method(args) on contract return outputs.
func (c *Chain) Returns(contract common.Address, contractAbi *abi.ABI, method string, args []interface{}, outputs ...interface{}) {
	encoded, err := contractAbi.Methods[method].Outputs.Pack(outputs...)
	require.NoError(c.t, err)
	c.expectCall(contract, contractAbi, method, args).Return(encoded, nil).Maybe()
}

// Reverts makes method(args) on contract fail the way a missing function does.
func (c *Chain) Reverts(contract common.Address, contractAbi *abi.ABI, method string, args ...interface{}) {
	c.expectCall(contract, contractAbi, method, args).Return(nil, ErrReverted).Maybe()
}

func (c *Chain) HasCode(account common.Address, hasCode bool) {
	code := []byte{}
	if hasCode {
		code = []byte{0x60, 0x80, 0x60, 0x40}
	}
	c.Client.On("CodeAt", mock.Anything, account, (*big.Int)(nil)).Return(code, nil).Maybe()
}

// Fetcher serves metadata documents from memory.
type Fetcher struct {
	Documents map[string]*metadata.Document
	Errors    map[string]error
	Calls     []string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Documents: map[string]*metadata.Document{},
		Errors:    map[string]error{},
	}
}

func (f *Fetcher) Add(uri string, name string, imageURL string) {
	f.Documents[uri] = &metadata.Document{Name: name, Image: imageURL, ImageURL: imageURL}
}

func (f *Fetcher) Fetch(ctx context.Context, uri string) (*metadata.Document, error) {
	f.Calls = append(f.Calls, uri)
	if err, ok := f.Errors[uri]; ok {
		return nil, err
	}
	doc, ok := f.Documents[uri]
	if !ok {
		return nil, nfterrors.New(nfterrors.KindMetadataFetchFailed, "fetching %s returned status 404", uri)
	}
	return doc, nil
}
