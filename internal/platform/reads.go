package platform

import (
	"context"
	"math/big"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Call is a contract read whose failures surface as ChainReadFailed.
func Call(
	ctx context.Context,
	reader eth.ContractReader,
	contract common.Address,
	contractAbi *abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	out, err := reader.Call(ctx, contract, contractAbi, method, args...)
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindChainReadFailed, err, "reading %s on %s", method, contract.Hex())
	}
	if len(out) == 0 {
		return nil, nfterrors.New(nfterrors.KindChainReadFailed, "%s on %s returned nothing", method, contract.Hex())
	}
	return out, nil
}

func CallBigInt(ctx context.Context, reader eth.ContractReader, contract common.Address, contractAbi *abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	out, err := Call(ctx, reader, contract, contractAbi, method, args...)
	if err != nil {
		return nil, err
	}
	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, nfterrors.New(nfterrors.KindChainReadFailed, "%s returned %T, expected uint256", method, out[0])
	}
	return value, nil
}

func CallString(ctx context.Context, reader eth.ContractReader, contract common.Address, contractAbi *abi.ABI, method string, args ...interface{}) (string, error) {
	out, err := Call(ctx, reader, contract, contractAbi, method, args...)
	if err != nil {
		return "", err
	}
	value, ok := out[0].(string)
	if !ok {
		return "", nfterrors.New(nfterrors.KindChainReadFailed, "%s returned %T, expected string", method, out[0])
	}
	return value, nil
}

// OptionalOwner reads owner() and returns nil when the contract does not
// support it. Any failure here is logged, never returned.
func OptionalOwner(ctx context.Context, reader eth.ContractReader, contract common.Address) *common.Address {
	out, err := reader.Call(ctx, contract, OwnableABI, "owner")
	if err != nil {
		zap.L().Warn("Contract owner unavailable, creator unknown",
			zap.String("contract", contract.Hex()),
			zap.Error(err))
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	owner, ok := out[0].(common.Address)
	if !ok || owner == (common.Address{}) {
		return nil
	}
	return &owner
}
