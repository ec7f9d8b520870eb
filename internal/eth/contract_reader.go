package eth

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractReader performs read-only contract calls on a single chain.
type ContractReader interface {
	Call(ctx context.Context, contract common.Address, contractAbi *abi.ABI, method string, args ...interface{}) ([]interface{}, error)
	HasCode(ctx context.Context, account common.Address) (bool, error)
}

type DefaultContractReader struct {
	client EthClient
}

func NewContractReader(client EthClient) *DefaultContractReader {
	return &DefaultContractReader{client: client}
}

func (r *DefaultContractReader) Call(
	ctx context.Context,
	contract common.Address,
	contractAbi *abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	data, err := contractAbi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call on %s failed: %w", method, contract.Hex(), err)
	}
	// A call to an account without the method (or without code) returns no data
	// instead of reverting.
	if len(result) == 0 && len(contractAbi.Methods[method].Outputs) > 0 {
		return nil, fmt.Errorf("%s call on %s returned no data", method, contract.Hex())
	}

	outputs, err := contractAbi.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return outputs, nil
}

func (r *DefaultContractReader) HasCode(ctx context.Context, account common.Address) (bool, error) {
	code, err := r.client.CodeAt(ctx, account, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read code at %s: %w", account.Hex(), err)
	}
	return len(code) > 0, nil
}

// MustParseABI parses a static ABI definition and panics on failure.
func MustParseABI(name string, definition string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic("failed to parse " + name + " ABI: " + err.Error())
	}
	return &parsed
}
