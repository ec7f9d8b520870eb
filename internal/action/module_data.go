package action

import (
	"fmt"
	"math/big"

	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ModuleData is the payload the action module forwards to the marketplace:
// Calldata is sent to Target on DstChainID, paying Price in Currency.
type ModuleData struct {
	Target     common.Address
	DstChainID *big.Int
	Currency   common.Address
	Price      *big.Int
	Calldata   []byte
}

var moduleDataArguments = abi.Arguments{
	{Name: "target", Type: mustType("address")},
	{Name: "dstChainId", Type: mustType("uint256")},
	{Name: "currency", Type: mustType("address")},
	{Name: "price", Type: mustType("uint256")},
	{Name: "calldata", Type: mustType("bytes")},
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func EncodeModuleData(data ModuleData) ([]byte, error) {
	encoded, err := moduleDataArguments.Pack(data.Target, data.DstChainID, data.Currency, data.Price, data.Calldata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action module data: %w", err)
	}
	return encoded, nil
}

func DecodeModuleData(encoded []byte) (*ModuleData, error) {
	values, err := moduleDataArguments.Unpack(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode action module data: %w", err)
	}
	if len(values) != len(moduleDataArguments) {
		return nil, fmt.Errorf("action module data has %d values", len(values))
	}
	target, _ := values[0].(common.Address)
	dstChainID, _ := values[1].(*big.Int)
	currency, _ := values[2].(common.Address)
	price, _ := values[3].(*big.Int)
	calldata, _ := values[4].([]byte)
	return &ModuleData{
		Target:     target,
		DstChainID: dstChainID,
		Currency:   currency,
		Price:      price,
		Calldata:   calldata,
	}, nil
}

// DecodeAction recovers the module data of action and the purchase
// arguments inside its calldata.
func DecodeAction(action *ActionData) (*ModuleData, []interface{}, error) {
	data, err := DecodeModuleData(action.ActArguments.ActionModuleData)
	if err != nil {
		return nil, nil, err
	}
	args, err := platform.DecodeCall(action.Purchase.MintSignature, data.Calldata)
	if err != nil {
		return nil, nil, err
	}
	return data, args, nil
}
