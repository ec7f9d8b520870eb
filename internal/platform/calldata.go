package platform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// ParseSignature splits a canonical function signature such as
// "buy(address,uint256)" into its name and argument types. Tuple
// arguments are not supported.
func ParseSignature(signature string) (string, abi.Arguments, error) {
	open := strings.Index(signature, "(")
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return "", nil, fmt.Errorf("malformed function signature %q", signature)
	}
	name := signature[:open]
	inner := signature[open+1 : len(signature)-1]
	if strings.ContainsAny(inner, "() ") {
		return "", nil, fmt.Errorf("unsupported function signature %q", signature)
	}

	var arguments abi.Arguments
	if inner == "" {
		return name, arguments, nil
	}
	for i, typeName := range strings.Split(inner, ",") {
		typ, err := abi.NewType(typeName, "", nil)
		if err != nil {
			return "", nil, fmt.Errorf("argument %d of %q: %w", i, signature, err)
		}
		arguments = append(arguments, abi.Argument{Type: typ})
	}
	return name, arguments, nil
}

func Selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// EncodeCall builds calldata: the 4 byte selector followed by the ABI
// encoded args.
func EncodeCall(signature string, args []interface{}) ([]byte, error) {
	_, arguments, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	packed, err := arguments.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments for %s: %w", signature, err)
	}
	return append(Selector(signature), packed...), nil
}

func DecodeCall(signature string, data []byte) ([]interface{}, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short")
	}
	if !bytes.Equal(data[:4], Selector(signature)) {
		return nil, fmt.Errorf("calldata selector 0x%x does not match %s", data[:4], signature)
	}
	_, arguments, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	return arguments.Unpack(data[4:])
}
