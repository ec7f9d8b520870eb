package platform

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// ResolveContract returns the contract embedded in sourceURL when pattern
// matches it, and fallback otherwise. pattern's first capture group must be
// the address.
func ResolveContract(fallback common.Address, sourceURL string, pattern *regexp.Regexp) common.Address {
	if sourceURL == "" || pattern == nil {
		return fallback
	}
	match := pattern.FindStringSubmatch(sourceURL)
	if len(match) < 2 || !common.IsHexAddress(match[1]) {
		return fallback
	}
	return common.HexToAddress(match[1])
}
