// Package registry maps marketplace urls to the platform that can sell the
// NFT behind them.
package registry

import (
	"regexp"
	"strings"

	"github.com/6529-Collections/nftactions/internal/eth"
	"github.com/6529-Collections/nftactions/internal/metadata"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/6529-Collections/nftactions/internal/platform"
)

// ServiceDeps is what a platform service is built from for one resolution.
type ServiceDeps struct {
	Reader  eth.ContractReader
	Fetcher metadata.Fetcher
}

// NFTPlatform describes one marketplace.
type NFTPlatform struct {
	Key     string
	Name    string
	LogoURL string

	// Pattern decides whether a url belongs to this marketplace. Extract is
	// only called for urls it matches.
	Pattern    *regexp.Regexp
	Extract    func(url string) (*platform.NFTExtraction, error)
	NewService func(deps ServiceDeps) platform.Service

	// APIKey is only surfaced in the platform listing, never handed to a service.
	APIKey string
}

type ReaderSource interface {
	ReaderFor(chainID uint64) (eth.ContractReader, error)
}

// Backends are the process wide collaborators services read through.
type Backends struct {
	Chains  ReaderSource
	Fetcher metadata.Fetcher
}

// Registry is an ordered, immutable list of platforms. Safe for concurrent use.
type Registry struct {
	platforms []NFTPlatform
}

func New(platforms ...NFTPlatform) *Registry {
	return &Registry{platforms: append([]NFTPlatform(nil), platforms...)}
}

// Match returns the first platform whose pattern matches url, with the NFT
// extracted from it.
func (r *Registry) Match(url string) (*NFTPlatform, *platform.NFTExtraction, error) {
	url = strings.TrimSpace(url)
	for _, p := range r.platforms {
		if !p.Pattern.MatchString(url) {
			continue
		}
		nft, err := p.Extract(url)
		if err != nil {
			if nfterrors.KindOf(err) == nfterrors.KindMalformedReference {
				return nil, nil, err
			}
			return nil, nil, nfterrors.Wrap(nfterrors.KindMalformedReference, err, "extracting nft from %s url", p.Name)
		}
		if nft == nil || nft.TokenID == nil {
			return nil, nil, nfterrors.New(nfterrors.KindMalformedReference, "%s url has no token: %s", p.Name, url)
		}
		matched := p
		return &matched, nft, nil
	}
	return nil, nil, nfterrors.New(nfterrors.KindUnsupportedPlatform, "no platform supports %s", url)
}

// Resolve matches url and attaches a service bound to the chain the NFT
// lives on.
func (r *Registry) Resolve(url string, backends Backends) (*NFTPlatform, *platform.NFTExtraction, error) {
	p, nft, err := r.Match(url)
	if err != nil {
		return nil, nil, err
	}
	reader, err := backends.Chains.ReaderFor(nft.ChainID)
	if err != nil {
		return nil, nil, err
	}
	nft.Service = p.NewService(ServiceDeps{
		Reader:  reader,
		Fetcher: backends.Fetcher,
	})
	return p, nft, nil
}

func (r *Registry) Platforms() []NFTPlatform {
	return append([]NFTPlatform(nil), r.platforms...)
}
