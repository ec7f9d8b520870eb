package metadata

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"go.uber.org/zap"
)

const maxDocumentSize = 5 << 20

// Document is the subset of an NFT metadata JSON document we rely on.
type Document struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	// ImageURL is Image rewritten to something a browser can load.
	ImageURL string `json:"-"`
}

type Fetcher interface {
	Fetch(ctx context.Context, uri string) (*Document, error)
}

type HTTPFetcher struct {
	client  *http.Client
	gateway string
}

func NewHTTPFetcher(gateway string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		gateway: gateway,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) (*Document, error) {
	raw, err := f.FetchRaw(ctx, uri)
	if err != nil {
		return nil, err
	}
	return Parse(raw, f.gateway)
}

// FetchRaw returns the undecoded document behind uri. data: URIs are decoded
// in place; everything else goes over HTTP.
func (f *HTTPFetcher) FetchRaw(ctx context.Context, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}

	target := ResolveURI(uri, f.gateway)
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "invalid metadata uri %q", uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "failed to build request for %s", target)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "failed to fetch %s", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nfterrors.New(nfterrors.KindMetadataFetchFailed, "fetching %s returned status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "failed to read %s", target)
	}
	zap.L().Debug("Fetched NFT metadata", zap.String("uri", uri), zap.Int("bytes", len(body)))
	return body, nil
}

// ResolveURI rewrites ipfs:// and ar:// locations to plain https urls.
func ResolveURI(uri string, gateway string) string {
	switch {
	case strings.HasPrefix(uri, "ipfs://ipfs/"):
		return joinGateway(gateway, strings.TrimPrefix(uri, "ipfs://ipfs/"))
	case strings.HasPrefix(uri, "ipfs://"):
		return joinGateway(gateway, strings.TrimPrefix(uri, "ipfs://"))
	case strings.HasPrefix(uri, "ar://"):
		return "https://arweave.net/" + strings.TrimPrefix(uri, "ar://")
	}
	return uri
}

// IsImmutable reports whether the content behind uri can never change.
func IsImmutable(uri string) bool {
	return strings.HasPrefix(uri, "ipfs://") ||
		strings.HasPrefix(uri, "ar://") ||
		strings.HasPrefix(uri, "data:")
}

// ExpandTokenID substitutes the ERC-1155 {id} placeholder with the
// zero-padded 64 character hex token id.
func ExpandTokenID(uri string, tokenID *big.Int) string {
	if !strings.Contains(uri, "{id}") {
		return uri
	}
	return strings.ReplaceAll(uri, "{id}", fmt.Sprintf("%064x", tokenID))
}

func joinGateway(gateway string, path string) string {
	return strings.TrimSuffix(gateway, "/") + "/" + strings.TrimPrefix(path, "/")
}

func decodeDataURI(uri string) ([]byte, error) {
	header, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return nil, nfterrors.New(nfterrors.KindMetadataFetchFailed, "malformed data uri")
	}
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "invalid base64 in data uri")
		}
		return decoded, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "invalid escaping in data uri")
	}
	return []byte(unescaped), nil
}
