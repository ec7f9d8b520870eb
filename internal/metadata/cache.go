package metadata

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const documentPrefix = "metadata:document:"

// CachingFetcher keeps validated documents for content-addressed uris in
// badger. Mutable (http) uris always go to the network.
type CachingFetcher struct {
	inner *HTTPFetcher
	db    *badger.DB
}

func NewCachingFetcher(inner *HTTPFetcher, db *badger.DB) *CachingFetcher {
	return &CachingFetcher{inner: inner, db: db}
}

func (c *CachingFetcher) Fetch(ctx context.Context, uri string) (*Document, error) {
	if !IsImmutable(uri) {
		return c.inner.Fetch(ctx, uri)
	}

	if raw, ok := c.get(uri); ok {
		doc, err := Parse(raw, c.inner.gateway)
		if err == nil {
			return doc, nil
		}
		zap.L().Warn("Discarding unreadable cached metadata", zap.String("uri", uri), zap.Error(err))
	}

	raw, err := c.inner.FetchRaw(ctx, uri)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(raw, c.inner.gateway)
	if err != nil {
		return nil, err
	}

	if err := c.put(uri, raw); err != nil {
		zap.L().Warn("Failed to cache metadata", zap.String("uri", uri), zap.Error(err))
	}
	return doc, nil
}

func (c *CachingFetcher) get(uri string) ([]byte, bool) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(documentPrefix + uri))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			zap.L().Warn("Failed to read metadata cache", zap.String("uri", uri), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (c *CachingFetcher) put(uri string, raw []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(documentPrefix+uri), raw)
	})
}

// ForEachCached calls fn with every cached uri and its raw document, in key
// order. Iteration stops at the first error fn returns.
func ForEachCached(db *badger.DB, fn func(uri string, raw []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			uri := string(item.Key()[len(documentPrefix):])
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(uri, raw); err != nil {
				return err
			}
		}
		return nil
	})
}
