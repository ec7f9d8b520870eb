package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingFetcher(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/ipfs/QmBad":
			_, _ = w.Write([]byte(`{"name":"no image"}`))
		default:
			_, _ = w.Write([]byte(`{"name":"Cached","image":"ipfs://QmImg"}`))
		}
	}))
	defer server.Close()

	badgerDb, err := db.OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	defer badgerDb.Close()

	fetcher := NewCachingFetcher(NewHTTPFetcher(server.URL+"/ipfs/", time.Second), badgerDb)

	t.Run("immutable uri is fetched once", func(t *testing.T) {
		hits.Store(0)
		for i := 0; i < 3; i++ {
			doc, err := fetcher.Fetch(context.Background(), "ipfs://QmGood")
			require.NoError(t, err)
			assert.Equal(t, "Cached", doc.Name)
			assert.Equal(t, server.URL+"/ipfs/QmImg", doc.ImageURL)
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("mutable uri always hits the network", func(t *testing.T) {
		hits.Store(0)
		for i := 0; i < 2; i++ {
			_, err := fetcher.Fetch(context.Background(), server.URL+"/api/1")
			require.NoError(t, err)
		}
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("invalid documents are not cached", func(t *testing.T) {
		hits.Store(0)
		for i := 0; i < 2; i++ {
			_, err := fetcher.Fetch(context.Background(), "ipfs://QmBad")
			require.Error(t, err)
		}
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("only immutable documents are listed", func(t *testing.T) {
		var uris []string
		err := ForEachCached(badgerDb, func(uri string, raw []byte) error {
			uris = append(uris, uri)
			assert.Contains(t, string(raw), `"Cached"`)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ipfs://QmGood"}, uris)
	})
}
