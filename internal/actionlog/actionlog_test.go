package actionlog

import (
	"context"
	"database/sql"
	"math/big"
	"testing"
	"time"

	"github.com/6529-Collections/nftactions/internal/action"
	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/6529-Collections/nftactions/internal/db/testdb"
	"github.com/6529-Collections/nftactions/internal/platform"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(start time.Time) *ActionLogDbImpl {
	clock := start
	return &ActionLogDbImpl{now: func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}}
}

func record(t *testing.T, sqlite *sql.DB, log ActionLogDb, entry *Entry) {
	_, err := db.DoInTx(context.Background(), sqlite, func(txn *sql.Tx) (struct{}, error) {
		return struct{}{}, log.Record(txn, entry)
	})
	require.NoError(t, err)
}

func TestEntryFor(t *testing.T) {
	data := &action.ActionData{
		UIData: platform.UIData{DstChainID: 8453},
		Purchase: action.Purchase{
			Platform:      "zora",
			ChainID:       7777777,
			Contract:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
			TokenID:       big.NewInt(7),
			Quantity:      big.NewInt(2),
			MintSignature: "mintWithRewards(address,uint256,uint256,bytes,address)",
			TotalPrice:    big.NewInt(1_554_000_000_000_000),
		},
	}
	sender := common.HexToAddress("0x2222222222222222222222222222222222222222")

	entry := EntryFor("https://zora.co/collect/zora:0x1111111111111111111111111111111111111111/7", sender, data)
	assert.Equal(t, "zora", entry.Platform)
	assert.Equal(t, uint64(7777777), entry.ChainID)
	assert.Equal(t, uint64(8453), entry.DstChainID)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", entry.Contract)
	assert.Equal(t, "1554000000000000", entry.TotalPrice)
	assert.Equal(t, common.Address{}.Hex(), entry.Currency)
	assert.Equal(t, sender.Hex(), entry.Sender)
	assert.Empty(t, entry.ID)
}

func TestRecordAndGet(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()
	log := newTestLog(time.Unix(1_700_000_000, 0))

	entry := &Entry{
		SourceURL: "https://resale.xyz/token/42",
		Platform:  "resale",
		ChainID:   1,
		Contract:  "0x7777777777777777777777777777777777777777",
		TokenID:   "42",
		Quantity:  "1",
	}
	record(t, sqlite, log, entry)

	_, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_001_000), entry.CreatedAt)

	stored, err := log.Get(sqlite, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, stored)

	missing, err := log.Get(sqlite, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecord_DuplicateIDFails(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()
	log := newTestLog(time.Unix(1_700_000_000, 0))

	entry := &Entry{ID: "fixed", Platform: "resale", TokenID: "1"}
	record(t, sqlite, log, entry)

	_, err := db.DoInTx(context.Background(), sqlite, func(txn *sql.Tx) (struct{}, error) {
		return struct{}{}, log.Record(txn, &Entry{ID: "fixed", Platform: "resale", TokenID: "2"})
	})
	assert.Error(t, err)
}

func TestList_NewestFirstWithFilters(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()
	log := newTestLog(time.Unix(1_700_000_000, 0))

	for _, e := range []*Entry{
		{Platform: "zora", Contract: "0xA", TokenID: "1"},
		{Platform: "resale", Contract: "0xB", TokenID: "42"},
		{Platform: "zora", Contract: "0xA", TokenID: "2"},
		{Platform: "basepaint", Contract: "0xC", TokenID: "412"},
		{Platform: "zora", Contract: "0xA", TokenID: "1"},
	} {
		record(t, sqlite, log, e)
	}

	total, page, err := log.List(sqlite, Filter{}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "1", page[0].TokenID)
	assert.Equal(t, "412", page[1].TokenID)

	total, page, err = log.List(sqlite, Filter{}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 1)
	assert.Equal(t, "zora", page[0].Platform)

	total, page, err = log.List(sqlite, Filter{Platform: "zora", Contract: "0xA", TokenID: "1"}, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	total, page, err = log.List(sqlite, Filter{Platform: "foundation"}, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, page)
}
