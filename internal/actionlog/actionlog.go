// Package actionlog keeps a history of assembled actions in SQLite.
package actionlog

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/6529-Collections/nftactions/internal/action"
	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Entry struct {
	ID            string `json:"id"`
	SourceURL     string `json:"sourceUrl"`
	Platform      string `json:"platform"`
	ChainID       uint64 `json:"chainId"`
	DstChainID    uint64 `json:"dstChainId"`
	Contract      string `json:"contract"`
	TokenID       string `json:"tokenId"`
	Quantity      string `json:"quantity"`
	TotalPrice    string `json:"totalPrice"`
	Currency      string `json:"currency"`
	Sender        string `json:"sender"`
	MintSignature string `json:"mintSignature"`
	CreatedAt     int64  `json:"createdAt"`
}

func (e *Entry) ScanRow(scanner db.RowScanner) error {
	return scanner.Scan(
		&e.ID,
		&e.SourceURL,
		&e.Platform,
		&e.ChainID,
		&e.DstChainID,
		&e.Contract,
		&e.TokenID,
		&e.Quantity,
		&e.TotalPrice,
		&e.Currency,
		&e.Sender,
		&e.MintSignature,
		&e.CreatedAt,
	)
}

// EntryFor describes an action assembled for sourceURL on behalf of sender.
func EntryFor(sourceURL string, sender common.Address, data *action.ActionData) *Entry {
	purchase := data.Purchase
	return &Entry{
		SourceURL:     sourceURL,
		Platform:      purchase.Platform,
		ChainID:       purchase.ChainID,
		DstChainID:    data.UIData.DstChainID,
		Contract:      purchase.Contract.Hex(),
		TokenID:       purchase.TokenID.String(),
		Quantity:      purchase.Quantity.String(),
		TotalPrice:    purchase.TotalPrice.String(),
		Currency:      purchase.Currency.Hex(),
		Sender:        sender.Hex(),
		MintSignature: purchase.MintSignature,
	}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Platform string
	Contract string
	TokenID  string
}

type ActionLogDb interface {
	Record(txn *sql.Tx, entry *Entry) error
	Get(rq db.QueryRunner, id string) (*Entry, error)
	List(rq db.QueryRunner, filter Filter, pageSize int, page int) (total int, entries []*Entry, err error)
}

func NewActionLogDb() ActionLogDb {
	return &ActionLogDbImpl{now: time.Now}
}

type ActionLogDbImpl struct {
	now func() time.Time
}

var columns = []string{
	"id", "source_url", "platform", "chain_id", "dst_chain_id", "contract", "token_id",
	"quantity", "total_price", "currency", "sender", "mint_signature", "created_at",
}

// Record stores entry, assigning its ID and CreatedAt when unset.
func (a *ActionLogDbImpl) Record(txn *sql.Tx, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = a.now().UnixMilli()
	}

	_, err := txn.Exec(`
		INSERT INTO action_log (`+strings.Join(columns, ", ")+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SourceURL,
		entry.Platform,
		entry.ChainID,
		entry.DstChainID,
		entry.Contract,
		entry.TokenID,
		entry.Quantity,
		entry.TotalPrice,
		entry.Currency,
		entry.Sender,
		entry.MintSignature,
		entry.CreatedAt,
	)
	if err != nil {
		zap.L().Error("Failed to record action", zap.String("id", entry.ID), zap.Error(err))
		return err
	}
	return nil
}

func (a *ActionLogDbImpl) Get(rq db.QueryRunner, id string) (*Entry, error) {
	entry := &Entry{}
	err := entry.ScanRow(rq.QueryRow(`SELECT `+strings.Join(columns, ", ")+` FROM action_log WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns one page of entries, newest first.
func (a *ActionLogDbImpl) List(rq db.QueryRunner, filter Filter, pageSize int, page int) (total int, entries []*Entry, err error) {
	var conditions []string
	var params []interface{}
	if filter.Platform != "" {
		conditions = append(conditions, "platform = ?")
		params = append(params, filter.Platform)
	}
	if filter.Contract != "" {
		conditions = append(conditions, "contract = ?")
		params = append(params, filter.Contract)
	}
	if filter.TokenID != "" {
		conditions = append(conditions, "token_id = ?")
		params = append(params, filter.TokenID)
	}

	return db.QueryPage(rq, db.PageQuery{
		Table:     "action_log",
		Columns:   columns,
		Where:     strings.Join(conditions, " AND "),
		Params:    params,
		OrderBy:   []string{"created_at", "id"},
		Direction: db.QueryDirectionDesc,
		Page:      page,
		PageSize:  pageSize,
	}, func() *Entry { return &Entry{} })
}
