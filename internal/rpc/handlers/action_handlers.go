package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/6529-Collections/nftactions/internal/action"
	"github.com/6529-Collections/nftactions/internal/actionlog"
	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 1 << 20

type ActionAssembler interface {
	Assemble(ctx context.Context, req action.Request) (*action.ActionData, error)
}

// ActionRequest is the POST body. Numeric fields accept decimal or 0x hex.
type ActionRequest struct {
	URL                       string   `json:"url"`
	DstChainID                uint64   `json:"dstChainId"`
	Sender                    string   `json:"sender"`
	Quantity                  string   `json:"quantity"`
	ProfileOwner              string   `json:"profileOwner"`
	PublicationActedProfileID string   `json:"publicationActedProfileId"`
	PublicationActedID        string   `json:"publicationActedId"`
	ActorProfileID            string   `json:"actorProfileId"`
	ReferrerProfileIDs        []string `json:"referrerProfileIds"`
	ReferrerPubIDs            []string `json:"referrerPubIds"`
}

type ActionResponse struct {
	ID string `json:"id,omitempty"`
	*action.ActionData
}

var actionLogDb actionlog.ActionLogDb = actionlog.NewActionLogDb()

// ActionsPostHandler assembles the action for the posted url and records it.
func ActionsPostHandler(r *http.Request, assembler ActionAssembler, sqlite *sql.DB, timeout time.Duration) (ActionResponse, error) {
	var body ActionRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return ActionResponse{}, BadRequest("invalid request body: %v", err)
	}

	req, err := body.toRequest()
	if err != nil {
		return ActionResponse{}, err
	}

	ctx := r.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data, err := assembler.Assemble(ctx, req)
	if err != nil {
		return ActionResponse{}, err
	}

	resp := ActionResponse{ActionData: data}
	if sqlite == nil {
		return resp, nil
	}

	entry := actionlog.EntryFor(req.URL, req.Sender, data)
	_, err = db.DoInTx(r.Context(), sqlite, func(txn *sql.Tx) (struct{}, error) {
		return struct{}{}, actionLogDb.Record(txn, entry)
	})
	if err != nil {
		// The action itself is valid, so it is returned without an id.
		zap.L().Error("Failed to record assembled action", zap.String("url", req.URL), zap.Error(err))
		return resp, nil
	}
	resp.ID = entry.ID
	return resp, nil
}

func (body ActionRequest) toRequest() (action.Request, error) {
	url := strings.TrimSpace(body.URL)
	if url == "" {
		return action.Request{}, BadRequest("url is required")
	}

	sender, err := parseAddress("sender", body.Sender)
	if err != nil {
		return action.Request{}, err
	}
	profileOwner, err := parseAddress("profileOwner", body.ProfileOwner)
	if err != nil {
		return action.Request{}, err
	}

	quantity := big.NewInt(1)
	if body.Quantity != "" {
		if quantity, err = parseNumber("quantity", body.Quantity); err != nil {
			return action.Request{}, err
		}
		if quantity.Sign() <= 0 {
			return action.Request{}, BadRequest("quantity must be at least 1")
		}
	}

	req := action.Request{
		URL:          url,
		DstChainID:   body.DstChainID,
		Sender:       sender,
		Quantity:     quantity,
		ProfileOwner: profileOwner,
	}
	if req.PublicationActedProfileID, err = parseNumber("publicationActedProfileId", body.PublicationActedProfileID); err != nil {
		return action.Request{}, err
	}
	if req.PublicationActedID, err = parseNumber("publicationActedId", body.PublicationActedID); err != nil {
		return action.Request{}, err
	}
	if req.ActorProfileID, err = parseNumber("actorProfileId", body.ActorProfileID); err != nil {
		return action.Request{}, err
	}
	if req.ReferrerProfileIDs, err = parseNumbers("referrerProfileIds", body.ReferrerProfileIDs); err != nil {
		return action.Request{}, err
	}
	if req.ReferrerPubIDs, err = parseNumbers("referrerPubIds", body.ReferrerPubIDs); err != nil {
		return action.Request{}, err
	}
	if len(req.ReferrerProfileIDs) != len(req.ReferrerPubIDs) {
		return action.Request{}, BadRequest("referrerProfileIds and referrerPubIds must have the same length")
	}
	return req, nil
}

func parseAddress(field string, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, BadRequest("%s is not an address: %q", field, value)
	}
	return common.HexToAddress(value), nil
}

func parseNumber(field string, value string) (*big.Int, error) {
	n, ok := math.ParseBig256(strings.TrimSpace(value))
	if !ok || n.Sign() < 0 {
		return nil, BadRequest("%s is not a uint256: %q", field, value)
	}
	return n, nil
}

func parseNumbers(field string, values []string) ([]*big.Int, error) {
	numbers := make([]*big.Int, 0, len(values))
	for _, value := range values {
		n, err := parseNumber(field, value)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// ActionsGetHandler serves /api/v1/actions and /api/v1/actions/<id>.
func ActionsGetHandler(r *http.Request, sqlite *sql.DB) (any, error) {
	// /api/v1/actions/<id> => parts = ["api","v1","actions","<id>"]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) > 3 && parts[3] != "" {
		return ActionGetHandler(r, sqlite, parts[3])
	}
	return ActionsGetListHandler(r, sqlite)
}

func ActionsGetListHandler(r *http.Request, sqlite *sql.DB) (PaginatedResponse[*actionlog.Entry], error) {
	page, pageSize, _ := ExtractPagination(r)

	query := r.URL.Query()
	filter := actionlog.Filter{
		Platform: query.Get("platform"),
		TokenID:  query.Get("token_id"),
	}
	if contract := query.Get("contract"); contract != "" {
		if !common.IsHexAddress(contract) {
			return PaginatedResponse[*actionlog.Entry]{}, BadRequest("contract is not an address: %q", contract)
		}
		filter.Contract = common.HexToAddress(contract).Hex()
	}

	total, entries, err := actionLogDb.List(sqlite, filter, pageSize, page)
	if err != nil {
		return PaginatedResponse[*actionlog.Entry]{}, err
	}

	resp := PaginatedResponse[*actionlog.Entry]{
		Page:     page,
		PageSize: pageSize,
		Data:     entries,
	}
	resp.ReturnPaginatedData(r, total)
	return resp, nil
}

func ActionGetHandler(r *http.Request, sqlite *sql.DB, id string) (*actionlog.Entry, error) {
	entry, err := actionLogDb.Get(sqlite, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, NotFound("action %s not found", id)
	}
	return entry, nil
}
