package handlers

import (
	"net/http"
)

type ChainLister interface {
	ChainIDs() []uint64
}

type StatusResponse struct {
	Status string   `json:"status"`
	Chains []uint64 `json:"chains"`
}

func StatusGetHandler(r *http.Request, chains ChainLister) (StatusResponse, error) {
	ids := chains.ChainIDs()
	if ids == nil {
		ids = []uint64{}
	}
	return StatusResponse{Status: "OK", Chains: ids}, nil
}
