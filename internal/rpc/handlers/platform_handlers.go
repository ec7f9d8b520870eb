package handlers

import (
	"net/http"

	"github.com/6529-Collections/nftactions/internal/registry"
)

type PlatformLister interface {
	Platforms() []registry.NFTPlatform
}

type PlatformResponse struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	LogoURL          string `json:"logoUrl"`
	Pattern          string `json:"pattern"`
	ApiKeyConfigured bool   `json:"apiKeyConfigured"`
}

func PlatformsGetHandler(r *http.Request, platforms PlatformLister) ([]PlatformResponse, error) {
	descriptors := platforms.Platforms()
	resp := make([]PlatformResponse, 0, len(descriptors))
	for _, p := range descriptors {
		pattern := ""
		if p.Pattern != nil {
			pattern = p.Pattern.String()
		}
		resp = append(resp, PlatformResponse{
			Key:              p.Key,
			Name:             p.Name,
			LogoURL:          p.LogoURL,
			Pattern:          pattern,
			ApiKeyConfigured: p.APIKey != "",
		})
	}
	return resp, nil
}
