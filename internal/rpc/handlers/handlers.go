package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"go.uber.org/zap"
)

type Method string
type Path string

type ApiVersion string

const ApiV1 ApiVersion = "v1"

var (
	HTTP_GET    Method = "GET"
	HTTP_POST   Method = "POST"
	HTTP_PUT    Method = "PUT"
	HTTP_DELETE Method = "DELETE"
)

func CreateApiPath(version ApiVersion, path string) Path {
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return Path(fmt.Sprintf("/api/%s/%s", version, path))
}

type MethodHandlers map[Path]map[Method]func(r *http.Request) (any, error)

// RequestError is a client error with the status it should be answered with.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func BadRequest(format string, args ...interface{}) error {
	return &RequestError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &RequestError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var statusByKind = map[nfterrors.Kind]int{
	nfterrors.KindUnsupportedPlatform: http.StatusUnprocessableEntity,
	nfterrors.KindMalformedReference:  http.StatusBadRequest,
	nfterrors.KindSaleNotFound:        http.StatusNotFound,
	nfterrors.KindSaleInvalid:         http.StatusConflict,
	nfterrors.KindMetadataFetchFailed: http.StatusBadGateway,
	nfterrors.KindMetadataIncomplete:  http.StatusUnprocessableEntity,
	nfterrors.KindChainReadFailed:     http.StatusBadGateway,
}

func StatusForError(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if status, ok := statusByKind[nfterrors.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func SetupHandlers(mux *http.ServeMux, handlers MethodHandlers) {
	for path, methodHandlers := range handlers {
		mux.HandleFunc(string(path), func(w http.ResponseWriter, r *http.Request) {
			method := r.Method
			handler, ok := methodHandlers[Method(method)]
			if !ok {
				writeError(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method Not Allowed"})
				return
			}
			resp, err := handler(r)
			if err != nil {
				status := StatusForError(err)
				if status >= http.StatusInternalServerError {
					zap.L().Error("failed to handle request", zap.String("path", r.URL.Path), zap.Error(err))
				} else {
					zap.L().Info("failed to handle request", zap.String("path", r.URL.Path), zap.Error(err))
				}
				writeError(w, status, ErrorResponse{Error: err.Error(), Kind: string(nfterrors.KindOf(err))})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if resp != nil {
				body, err := json.Marshal(resp)
				if err != nil {
					zap.L().Error("failed to encode response", zap.Error(err))
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				_, _ = w.Write(append(body, '\n'))
			}
		})
	}
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Error("failed to encode error response", zap.Error(err))
	}
}
