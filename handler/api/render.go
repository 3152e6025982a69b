package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oxtoacart/bpool"
	"github.com/pandodao/card-transfer/core"
)

var bufpool = bpool.NewBufferPool(64)

// requestError is a malformed request, reported as 400 with its message.
type requestError string

func (e requestError) Error() string {
	return string(e)
}

type errorView struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	buf := bufpool.Get()
	defer bufpool.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func transferStatus(err core.TransferError) int {
	switch err {
	case core.ErrInvalidAmount:
		return http.StatusBadRequest
	case core.ErrNotAuthorized:
		return http.StatusForbidden
	case core.ErrTraceConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		authErr     core.AuthError
		transferErr core.TransferError
		reqErr      requestError
	)

	switch {
	case errors.As(err, &authErr):
		renderJSON(w, http.StatusUnauthorized, errorView{Error: string(authErr)})
	case errors.As(err, &transferErr):
		renderJSON(w, transferStatus(transferErr), errorView{Error: string(transferErr)})
	case errors.As(err, &reqErr):
		renderJSON(w, http.StatusBadRequest, errorView{Error: "invalid_request", Message: reqErr.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		renderJSON(w, http.StatusInternalServerError, errorView{Error: "internal"})
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return requestError("malformed json body")
	}

	return nil
}
