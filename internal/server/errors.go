package server

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/logging"
)

// Error codes returned in the error envelope.
const (
	codeInvalidRequest      = "invalid_request"
	codeInvalidAnswer       = "invalid_answer"
	codeMissingAnswers      = "missing_answers"
	codeCatalogUnauthorized = "catalog_unauthorized"
	codeCatalogUnavailable  = "catalog_unavailable"
	codeCatalogError        = "catalog_error"
	codeRateLimited         = "rate_limited"
	codeNotFound            = "not_found"
	codeMethodNotAllowed    = "method_not_allowed"
	codeInternal            = "internal_error"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Warn().Str("code", code).Err(err).Msg("api error")
	}
	respondJSON(w, status, errorEnvelope{Error: APIError{Code: code, Message: message}})
}

func respondMissing(w http.ResponseWriter, ids []string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: APIError{
		Code:    codeMissingAnswers,
		Message: "every question needs an answer",
		Missing: ids,
	}})
}

// respondCatalogError maps a catalog failure to a gateway status by kind.
func respondCatalogError(w http.ResponseWriter, err error) {
	switch catalog.KindOf(err) {
	case catalog.KindNotConfigured:
		respondError(w, http.StatusBadGateway, codeCatalogUnauthorized, "catalog credentials are not configured", err)
	case catalog.KindUnauthorized:
		respondError(w, http.StatusBadGateway, codeCatalogUnauthorized, "catalog rejected the configured credentials", err)
	case catalog.KindTransport:
		respondError(w, http.StatusGatewayTimeout, codeCatalogUnavailable, "catalog is unreachable", err)
	default:
		respondError(w, http.StatusBadGateway, codeCatalogError, "catalog request failed", err)
	}
}
