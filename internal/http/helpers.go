package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/core"
)

// parseMonth reads the required month query parameter. Missing or
// non-numeric values fail as invalid parameters; the 1-12 range check
// happens in the month-window resolver.
func parseMonth(query url.Values) (int, error) {
	v := strings.TrimSpace(query.Get("month"))
	if v == "" {
		return 0, fmt.Errorf("%w: month is required", core.ErrInvalidParameter)
	}
	month, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: month %q is not a number", core.ErrInvalidParameter, v)
	}
	return month, nil
}

// parsePositiveInt reads an optional positive integer parameter. A blank
// value yields the default; a present but non-positive or non-numeric
// value is an invalid parameter.
func parsePositiveInt(query url.Values, key string, def int) (int, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", core.ErrInvalidParameter, key, v)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be at least 1", core.ErrInvalidParameter, key)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError logs the failure and responds with the uniform error body.
// Invalid parameters map to 400; everything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrInvalidParameter) {
		status = http.StatusBadRequest
	}

	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"method", r.Method,
		"url", r.URL.Path,
		"status", status)

	writeMessage(w, status, err.Error())
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
