package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryBool treats an absent parameter as false; only "true"/"false"
// (and 1/0) are accepted otherwise.
func ParseQueryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseImageSlot reads the mandatory slot parameter of the image endpoints.
func ParseImageSlot(r *http.Request) (enums.ImageSlot, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("slot"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "slot query parameter is required")
	}
	slot, err := enums.ParseImageSlot(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown image slot").WithDetails(map[string]any{"slot": raw})
	}
	return slot, nil
}

// ParseInt64 reads a numeric path or query value such as a row id.
func ParseInt64(raw string, field string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "identifier must be a positive integer").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
