// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/kipngetich-lab/TukoShop-App/config"
	"github.com/kipngetich-lab/TukoShop-App/pkg/validate"
)

const defaultBodyLimit = 1 << 20 // 1 MB

func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest and runs struct-tag validation. The body is
// capped at MAX_BODY_BYTES (default 1 MB).
//
// Validation failures come back as (errs, nil) so handlers can return them
// field by field; a malformed, empty, or oversized body is (nil, err).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := decode(r.Body, dest); err != nil {
		return nil, err
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func decode(body io.Reader, dest interface{}) error {
	err := json.NewDecoder(body).Decode(dest)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}
}
