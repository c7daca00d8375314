// auction/api/pagination.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
)

const (
	DefaultSkip  int64 = 0
	DefaultLimit int64 = 1000
	MaxLimit     int64 = 1000
)

// ParseSkipLimit parses one pagination query value. Empty means absent and yields
// defaultValue. Anything but plain decimal digits is a BadRequest. A positive
// max clamps the result.
func ParseSkipLimit(param, raw string, defaultValue, max int64) (int64, error) {
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, api.NewBadRequest(fmt.Sprintf("Invalid %s value '%s'. Must be a non-negative integer.", param, raw))
	}
	if max > 0 && n > max {
		return max, nil
	}
	return n, nil
}

// parsePagination reads skip then limit from the query string. A limit of 0 means
// "unspecified" and falls back to the default rather than returning everything.
func parsePagination(r *http.Request) (skip, limit int64, err error) {
	q := r.URL.Query()
	skip, err = ParseSkipLimit("skip", q.Get("skip"), DefaultSkip, 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = ParseSkipLimit("limit", q.Get("limit"), DefaultLimit, MaxLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return skip, limit, nil
}
