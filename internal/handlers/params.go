package handlers

import (
	"fmt"
	"strconv"
	"time"

	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// uintParam reads a positive numeric path parameter, answering 400 when it is malformed.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.BadRequest(c, fmt.Sprintf("Invalid %s: %q", name, raw))
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
	}
	return t, nil
}
