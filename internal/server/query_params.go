package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const dateOnlyLayout = "2006-01-02"

func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	}
	return &parsed, nil
}

// actorID resolves the acting user set by the authentication layer upstream.
func actorID(c *gin.Context) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.GetHeader("X-Actor-Id"))
	if raw == "" {
		return 0, newValidationError("performed_by", "invalid_performed_by", "acting user is required")
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return 0, newValidationError("performed_by", "invalid_performed_by", "acting user is not a valid identifier")
	}
	return id, nil
}
