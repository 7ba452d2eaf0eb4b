package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/links"
)

// Error taxonomy shared by all aggregates. Not-found covers both a missing
// entity and one owned by another caller, so existence cannot be probed.
// Conflicts never escape: duplicate appends no-op, layout saves upsert and
// navigation materialization re-reads the winner.
var (
	ErrNotFound        = links.ErrNotFound
	ErrInvalidArgument = errors.New("invalid argument")
)

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
