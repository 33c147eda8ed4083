package services

import (
	"errors"
	"strings"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange trims and checks optional YYYY-MM-DD bounds. An empty bound
// stays empty and means the range is open on that side.
func ParseExportRange(rawFrom string, rawTo string) (string, string, error) {
	from := strings.TrimSpace(rawFrom)
	to := strings.TrimSpace(rawTo)

	if from != "" {
		if _, err := ParseEntryDate(from); err != nil {
			return "", "", ErrExportFromDateInvalid
		}
	}
	if to != "" {
		if _, err := ParseEntryDate(to); err != nil {
			return "", "", ErrExportToDateInvalid
		}
	}
	if from != "" && to != "" && to < from {
		return "", "", ErrExportRangeInvalid
	}
	return from, to, nil
}
