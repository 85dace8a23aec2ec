package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Export renders the whole collection, oldest first, as "csv" or "json".
// It returns the payload and its content type.
func (s *MoodService) Export(format string) ([]byte, string, error) {
	logs := s.snapshot()
	sortByDate(logs, false)

	switch strings.ToLower(format) {
	case "csv":
		var buffer bytes.Buffer
		writer := csv.NewWriter(&buffer)
		if err := writer.Write([]string{"ID", "Date", "Mood", "Journal"}); err != nil {
			return nil, "", err
		}
		for _, log := range logs {
			if err := writer.Write([]string{log.ID, log.Date, string(log.Mood), log.Journal}); err != nil {
				return nil, "", err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, "", err
		}
		return buffer.Bytes(), "text/csv", nil

	case "json", "":
		data, err := json.Marshal(logs)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
