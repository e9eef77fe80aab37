package domain

import "time"

// HistoryEntry captures one query and the command returned for it.
type HistoryEntry struct {
	Query     string `json:"query" yaml:"query"`
	Response  string `json:"response" yaml:"response"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// NewHistoryEntry stamps query and response with at, formatted as RFC3339 in UTC.
func NewHistoryEntry(query, response string, at time.Time) HistoryEntry {
	return HistoryEntry{
		Query:     query,
		Response:  response,
		Timestamp: at.UTC().Format(TimestampFormat),
	}
}

// Time parses the stored timestamp.
func (e HistoryEntry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, e.Timestamp)
}
