package domain

import "time"

// MaxSearchHistory is the number of accepted queries kept in history.
const MaxSearchHistory = 10

type SearchEvent struct {
	EventID    string
	Query      string
	Results    int
	OccurredAt time.Time
}
