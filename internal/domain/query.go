package domain

// QueryRequest captures user intent originating from the CLI.
type QueryRequest struct {
	Query string
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Query   string
	Model   string
	Raw     string
	Command string
	// HistoryErr is set when the answer was delivered but could not be recorded.
	HistoryErr error
}
