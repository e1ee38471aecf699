package api

const postCommandsMaxSize = 64 * 1024 // 64 KiB

// Per-command outcomes.
const (
	statusApplied   = "applied"
	statusDuplicate = "duplicate"
	statusNotFound  = "not-found"
	statusInvalid   = "invalid"
)

type commandResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// POST /api/commands response body.
type postCommandsResponse struct {
	Results []commandResult `json:"results"`
}
