package journal

// SyncResult describes a finished bulk upsert; Err is nil on success.
type SyncResult struct {
	SiteID    int64
	Date      string
	ItemCount int
	Err       error
}

type SyncLogResponse struct {
	ID           string  `json:"id"`
	SiteID       int64   `json:"site_id"`
	Date         string  `json:"date"`
	ItemCount    int     `json:"item_count"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	RequestID    string  `json:"request_id,omitempty"`
	UserID       string  `json:"user_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
