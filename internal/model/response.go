package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type AccountList struct {
	Users []Account `json:"users"`
}

type DocumentList struct {
	Documents []Document `json:"documents"`
}

type DocumentSummaryList struct {
	Documents []DocumentSummary `json:"documents"`
}

type SaveDocumentResult struct {
	ID       int64  `json:"id"`
	PublicID string `json:"public_id"`
}
