package model

import "encoding/json"

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SaveDocumentRequest struct {
	Name       string          `json:"name"`
	Surname    string          `json:"surname"`
	NationalID string          `json:"national_id"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type SetAccessRequest struct {
	HasAccess *bool `json:"has_access"`
}
