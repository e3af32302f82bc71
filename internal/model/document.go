package model

import (
	"encoding/json"
	"time"
)

// Document is a record owned by exactly one user. Objects holds the
// client's structured payload serialized as JSON text.
type Document struct {
	ID        int64
	UserID    int64
	Title     string
	Theme     string
	Overview  string
	Results   string
	Objects   *string
	CreatedAt time.Time
}

// DocumentRequest is the body of a document create. Any owner id the
// client sends is not part of the shape and is dropped on decode.
type DocumentRequest struct {
	Title    string          `json:"title"`
	Theme    string          `json:"theme"`
	Overview string          `json:"overview"`
	Results  string          `json:"results"`
	Objects  json.RawMessage `json:"objects"`
}

// DocumentResponse is the JSON shape of a document with Objects decoded.
type DocumentResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Theme     string          `json:"theme"`
	Overview  string          `json:"overview"`
	Results   string          `json:"results"`
	Objects   json.RawMessage `json:"objects"`
	UserID    int64           `json:"userId"`
	CreatedAt time.Time       `json:"created_at"`
}
