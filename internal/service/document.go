package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

var (
	ErrDocumentsNotFound = errors.New("no documents found")
	ErrInvalidObjects    = errors.New("objects must be valid JSON")
)

// DocumentService handles document business logic.
type DocumentService struct {
	repo DocumentStore
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(repo DocumentStore) *DocumentService {
	return &DocumentService{repo: repo}
}

// Create stores a document owned by ownerID. The owner always comes from
// the authenticated identity.
func (s *DocumentService) Create(ctx context.Context, ownerID int64, req model.DocumentRequest) (model.DocumentResponse, error) {
	objects, err := encodeObjects(req.Objects)
	if err != nil {
		return model.DocumentResponse{}, err
	}

	doc := model.Document{
		UserID:   ownerID,
		Title:    req.Title,
		Theme:    req.Theme,
		Overview: req.Overview,
		Results:  req.Results,
		Objects:  objects,
	}

	if err := s.repo.Create(ctx, &doc); err != nil {
		return model.DocumentResponse{}, fmt.Errorf("creating document: %w", err)
	}

	return documentToResponse(doc), nil
}

// ListForOwner returns the owner's documents. An empty result is reported
// as ErrDocumentsNotFound rather than an empty list.
func (s *DocumentService) ListForOwner(ctx context.Context, ownerID int64) ([]model.DocumentResponse, error) {
	docs, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrDocumentsNotFound
	}

	out := make([]model.DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = documentToResponse(d)
	}
	return out, nil
}

// encodeObjects turns the raw objects payload into its stored text form.
// An absent payload is stored as NULL.
func encodeObjects(raw json.RawMessage) (*string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, ErrInvalidObjects
	}
	s := buf.String()
	return &s, nil
}

func documentToResponse(d model.Document) model.DocumentResponse {
	resp := model.DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Theme:     d.Theme,
		Overview:  d.Overview,
		Results:   d.Results,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
	if d.Objects == nil {
		return resp
	}
	if json.Valid([]byte(*d.Objects)) {
		resp.Objects = json.RawMessage(*d.Objects)
	} else {
		// Rows not written by Create may hold plain text.
		resp.Objects, _ = json.Marshal(*d.Objects)
	}
	return resp
}
