package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/repository"
)

func newTestDocumentService() *DocumentService {
	return NewDocumentService(repository.NewMemoryDocumentRepository())
}

func TestCreateDocument_OwnerFromIdentity(t *testing.T) {
	svc := newTestDocumentService()

	var req model.DocumentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","userId":99,"objects":[1,2]}`), &req))

	doc, err := svc.Create(context.Background(), 5, req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), doc.UserID)
	assert.JSONEq(t, `[1,2]`, string(doc.Objects))
}

func TestCreateDocument_InvalidObjects(t *testing.T) {
	svc := newTestDocumentService()

	_, err := svc.Create(context.Background(), 1, model.DocumentRequest{Objects: json.RawMessage(`{bad`)})
	assert.ErrorIs(t, err, ErrInvalidObjects)
}

func TestListForOwner_EmptyIsNotFound(t *testing.T) {
	svc := newTestDocumentService()

	_, err := svc.ListForOwner(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDocumentsNotFound)
}

func TestListForOwner_OnlyOwnDocuments(t *testing.T) {
	svc := newTestDocumentService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.DocumentRequest{Title: "mine", Objects: json.RawMessage(`{"a": [1, 2]}`)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, model.DocumentRequest{Title: "theirs"})
	require.NoError(t, err)

	docs, err := svc.ListForOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "mine", docs[0].Title)
	assert.JSONEq(t, `{"a":[1,2]}`, string(docs[0].Objects))
}

func TestEncodeObjects(t *testing.T) {
	got, err := encodeObjects(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = encodeObjects(json.RawMessage(` { "k" : "v" } `))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"k":"v"}`, *got)
}

func TestDocumentToResponse_PlainTextObjects(t *testing.T) {
	text := "not json"
	resp := documentToResponse(model.Document{ID: 1, Objects: &text})
	assert.Equal(t, `"not json"`, string(resp.Objects))

	resp = documentToResponse(model.Document{ID: 2})
	assert.Nil(t, resp.Objects)
}
