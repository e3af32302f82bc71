package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teamfolio/teamfolio-go/internal/middleware"
	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/repository"
	"github.com/teamfolio/teamfolio-go/internal/service"
	"github.com/teamfolio/teamfolio-go/internal/storage"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	users   *repository.MemoryUserRepository
	docs    *repository.MemoryDocumentRepository
	objects *storage.MemoryStore

	auth     *AuthHandler
	profile  *ProfileHandler
	document *DocumentHandler
}

func newTestEnv(enforceOwnership bool) *testEnv {
	env := &testEnv{
		users:   repository.NewMemoryUserRepository(),
		docs:    repository.NewMemoryDocumentRepository(),
		objects: storage.NewMemoryStore("http://img.test/User_image"),
	}
	env.auth = NewAuthHandler(service.NewAuthService(env.users, testSecret, time.Hour))
	env.profile = NewProfileHandler(service.NewProfileService(env.users, env.objects, enforceOwnership))
	env.document = NewDocumentHandler(service.NewDocumentService(env.docs))
	return env
}

func (e *testEnv) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "$2a$10$hash"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	case nil:
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, id int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), id))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
