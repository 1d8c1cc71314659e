package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

var (
	adminIdentity     = &auth.Identity{UserID: "6f1c1f0e-3b7a-4f7e-9d0a-000000000001", Role: entities.RoleAdministrator}
	publisherIdentity = &auth.Identity{UserID: "6f1c1f0e-3b7a-4f7e-9d0a-000000000002", Role: entities.RolePublisher}
	userIdentity      = &auth.Identity{UserID: "6f1c1f0e-3b7a-4f7e-9d0a-000000000003", Role: entities.RoleUser}
)

const placeID = "0d7c2d4e-8a51-4e0b-b3f4-3f7f0f4a9c11"

func newRequest(method, target, body string, identity *auth.Identity) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), identity))
	}
	return req
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handlers.Envelope {
	t.Helper()
	var env handlers.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
