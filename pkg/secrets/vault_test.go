package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/tourism/api", r.URL.Path)
		assert.Equal(t, "root", r.Header.Get("X-Vault-Token"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestApply_ExportsSecrets(t *testing.T) {
	server := newVault(t, http.StatusOK, `{"data":{"data":{"TEST_VAULT_JWT":"s3cret","TEST_VAULT_PORT":5432,"TEST_VAULT_KEEP":"vault"}}}`)
	t.Setenv("TEST_VAULT_JWT", "")
	t.Setenv("TEST_VAULT_PORT", "")
	t.Setenv("TEST_VAULT_KEEP", "local")

	result, err := Apply(context.Background(), VaultConfig{
		Enabled:   true,
		Addr:      server.URL,
		Token:     "root",
		Mount:     "secret",
		Path:      "tourism/api",
		KVVersion: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, VaultResult{Loaded: 2, Skipped: 1}, result)
	assert.Equal(t, "s3cret", os.Getenv("TEST_VAULT_JWT"))
	assert.Equal(t, "5432", os.Getenv("TEST_VAULT_PORT"))
	assert.Equal(t, "local", os.Getenv("TEST_VAULT_KEEP"))
}

func TestApply_Errors(t *testing.T) {
	forbidden := newVault(t, http.StatusForbidden, `{"errors":["permission denied"]}`)
	malformed := newVault(t, http.StatusOK, `{"data":{}}`)

	tests := []struct {
		name string
		cfg  VaultConfig
	}{
		{"incomplete", VaultConfig{Enabled: true, Addr: forbidden.URL}},
		{"forbidden", VaultConfig{Enabled: true, Addr: forbidden.URL, Token: "root", Mount: "secret", Path: "tourism/api", KVVersion: 2}},
		{"missing kv2 data", VaultConfig{Enabled: true, Addr: malformed.URL, Token: "root", Mount: "secret", Path: "tourism/api", KVVersion: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestApply_Disabled(t *testing.T) {
	result, err := Apply(context.Background(), VaultConfig{})
	require.NoError(t, err)
	assert.Equal(t, VaultResult{}, result)
}

func TestSecretURL(t *testing.T) {
	assert.Equal(t, "http://vault:8200/v1/kv/app", secretURL(VaultConfig{Addr: "http://vault:8200/", Mount: "/kv/", Path: "/app", KVVersion: 1}))
	assert.Equal(t, "http://vault:8200/v1/secret/data/app", secretURL(VaultConfig{Addr: "http://vault:8200", Mount: "secret", Path: "app", KVVersion: 2}))
}
