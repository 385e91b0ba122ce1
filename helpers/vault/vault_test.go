package vault

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Client {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token", r.Header.Get("X-Vault-Token"))
		switch r.URL.Path {
		case "/v1/secret/lazer":
			fmt.Fprintln(w, `{"data": {"keypair": "[1,2,3]", "count": 3}}`)
		case "/v1/kv/data/lazer":
			fmt.Fprintln(w, `{"data": {"data": {"url": "https://rpc.example.com/abc"}, "metadata": {"version": 1}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"errors": []}`)
		}
	}))
	t.Cleanup(ts.Close)
	c, err := NewClient(ts.URL, "token")
	require.NoError(t, err)
	return c
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name, path, key string
	}{
		{"/vault/secret/lazer/keypair", "secret/lazer", "keypair"},
		{"secret/lazer/keypair", "secret/lazer", "keypair"},
		{"/vault/keypair", "keypair", ""},
	}
	for _, tt := range tests {
		p, k := parseName(tt.name)
		assert.Equal(t, tt.path, p, tt.name)
		assert.Equal(t, tt.key, k, tt.name)
	}
}

func TestRead(t *testing.T) {
	c := newTestVault(t)

	s, err := c.Read("/vault/secret/lazer/keypair")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", s)

	s, err = c.Read("/vault/kv/data/lazer/url")
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com/abc", s)
}

func TestReadMissing(t *testing.T) {
	c := newTestVault(t)
	tests := []struct {
		value string
		err   string
	}{
		{"/vault/secret/lazer/nothere", "no such key nothere"},
		{"/vault/secret/other/keypair", "no such key keypair"},
		{"/vault/secret/lazer/count", "key count is not a string"},
	}
	for _, tt := range tests {
		s, err := c.Read(tt.value)
		assert.EqualError(t, err, tt.err)
		assert.Equal(t, tt.value, s)
	}
}
