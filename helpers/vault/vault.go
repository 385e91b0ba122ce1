package vault

import (
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

// Prefix marks values that should be read from vault.
const Prefix = "/vault/"

// NewClient returns a new vault client.
func NewClient(address, token string) (*Client, error) {
	config := &api.Config{
		Address: address,
	}
	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)
	return &Client{
		vault: client,
	}, nil
}

func parseName(name string) (path, key string) {
	name = strings.TrimPrefix(name, Prefix)
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// Client is a simple client for vault.
type Client struct {
	vault *api.Client
}

// Read returns a secret for a given path and key of the form `/vault/secret/path/key`.
// Secrets from a KV version 2 mount are read from their nested `data` map.
// If the requested key cannot be read the original string is returned along with an error.
func (c *Client) Read(value string) (string, error) {
	p, k := parseName(value)
	secret, err := c.vault.Logical().Read(p)
	if err != nil {
		return value, err
	}
	if secret == nil {
		return value, fmt.Errorf("no such key %s", k)
	}
	data := secret.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}
	v, ok := data[k]
	if !ok {
		return value, fmt.Errorf("no such key %s", k)
	}
	s, ok := v.(string)
	if !ok {
		return value, fmt.Errorf("key %s is not a string", k)
	}
	return s, nil
}
