package lib

import (
	"net/url"
	"strings"
	"time"
)

const explorerBase = "https://explorer.solana.com/tx/"

// ExpiryTime converts an expiry in seconds since the epoch to a UTC time.
func ExpiryTime(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}

// ExplorerURL returns a Solana explorer link for a transaction sent through rpcURL.
func ExplorerURL(signature, rpcURL string) string {
	link := explorerBase + signature
	switch {
	case strings.Contains(rpcURL, "devnet"):
		return link + "?cluster=devnet"
	case strings.Contains(rpcURL, "testnet"):
		return link + "?cluster=testnet"
	case strings.Contains(rpcURL, "mainnet"):
		return link
	}
	return link + "?cluster=custom&customUrl=" + url.QueryEscape(rpcURL)
}
