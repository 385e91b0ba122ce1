package testdata

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// RPCServer is a fake Solana JSON-RPC endpoint.
type RPCServer struct {
	*httptest.Server

	mu sync.Mutex
	// Status is the confirmation status reported for sent transactions.
	// An empty status reports the signature as unknown.
	Status string
	// TxErr is reported as the error of a sent transaction.
	TxErr interface{}
	// SendErr makes sendTransaction fail with a JSON-RPC error.
	SendErr string
	// Account is the data of every requested account; nil means not found.
	Account      []byte
	AccountOwner solana.PublicKey
	SimulateErr  interface{}
	SimulateLogs []string

	Blockhash    solana.Hash
	Signature    solana.Signature
	methods      []string
	transactions [][]byte
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCServer starts a fake endpoint that confirms every transaction.
func NewRPCServer() *RPCServer {
	s := &RPCServer{Status: "confirmed"}
	for i := range s.Blockhash {
		s.Blockhash[i] = byte(i + 1)
	}
	for i := range s.Signature {
		s.Signature[i] = byte(64 - i)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Methods returns the JSON-RPC methods called so far, in order.
func (s *RPCServer) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.methods...)
}

// Transactions returns the wire encoding of every transaction sent or simulated.
func (s *RPCServer) Transactions() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.transactions...)
}

func rpcContext() map[string]interface{} {
	return map[string]interface{}{"slot": 42}
}

func (s *RPCServer) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, req.Method)

	var result interface{}
	var rerr *rpcError
	switch req.Method {
	case "getLatestBlockhash":
		result = map[string]interface{}{
			"context": rpcContext(),
			"value": map[string]interface{}{
				"blockhash":            s.Blockhash.String(),
				"lastValidBlockHeight": 100,
			},
		}
	case "sendTransaction", "simulateTransaction":
		if len(req.Params) > 0 {
			var encoded string
			if err := json.Unmarshal(req.Params[0], &encoded); err == nil {
				if raw, err := base64.StdEncoding.DecodeString(encoded); err == nil {
					s.transactions = append(s.transactions, raw)
				}
			}
		}
		if req.Method == "simulateTransaction" {
			result = map[string]interface{}{
				"context": rpcContext(),
				"value": map[string]interface{}{
					"err":  s.SimulateErr,
					"logs": s.SimulateLogs,
				},
			}
			break
		}
		if s.SendErr != "" {
			rerr = &rpcError{Code: -32002, Message: s.SendErr}
			break
		}
		result = s.Signature.String()
	case "getSignatureStatuses":
		var status interface{}
		if s.Status != "" {
			status = map[string]interface{}{
				"slot":               42,
				"confirmations":      nil,
				"err":                s.TxErr,
				"confirmationStatus": s.Status,
			}
		}
		result = map[string]interface{}{
			"context": rpcContext(),
			"value":   []interface{}{status},
		}
	case "getAccountInfo":
		var value interface{}
		if s.Account != nil {
			value = map[string]interface{}{
				"data":       []string{base64.StdEncoding.EncodeToString(s.Account), "base64"},
				"executable": false,
				"lamports":   1000000,
				"owner":      s.AccountOwner.String(),
				"rentEpoch":  0,
				"space":      len(s.Account),
			}
		}
		result = map[string]interface{}{
			"context": rpcContext(),
			"value":   value,
		}
	default:
		rerr = &rpcError{Code: -32601, Message: "Method not found"}
	}

	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	if rerr != nil {
		resp["error"] = rerr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
