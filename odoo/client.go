package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/config"
)

// DefaultSearchLimit bounds every bulk fetch. Result sets larger than this are
// silently truncated; the export flow does not paginate.
const DefaultSearchLimit = 2000

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Debug   string `json:"debug"`
	} `json:"data"`
}

type rpcEnvelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      any             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// Client talks JSON-RPC 2.0 to an Odoo-style ERP. The authentication handshake
// runs once per client instance; the resolved uid is reused for every
// execute_kw call afterwards.
type Client struct {
	cfg  config.OdooConfig
	http *http.Client

	mu  sync.Mutex
	uid int
}

func NewClient(cfg config.OdooConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) call(ctx context.Context, params any, result any) error {
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  "call",
		"params":  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Url+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("odoo rpc http %d: %s", res.StatusCode, text)
	}

	var env rpcEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("odoo rpc: malformed envelope: %w", err)
	}
	if env.Error != nil {
		if env.Error.Data.Debug != "" {
			return fmt.Errorf("odoo rpc error: %s\n%s", env.Error.Message, env.Error.Data.Debug)
		}
		return fmt.Errorf("odoo rpc error: %s", env.Error.Message)
	}
	if env.Result == nil {
		return errors.New("odoo rpc: result missing")
	}
	if result != nil {
		return json.Unmarshal(env.Result, result)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uid != 0 {
		return c.uid, nil
	}

	// Odoo answers false (not an error envelope) on bad credentials.
	var raw any
	err := c.call(ctx, map[string]any{
		"service": "common",
		"method":  "authenticate",
		"args":    []any{c.cfg.Db, c.cfg.User, c.cfg.ApiKey, map[string]any{}},
	}, &raw)
	if err != nil {
		return 0, err
	}
	uid, ok := raw.(float64)
	if !ok || uid <= 0 {
		return 0, errors.New("odoo authentication failed (invalid uid)")
	}
	c.uid = int(uid)
	return c.uid, nil
}

// ExecuteKw runs a model method through the object service, authenticating
// first if this client has not yet.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, result any) error {
	uid, err := c.authenticate(ctx)
	if err != nil {
		return err
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return c.call(ctx, map[string]any{
		"service": "object",
		"method":  "execute_kw",
		"args":    []any{c.cfg.Db, uid, c.cfg.ApiKey, model, method, args, kwargs},
	}, result)
}

// SearchRead bulk-fetches records of one model into dest, which must be a
// pointer to a slice of record structs.
func (c *Client) SearchRead(ctx context.Context, model string, domain []any, fields []string, limit, offset int, dest any) error {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if domain == nil {
		domain = []any{}
	}
	return c.ExecuteKw(ctx, model, "search_read", []any{domain}, map[string]any{
		"fields": fields,
		"limit":  limit,
		"offset": offset,
	}, dest)
}

// FieldsGet returns the field definitions of a model, keyed by field name.
func (c *Client) FieldsGet(ctx context.Context, model string, attributes []string) (map[string]json.RawMessage, error) {
	if attributes == nil {
		attributes = []string{}
	}
	var out map[string]json.RawMessage
	if err := c.ExecuteKw(ctx, model, "fields_get", []any{[]any{}, attributes}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
