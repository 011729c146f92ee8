package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alpha_oracle/internal/models"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

type Config struct {
	APIKey  string
	BaseURL string

	// Пагинация как в проде: до 3 страниц по 10 записей на сеть.
	PerPage  int
	MaxPages int

	// тикер -> chain/address для /token/flows
	Tokens map[string]models.TokenRef
}

// Client ходит в Nansen API. Лимит 1 запрос в секунду держим локальным
// rate.Limiter'ом, на 429 один повтор после паузы.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.nansen.ai/api/v1"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
	}
}

// flexBool: Nansen отдаёт is_last_page то bool'ом, то строкой "True".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		*b = true // неизвестное значение читаем как «последняя страница»
	}
	return nil
}

type listEnvelope struct {
	Data       sonicRaw `json:"data"`
	Pagination struct {
		IsLastPage flexBool `json:"is_last_page"`
	} `json:"pagination"`
}

type sonicRaw []byte

func (r *sonicRaw) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any) (*listEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("nansen marshal: %w", err)
	}

	resp, err := c.do(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		_ = resp.Body.Close()
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if resp, err = c.do(ctx, endpoint, payload); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("nansen http %d: %s", resp.StatusCode, string(rb))
	}

	var env listEnvelope
	if err := sonic.Unmarshal(rb, &env); err != nil {
		return nil, fmt.Errorf("nansen decode: %w", err)
	}
	return &env, nil
}

func (c *Client) do(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.BaseURL+endpoint,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("nansen build request: %w", err)
	}
	req.Header.Set("apiKey", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

type pagedRequest struct {
	Chains     []string `json:"chains"`
	Pagination struct {
		Page    int `json:"page"`
		PerPage int `json:"per_page"`
	} `json:"pagination"`
}

func (c *Client) fetchPaged(ctx context.Context, endpoint, chain string, out func([]byte) error) error {
	for page := 1; page <= c.cfg.MaxPages; page++ {
		body := pagedRequest{Chains: []string{chain}}
		body.Pagination.Page = page
		body.Pagination.PerPage = c.cfg.PerPage

		env, err := c.post(ctx, endpoint, body)
		if err != nil {
			return fmt.Errorf("%s %s p%d: %w", endpoint, chain, page, err)
		}
		if len(env.Data) > 0 {
			if err := out(env.Data); err != nil {
				return fmt.Errorf("%s %s p%d decode: %w", endpoint, chain, page, err)
			}
		}
		if bool(env.Pagination.IsLastPage) {
			break
		}
	}
	return nil
}

// Netflow — входящие/исходящие потоки smart money по сети.
func (c *Client) Netflow(ctx context.Context, chain string) ([]models.NetflowRecord, error) {
	all := make([]models.NetflowRecord, 0)
	err := c.fetchPaged(ctx, "/smart-money/netflow", chain, func(raw []byte) error {
		var items []models.NetflowRecord
		if err := sonic.Unmarshal(raw, &items); err != nil {
			return err
		}
		all = append(all, items...)
		return nil
	})
	return all, err
}

// DexTrades — свежие DEX-трейды smart money по сети.
func (c *Client) DexTrades(ctx context.Context, chain string) ([]models.DexTrade, error) {
	all := make([]models.DexTrade, 0)
	err := c.fetchPaged(ctx, "/smart-money/dex-trades", chain, func(raw []byte) error {
		var items []models.DexTrade
		if err := sonic.Unmarshal(raw, &items); err != nil {
			return err
		}
		all = append(all, items...)
		return nil
	})
	return all, err
}

// TokenFlows — детальные потоки по одному известному токену.
// Тикеры резолвятся через инжектированную мапу, не через глобальную.
func (c *Client) TokenFlows(ctx context.Context, symbol string) (*models.TokenFlows, error) {
	ref, ok := c.cfg.Tokens[symbol]
	if !ok {
		return nil, fmt.Errorf("no token ref for %s", symbol)
	}

	env, err := c.post(ctx, "/token/flows", map[string]any{
		"chains":       []string{ref.Chain},
		"tokenAddress": ref.Address,
	})
	if err != nil {
		return nil, err
	}

	var flows models.TokenFlows
	if len(env.Data) > 0 {
		if err := sonic.Unmarshal(env.Data, &flows); err != nil {
			return nil, fmt.Errorf("token flows decode: %w", err)
		}
	}
	return &flows, nil
}
