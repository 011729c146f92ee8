package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"alpha_oracle/internal/helper"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrNoFeed — для тикера нет маппинга на price feed. Вызывающий решает,
// что с этим делать (у верифаера это needs_manual_verification).
var ErrNoFeed = errors.New("no pyth feed for asset")

type Config struct {
	BaseURL string
	// тикер -> hex feed id, инжектится из конфига
	Feeds map[string]string
}

// Client читает последние цены из Pyth Hermes.
type Client struct {
	http *http.Client
	cfg  Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hermes.pyth.network"
	}
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
		cfg:  cfg,
	}
}

// Price возвращает текущую цену актива в долларах.
func (c *Client) Price(ctx context.Context, asset string) (float64, error) {
	feedID, ok := c.cfg.Feeds[helper.NormSymbol(asset)]
	if !ok {
		return 0, fmt.Errorf("%s: %w", asset, ErrNoFeed)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.cfg.BaseURL+"/v2/updates/price/latest?ids[]="+url.QueryEscape(feedID),
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("pyth build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pyth do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("pyth http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Parsed []struct {
			Price struct {
				Price string `json:"price"`
				Expo  int32  `json:"expo"`
			} `json:"price"`
		} `json:"parsed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("pyth decode: %w", err)
	}
	if len(payload.Parsed) == 0 {
		return 0, fmt.Errorf("pyth: empty parsed for %s", asset)
	}

	// цена приходит как мантисса + экспонента
	mantissa, err := decimal.NewFromString(payload.Parsed[0].Price.Price)
	if err != nil {
		return 0, fmt.Errorf("pyth price parse: %w", err)
	}
	price, _ := mantissa.Shift(payload.Parsed[0].Price.Expo).Float64()
	return price, nil
}
