package models

// Сырые записи Nansen. Точная форма ответа принадлежит fetch-слою,
// отсутствующие числовые поля считаются нулями.

type NetflowRecord struct {
	TokenSymbol   string  `json:"token_symbol"`
	NetFlow1hUSD  float64 `json:"net_flow_1h_usd"`
	NetFlow24hUSD float64 `json:"net_flow_24h_usd"`
	NetFlow7dUSD  float64 `json:"net_flow_7d_usd"`
	MarketCapUSD  float64 `json:"market_cap_usd"`
	TraderCount   int     `json:"trader_count"`
}

type DexTrade struct {
	TokenBoughtSymbol string  `json:"token_bought_symbol"`
	TokenSoldSymbol   string  `json:"token_sold_symbol"`
	TradeValueUSD     float64 `json:"trade_value_usd"`
}

// TokenFlows — ответ /token/flows для одного адреса.
type TokenFlows struct {
	InflowUSD  float64 `json:"inflow_usd"`
	OutflowUSD float64 `json:"outflow_usd"`
	NetFlowUSD float64 `json:"net_flow_usd"`
}

// TokenRef — куда смотреть за конкретным тикером (инжектится из конфига,
// без глобальных мап).
type TokenRef struct {
	Chain   string `yaml:"chain" json:"chain"`
	Address string `yaml:"address" json:"address"`
}
