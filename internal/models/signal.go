package models

import "time"

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

type SignalSource string

const (
	SourceNetflow   SignalSource = "nansen_smart_money_netflow"
	SourceDexTrades SignalSource = "nansen_smart_money_dex"
)

// FlowSignal — направленный сигнал по одному токену на одной сети от одного источника.
// Инвариант: Direction == LONG <=> NetFlowUSD > 0, Confidence в [0,1].
type FlowSignal struct {
	Symbol    string    `json:"symbol"`
	Chain     string    `json:"chain"`
	Direction Direction `json:"direction"`

	NetFlowUSD float64 `json:"net_flow_usd"`

	// Поля источника netflow
	NetFlow1hUSD float64 `json:"net_flow_1h_usd,omitempty"`
	NetFlow7dUSD float64 `json:"net_flow_7d_usd,omitempty"`
	MarketCapUSD float64 `json:"market_cap_usd,omitempty"`
	FlowPctMcap  float64 `json:"flow_pct_mcap,omitempty"`
	TraderCount  int     `json:"trader_count,omitempty"`

	// Поля источника dex-trades
	BuyRatio       float64 `json:"buy_ratio,omitempty"`
	TotalVolumeUSD float64 `json:"total_volume_usd,omitempty"`
	TradeCount     int     `json:"trade_count,omitempty"`

	Confidence float64      `json:"confidence"`
	Source     SignalSource `json:"source"`
	Timestamp  time.Time    `json:"timestamp"`
}

// MergedSignal — один на символ в рамках батча. Direction и Chain фиксируются
// по первому источнику и дальше не меняются, даже при конфликте.
type MergedSignal struct {
	Symbol     string         `json:"symbol"`
	Chain      string         `json:"chain"`
	Direction  Direction      `json:"direction"`
	Confidence float64        `json:"confidence"`
	Sources    []SignalSource `json:"sources"`
	NetFlowUSD float64        `json:"net_flow_usd"`
	Timestamp  time.Time      `json:"timestamp"`
}

// SignalSnapshot — то, что уходит на диск после каждого скана.
type SignalSnapshot struct {
	Timestamp     time.Time      `json:"timestamp"`
	Source        string         `json:"source"`
	ChainsScanned []string       `json:"chains_scanned"`
	Signals       []MergedSignal `json:"signals"`
	RawStats      SnapshotStats  `json:"raw_stats"`
}

type SnapshotStats struct {
	NetflowSignals int `json:"netflow_signals"`
	DexSignals     int `json:"dex_signals"`
	MergedTotal    int `json:"merged_total"`
}
