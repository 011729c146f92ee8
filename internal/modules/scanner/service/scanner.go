package service

// Config — пороги скоринга. Инжектится из конфига, в коде дефолтов нет,
// кроме DefaultConfig для тестов и фолбэка.
type Config struct {
	// Netflow: эмитим если |flow| > MinFlowUSD ИЛИ flow/mcap*100 > MinFlowPctMcap.
	// Данные уже отфильтрованы по smart money, поэтому порог низкий.
	MinFlowUSD     float64
	MinFlowPctMcap float64
	LargeFlowUSD   float64
	HugeFlowUSD    float64
	MinTraders     int

	// DEX: пол по обороту и границы дисбаланса buy_ratio.
	MinVolumeUSD float64
	BuyRatioHigh float64
	BuyRatioLow  float64

	// false = тикер с разных сетей схлопывается в одну запись (кросс-чейн
	// conviction). true = ключ слияния symbol+chain.
	MergeByChain bool
}

func DefaultConfig() Config {
	return Config{
		MinFlowUSD:     5000,
		MinFlowPctMcap: 0.1,
		LargeFlowUSD:   50_000,
		HugeFlowUSD:    200_000,
		MinTraders:     3,
		MinVolumeUSD:   5000,
		BuyRatioHigh:   0.6,
		BuyRatioLow:    0.4,
	}
}

// Scanner превращает сырые записи провайдера в сопоставимые сигналы.
// Чистая математика, без I/O.
type Scanner struct {
	cfg Config
}

func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0 {
		return 0
	}
	return v
}
