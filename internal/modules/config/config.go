package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"alpha_oracle/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	nansenAPIKeyENV   = "NANSEN_API_KEY"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
)

// Config ...
type Config struct {
	Nansen struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"nansen"`

	Pyth struct {
		BaseURL string `yaml:"base_url"`
		// тикер -> hex feed id (Hermes). Инжектится сюда, а не глобальной мапой.
		Feeds map[string]string `yaml:"feeds"`
	} `yaml:"pyth"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`

	Jaeger struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Сети, по которым сканируем smart money
	Chains []string `yaml:"chains"`

	// тикер -> chain/address для /token/flows
	Tokens map[string]models.TokenRef `yaml:"tokens"`

	Scanner struct {
		// Порог эмиссии: |flow| > MinFlowUSD ИЛИ flow/mcap > MinFlowPctMcap.
		// Данные уже отфильтрованы по smart money, поэтому пороги низкие.
		MinFlowUSD     float64 `yaml:"min_flow_usd"`
		MinFlowPctMcap float64 `yaml:"min_flow_pct_mcap"`
		LargeFlowUSD   float64 `yaml:"large_flow_usd"`
		HugeFlowUSD    float64 `yaml:"huge_flow_usd"`
		MinTraders     int     `yaml:"min_traders"`

		MinVolumeUSD float64 `yaml:"min_volume_usd"`
		BuyRatioHigh float64 `yaml:"buy_ratio_high"`
		BuyRatioLow  float64 `yaml:"buy_ratio_low"`

		// false (дефолт) = сигналы одного тикера с разных сетей схлопываются
		// в одну запись, как кросс-чейн conviction.
		MergeByChain bool `yaml:"merge_by_chain"`
		TopN         int  `yaml:"top_n"`
	} `yaml:"scanner"`

	Oracle struct {
		SignalsPath  string `yaml:"signals_path"`
		LedgerPath   string `yaml:"ledger_path"`
		SnapshotPath string `yaml:"snapshot_path"`

		TimeframeHours int     `yaml:"timeframe_hours"`
		DefaultTPPct   float64 `yaml:"default_tp_pct"` // от entry, если TP не задан
		DefaultSLPct   float64 `yaml:"default_sl_pct"`

		// 0 = один проход и выход (батч), иначе демон с периодом
		ScanInterval time.Duration `yaml:"scan_interval"`

		ProgramID string `yaml:"program_id"`
	} `yaml:"oracle"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{}

	config.Nansen.BaseURL = "https://api.nansen.ai/api/v1"
	config.Pyth.BaseURL = "https://hermes.pyth.network"
	config.Chains = []string{"ethereum", "solana", "base", "arbitrum"}

	config.Scanner.MinFlowUSD = 5000
	config.Scanner.MinFlowPctMcap = 0.1
	config.Scanner.LargeFlowUSD = 50_000
	config.Scanner.HugeFlowUSD = 200_000
	config.Scanner.MinTraders = 3
	config.Scanner.MinVolumeUSD = 5000
	config.Scanner.BuyRatioHigh = 0.6
	config.Scanner.BuyRatioLow = 0.4
	config.Scanner.TopN = intFromEnv("SIGNALS_TOP_N", 20)

	config.Oracle.SignalsPath = getenvDefault("SIGNALS_PATH", "data/current_signals.json")
	config.Oracle.LedgerPath = getenvDefault("LEDGER_PATH", "data/predictions.json")
	config.Oracle.SnapshotPath = getenvDefault("SNAPSHOT_PATH", "data/nansen_signals.json")
	config.Oracle.TimeframeHours = intFromEnv("TIMEFRAME_HOURS", 24)
	config.Oracle.DefaultTPPct = floatFromEnv("DEFAULT_TP_PCT", 5.0)
	config.Oracle.DefaultSLPct = floatFromEnv("DEFAULT_SL_PCT", 5.0)
	config.Oracle.ScanInterval = durationFromEnv("SCAN_INTERVAL", "0s")

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if key := os.Getenv(nansenAPIKeyENV); key != "" {
		config.Nansen.APIKey = key
	}
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
