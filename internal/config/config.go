package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Address      string `env:"RUN_ADDRESS"       envDefault:"localhost:8080"`
	StoreAddress string `env:"STORE_ADDRESS"     envDefault:"localhost:8090"`
	StoreToken   string `env:"STORE_TOKEN"       envDefault:""`
	BotToken     string `env:"BOT_TOKEN"         envDefault:""`
	InternalKey  string `env:"INTERNAL_API_KEY"  envDefault:""`
	LogLvl       string `env:"LOG_LVL"           envDefault:"info"`

	Economy Economy
}

// Economy holds the fixed game economics. The values are process-wide
// configuration and never change after startup.
type Economy struct {
	AdReward        decimal.Decimal
	SpinPayouts     []decimal.Decimal
	CommissionRate  decimal.Decimal
	CommissionFloor decimal.Decimal
	MinWithdrawal   decimal.Decimal

	AdsDailyCap   int
	SpinsDailyCap int

	LimitCooldown  time.Duration
	RequestSpacing time.Duration
	TokenTTL       time.Duration
	AuthTTL        time.Duration
}

func DefaultEconomy() Economy {
	return Economy{
		AdReward: decimal.NewFromFloat(0.3),
		SpinPayouts: []decimal.Decimal{
			decimal.NewFromInt(5),
			decimal.NewFromInt(10),
			decimal.NewFromInt(15),
			decimal.NewFromInt(20),
			decimal.NewFromInt(5),
		},
		CommissionRate:  decimal.NewFromFloat(0.05),
		CommissionFloor: decimal.NewFromFloat(0.01),
		MinWithdrawal:   decimal.NewFromInt(25),
		AdsDailyCap:     100,
		SpinsDailyCap:   15,
		LimitCooldown:   6 * time.Hour,
		RequestSpacing:  3 * time.Second,
		TokenTTL:        60 * time.Second,
		AuthTTL:         20 * time.Minute,
	}
}

func New() *Config {
	godotenv.Load()

	cfg := &Config{}
	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.StoreAddress, "s", cfg.StoreAddress, "record store address and port")
	flag.StringVar(&cfg.BotToken, "t", cfg.BotToken, "telegram bot token")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	if !strings.HasPrefix(cfg.StoreAddress, "http://") && !strings.HasPrefix(cfg.StoreAddress, "https://") {
		cfg.StoreAddress = "http://" + cfg.StoreAddress
	}

	cfg.Economy = DefaultEconomy()

	return cfg
}
