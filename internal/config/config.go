package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	Auth       AuthConfig
	Referral   ReferralConfig
	App        AppConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// BlockchainConfig holds chain RPC and contract addresses
type BlockchainConfig struct {
	RPCURL          string
	StakingContract string
	StakeToken      string
	TokenDecimals   int
}

// AuthConfig holds wallet authentication settings
type AuthConfig struct {
	NonceTTL     time.Duration
	AdminWallets []string
}

// IsAdminWallet reports whether the wallet is in the configured admin set
func (c AuthConfig) IsAdminWallet(wallet string) bool {
	lowered := strings.ToLower(wallet)
	for _, admin := range c.AdminWallets {
		if admin == lowered {
			return true
		}
	}
	return false
}

// ReferralConfig holds referral program settings. Percentages are basis
// points per referral level.
type ReferralConfig struct {
	MinClaimAmount    string
	LevelPercentages  []int64
	TeamStatsInterval time.Duration
}

// AppConfig holds application-level settings
type AppConfig struct {
	BaseURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "libertystaking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
		},
		Blockchain: BlockchainConfig{
			RPCURL:          getEnv("CHAIN_RPC_URL", "https://bsc-dataseed.binance.org"),
			StakingContract: getEnv("STAKING_CONTRACT_ADDRESS", ""),
			StakeToken:      getEnv("STAKE_TOKEN_ADDRESS", ""),
			TokenDecimals:   getEnvAsInt("STAKE_TOKEN_DECIMALS", 6),
		},
		Auth: AuthConfig{
			NonceTTL:     getEnvAsDuration("AUTH_NONCE_TTL", 5*time.Minute),
			AdminWallets: getEnvAsWalletList("ADMIN_WALLET_ADDRESSES"),
		},
		Referral: ReferralConfig{
			MinClaimAmount:    getEnv("REFERRAL_MIN_CLAIM", "500"),
			LevelPercentages:  getEnvAsInt64List("REFERRAL_LEVEL_BPS", []int64{500, 300, 200}),
			TeamStatsInterval: getEnvAsDuration("TEAM_STATS_INTERVAL", 10*time.Minute),
		},
		App: AppConfig{
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsWalletList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var wallets []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			wallets = append(wallets, strings.ToLower(trimmed))
		}
	}
	return wallets
}

func getEnvAsInt64List(key string, defaultValue []int64) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var values []int64
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return defaultValue
		}
		values = append(values, v)
	}
	return values
}
