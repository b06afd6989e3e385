package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server settings
	Addr        string
	APIKey      string
	DevMode     bool
	CORSOrigins []string

	// Upstream route provider (Mayan price API)
	MayanBaseURL string
	MayanAPIKey  string

	// Referral addresses per chain family. Solana and EVM are mandatory;
	// sui falls back to the solana address when unset.
	ReferrerSolana string
	ReferrerEVM    string
	ReferrerSui    string

	// Quote ticket store
	QuoteTTL      time.Duration
	QuoteCacheMax int

	// Admission control (requests per caller IP per minute)
	QuoteRatePerMin int
	SwapRatePerMin  int
}

func Load() *Config {
	return &Config{
		Addr:        ":" + getEnv("PORT", "8080"),
		APIKey:      getEnv("API_KEY", ""),
		DevMode:     getBoolEnv("DEV_MODE", false),
		CORSOrigins: getListEnv("CORS_ORIGINS"),

		MayanBaseURL: getEnv("MAYAN_BASE_URL", "https://price-api.mayan.finance/v3"),
		MayanAPIKey:  getEnv("MAYAN_API_KEY", ""),

		ReferrerSolana: getEnv("REFERRER_SOLANA", ""),
		ReferrerEVM:    getEnv("REFERRER_EVM", ""),
		ReferrerSui:    getEnv("REFERRER_SUI", ""),

		QuoteTTL:      getDurationEnv("QUOTE_TTL", 5*time.Minute),
		QuoteCacheMax: getIntEnv("QUOTE_CACHE_MAX", 10000),

		QuoteRatePerMin: getIntEnv("QUOTE_RATE_PER_MIN", 30),
		SwapRatePerMin:  getIntEnv("SWAP_RATE_PER_MIN", 10),
	}
}

// Validate refuses configurations the service must not start with. Referral
// addresses have no safe default: silently quoting without them would hand
// the referral fee to nobody.
func (c *Config) Validate() error {
	if c.ReferrerSolana == "" || c.ReferrerEVM == "" {
		return fmt.Errorf("REFERRER_SOLANA and REFERRER_EVM must be set")
	}
	if c.QuoteTTL <= 0 {
		return fmt.Errorf("QUOTE_TTL must be positive")
	}
	if c.QuoteCacheMax <= 0 {
		return fmt.Errorf("QUOTE_CACHE_MAX must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getListEnv(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
