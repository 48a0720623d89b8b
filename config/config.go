// =================================
// File: config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"
)

// Config carries everything needed to stand up a client: the node
// endpoints, commitment level, confirmation tuning and blockhash cache
// sizing.
type Config struct {
	RPCList        []string      `mapstructure:"rpc_list"`
	Commitment     string        `mapstructure:"commitment"`
	SkipPreflight  bool          `mapstructure:"skip_preflight"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`

	BlockhashCache bool          `mapstructure:"blockhash_cache"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	CacheSize      int           `mapstructure:"cache_size"`

	WalletKey string `mapstructure:"wallet_key"`

	DebugLogging bool   `mapstructure:"debug_logging"`
	LogFile      string `mapstructure:"log_file"`
}

const (
	DefaultCommitment     = "finalized"
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultConfirmTimeout = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultCacheTTL       = 60 * time.Second
	DefaultCacheSize      = 300
)

// Load reads the configuration file at path, layers environment variables
// with the SOLANA_CLIENT prefix on top, applies the given overrides and
// validates the result. An empty path skips the file and uses defaults plus
// environment only.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"commitment":      DefaultCommitment,
		"poll_interval":   DefaultPollInterval,
		"confirm_timeout": DefaultConfirmTimeout,
		"request_timeout": DefaultRequestTimeout,
		"max_retries":     DefaultMaxRetries,
		"blockhash_cache": true,
		"cache_ttl":       DefaultCacheTTL,
		"cache_size":      DefaultCacheSize,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	for _, override := range overrides {
		override(&cfg)
	}

	return &cfg, cfg.Validate()
}

// Validate checks endpoint URLs and numeric bounds.
func (cfg *Config) Validate() error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURL(rpcURL, "http"); err != nil {
			return fmt.Errorf("invalid RPC URL %q: %w", rpcURL, err)
		}
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment %q", cfg.Commitment)
	}
	if cfg.PollInterval <= 0 {
		return errors.New("invalid poll_interval")
	}
	if cfg.ConfirmTimeout <= 0 {
		return errors.New("invalid confirm_timeout")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("invalid request_timeout")
	}
	if cfg.MaxRetries < 0 {
		return errors.New("invalid max_retries")
	}
	if cfg.BlockhashCache {
		if cfg.CacheTTL <= 0 {
			return errors.New("invalid cache_ttl")
		}
		if cfg.CacheSize <= 0 {
			return errors.New("invalid cache_size")
		}
	}
	return nil
}

// CommitmentType maps the configured commitment string onto the solana-go
// constant.
func (cfg *Config) CommitmentType() rpc.CommitmentType {
	switch cfg.Commitment {
	case "processed":
		return rpc.CommitmentProcessed
	case "confirmed":
		return rpc.CommitmentConfirmed
	default:
		return rpc.CommitmentFinalized
	}
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("SOLANA_CLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if rpcList := v.GetString("RPC_LIST"); rpcList != "" {
		var cleaned []string
		for _, raw := range strings.Split(rpcList, ",") {
			if clean := strings.TrimSpace(raw); clean != "" {
				cleaned = append(cleaned, clean)
			}
		}
		if len(cleaned) > 0 {
			cfg.RPCList = cleaned
		}
	}

	if key := v.GetString("WALLET_KEY"); key != "" {
		cfg.WalletKey = key
	}
}
