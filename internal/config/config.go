package config

import (
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	BackendRPC  = "rpc"
	BackendCast = "cast"
)

type Config struct {
	BotToken    string `yaml:"bot_token"`
	AllowedUser string `yaml:"allowed_user"`

	Backend      string `yaml:"backend"`
	RPCURL       string `yaml:"rpc_url"`
	ChainID      uint64 `yaml:"chain_id"`
	TokenAddress string `yaml:"token_address"`
	DAOAddress   string `yaml:"dao_address"`
	VoterWallet  string `yaml:"voter_wallet"`
	KeystorePath string `yaml:"keystore_path"`
	KeyChainPass string `yaml:"keychain_password"`
	CastPath     string `yaml:"cast_path"`
	// Confirmations a cast receipt waits for.
	Confirmations uint `yaml:"confirmations"`

	MaxWeight     uint64        `yaml:"max_weight"`
	TokenDecimals uint8         `yaml:"token_decimals"`
	VoteTimeout   time.Duration `yaml:"vote_timeout"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func Default() *Config {
	return &Config{
		Backend:       BackendRPC,
		RPCURL:        "http://127.0.0.1:8545",
		CastPath:      "cast",
		Confirmations: 1,
		MaxWeight:     100,
		TokenDecimals: 18,
		VoteTimeout:   3 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "text",
		MetricsAddr:   ":9100",
	}
}

func ParseConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("failed to read file %s due to %v", path, err)
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}
	conf := Default()
	if err := yaml.Unmarshal(content, conf); err != nil {
		log.Errorf("failed to parse config file %s due to %v", path, err)
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("rpc_url is required")
	}
	for name, addr := range map[string]string{
		"token_address": c.TokenAddress,
		"dao_address":   c.DAOAddress,
	} {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("%s %q is not an address", name, addr)
		}
	}
	if c.MaxWeight == 0 {
		return errors.New("max_weight must be positive")
	}
	if c.VoteTimeout <= 0 {
		return errors.New("vote_timeout must be positive")
	}
	switch strings.ToLower(c.Backend) {
	case BackendRPC:
		if c.KeystorePath == "" && !common.IsHexAddress(c.VoterWallet) {
			return errors.New("voter_wallet or keystore_path is required")
		}
	case BackendCast:
		if !common.IsHexAddress(c.VoterWallet) {
			return errors.Errorf("voter_wallet %q is not an address", c.VoterWallet)
		}
		if c.KeystorePath == "" {
			return errors.New("keystore_path is required for the cast backend")
		}
		if c.CastPath == "" {
			return errors.New("cast_path is required for the cast backend")
		}
	default:
		return errors.Errorf("unknown backend %q, want %s or %s", c.Backend, BackendRPC, BackendCast)
	}
	return nil
}

// RequireBot checks the fields only the Telegram front-end needs.
func (c *Config) RequireBot() error {
	if c.BotToken == "" {
		return errors.New("bot_token is required")
	}
	if c.AllowedUser == "" {
		return errors.New("allowed_user is required")
	}
	return nil
}
