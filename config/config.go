// Package config contains go-pegfed configuration definitions.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/metrics"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/signing"
)

const (
	defaultConfigFileName = "./config.toml"
	defaultDataDirName    = "pegfed"
	defaultDatabaseFile   = "state.sql"
)

// Config defines the top level configuration of go-pegfed tools.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Logging    LoggerConfig       `mapstructure:"logging"`
	Federation FederationConfig   `mapstructure:"federation"`
	Election   ElectionConfig     `mapstructure:"election"`
	Metrics    metrics.PushConfig `mapstructure:"metrics"`
}

// BaseConfig defines storage options.
type BaseConfig struct {
	DataDir             string `mapstructure:"data-dir"`
	DatabaseFile        string `mapstructure:"database-file"`
	DatabaseConnections int    `mapstructure:"database-connections"`
	DatabaseLatency     bool   `mapstructure:"database-latency-metering"`
}

// DatabasePath returns the location of the sqlite database.
func (cfg BaseConfig) DatabasePath() string {
	if filepath.IsAbs(cfg.DatabaseFile) {
		return cfg.DatabaseFile
	}
	return filepath.Join(cfg.DataDir, cfg.DatabaseFile)
}

// MemberConfig holds the hex encoded keys of one federation member.
type MemberConfig struct {
	Custody string `mapstructure:"custody"`
	Host    string `mapstructure:"host"`
	Auth    string `mapstructure:"auth"`
}

// Parse decodes the member keys.
func (c MemberConfig) Parse() (federation.Member, error) {
	custody, err := signing.PublicKeyFromHex(c.Custody)
	if err != nil {
		return federation.Member{}, fmt.Errorf("custody key: %w", err)
	}
	host, err := signing.PublicKeyFromHex(c.Host)
	if err != nil {
		return federation.Member{}, fmt.Errorf("host key: %w", err)
	}
	auth, err := signing.PublicKeyFromHex(c.Auth)
	if err != nil {
		return federation.Member{}, fmt.Errorf("auth key: %w", err)
	}
	return federation.NewMember(custody, host, auth)
}

// FederationConfig describes the proposed federation.
type FederationConfig struct {
	Network    network.ID     `mapstructure:"network"`
	MinMembers int            `mapstructure:"min-members"`
	Members    []MemberConfig `mapstructure:"members"`
}

// ParseNetwork resolves the configured network.
func (c FederationConfig) ParseNetwork() (*network.Params, error) {
	return network.FromID(c.Network)
}

// ParseMembers decodes the configured members.
func (c FederationConfig) ParseMembers() ([]federation.Member, error) {
	members := make([]federation.Member, 0, len(c.Members))
	for i, mc := range c.Members {
		m, err := mc.Parse()
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// Pending creates the pending federation with the configured members.
func (c FederationConfig) Pending(opts ...federation.PendingOpt) (*federation.Pending, error) {
	members, err := c.ParseMembers()
	if err != nil {
		return nil, err
	}
	if c.MinMembers > 0 {
		opts = append([]federation.PendingOpt{federation.WithMinMembers(c.MinMembers)}, opts...)
	}
	return federation.NewPending(members, opts...)
}

// ElectionConfig lists the host addresses allowed to vote on federation changes.
type ElectionConfig struct {
	Voters []string `mapstructure:"voters"`
}

// ParseVoters decodes the voter addresses.
func (c ElectionConfig) ParseVoters() ([]types.Address, error) {
	voters := make([]types.Address, 0, len(c.Voters))
	for _, v := range c.Voters {
		addr, err := types.HexToAddress(v)
		if err != nil {
			return nil, fmt.Errorf("voter %q: %w", v, err)
		}
		voters = append(voters, addr)
	}
	return voters, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig: BaseConfig{
			DataDir:             filepath.Join(defaultHomeDir(), defaultDataDirName),
			DatabaseFile:        defaultDatabaseFile,
			DatabaseConnections: 16,
		},
		Logging: DefaultLoggingConfig(),
		Federation: FederationConfig{
			Network:    network.MainNet,
			MinMembers: federation.DefaultMinMembers,
		},
	}
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

// DecodeHook is used to decode viper values into Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadConfig loads the config file.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		fileLocation = defaultConfigFileName
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		if fileLocation != defaultConfigFileName {
			log.Warning("failed loading config from %v trying %v", fileLocation, defaultConfigFileName)
			vip.SetConfigFile(defaultConfigFileName)
			err = vip.ReadInConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to read config file %w", err)
		}
	}
	return nil
}

// Unmarshal decodes the values loaded into vip on top of base.
// Lists set in vip replace the lists of base instead of merging into them.
func Unmarshal(vip *viper.Viper, base Config) (Config, error) {
	conf := base
	if vip.IsSet("federation.members") {
		conf.Federation.Members = nil
	}
	if vip.IsSet("election.voters") {
		conf.Election.Voters = nil
	}
	if err := vip.Unmarshal(&conf, viper.DecodeHook(DecodeHook())); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return conf, nil
}
