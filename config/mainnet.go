package config

import (
	"github.com/pegfed/go-pegfed/network"
)

// MainnetConfig returns the configuration for the production network.
// Members and voters have to be provided by the config file.
func MainnetConfig() Config {
	conf := DefaultConfig()
	conf.Federation.Network = network.MainNet
	conf.Logging.Encoder = JSONLogEncoder
	return conf
}
