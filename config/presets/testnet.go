package presets

import (
	"github.com/pegfed/go-pegfed/config"
	"github.com/pegfed/go-pegfed/network"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := config.DefaultConfig()
	conf.Federation.Network = network.TestNet
	conf.Logging.Level = "debug"
	return conf
}
