package presets

import "github.com/pegfed/go-pegfed/config"

func init() {
	register("mainnet", config.MainnetConfig())
}
