package presets

import (
	"os"
	"path/filepath"

	"github.com/pegfed/go-pegfed/config"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/signing"
)

func init() {
	register("regtest", regtest())
}

// regtestSeeds are the private keys of the regtest members: member s uses
// s for custody, s+1 for host and s+2 for auth.
var regtestSeeds = []uint64{100, 200, 300}

func regtest() config.Config {
	conf := config.DefaultConfig()
	conf.DataDir = filepath.Join(os.TempDir(), "pegfed-regtest")
	conf.Logging.Level = "debug"

	conf.Federation.Network = network.RegTest
	conf.Federation.MinMembers = 2
	for _, s := range regtestSeeds {
		conf.Federation.Members = append(conf.Federation.Members, config.MemberConfig{
			Custody: seeded(s).String(),
			Host:    seeded(s + 1).String(),
			Auth:    seeded(s + 2).String(),
		})
		conf.Election.Voters = append(conf.Election.Voters, seeded(s+2).Address().Hex())
	}
	return conf
}

func seeded(seed uint64) *signing.PublicKey {
	priv, err := signing.NewPrivateKey(signing.WithSeed(seed))
	if err != nil {
		panic(err)
	}
	return priv.Public()
}
