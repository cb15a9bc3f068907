package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pegfed/go-pegfed/config"
	"github.com/pegfed/go-pegfed/config/presets"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/metrics"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/sql"
)

type app struct {
	configPath string
	preset     string
	logLevel   string

	conf   config.Config
	net    *network.Params
	logger log.Log
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.NewNop()}
	cmd := &cobra.Command{
		Use:          "fedctl",
		Short:        "inspect, build and store peg federations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.pushMetrics()
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "load configuration from file")
	cmd.PersistentFlags().StringVarP(&a.preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "overwrite the configured logging level")

	cmd.AddCommand(
		newPendingCmd(a),
		newBuildCmd(a),
		newElectCmd(a),
		newActiveCmd(a),
		newVacuumCmd(a),
	)
	return cmd
}

func (a *app) initialize(cmd *cobra.Command) error {
	conf := config.DefaultConfig()
	if a.preset != "" {
		preset, err := presets.Get(a.preset)
		if err != nil {
			return err
		}
		conf = preset
	}
	vip := viper.New()
	if a.configPath != "" {
		if err := config.LoadConfig(a.configPath, vip); err != nil {
			return err
		}
	}
	conf, err := config.Unmarshal(vip, conf)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		conf.Logging.Level = a.logLevel
	}
	if conf.Logging.Encoder == config.JSONLogEncoder {
		log.JSONLog(true)
	}
	lvl, err := log.ParseLevel(conf.Logging.Level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", conf.Logging.Level, err)
	}
	net, err := conf.Federation.ParseNetwork()
	if err != nil {
		return err
	}
	a.conf = conf
	a.net = net
	a.logger = log.NewWithLevel("fedctl", lvl).WithFields(net)
	return nil
}

func (a *app) openDB(path string) (*sql.Database, error) {
	if path == "" {
		path = a.conf.DatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	return sql.Open("file:"+path,
		sql.WithLogger(a.logger.WithName("db")),
		sql.WithConnections(a.conf.DatabaseConnections),
		sql.WithLatencyMetering(a.conf.DatabaseLatency),
	)
}

func (a *app) pushMetrics() error {
	if a.net == nil {
		return nil
	}
	if err := metrics.Push(a.conf.Metrics, a.net.ID().String()); err != nil {
		a.logger.With().Warning("failed to push metrics", log.Err(err))
		return err
	}
	return nil
}

func closeDB(db *sql.Database, err *error) {
	*err = errors.Join(*err, db.Close())
}
