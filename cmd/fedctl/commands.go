package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/election"
	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/sql"
	"github.com/pegfed/go-pegfed/sql/federations"
)

type activation struct {
	timeMillis int64
	height     uint64
	db         string
}

func (act *activation) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&act.timeMillis, "time", 0, "activation time in unix milliseconds, now if not set")
	cmd.Flags().Uint64Var(&act.height, "height", 0, "activation height on the host chain")
	cmd.Flags().StringVar(&act.db, "db", "", "store the pending and the built federation in this database")
}

func (act *activation) at() time.Time {
	if act.timeMillis == 0 {
		return time.Now()
	}
	return time.UnixMilli(act.timeMillis)
}

func (a *app) pending() (*federation.Pending, error) {
	return a.conf.Federation.Pending(federation.WithLogger(a.logger.WithName("pending")))
}

func newPendingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "print the configured pending federation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pending()
			if err != nil {
				return err
			}
			id, err := p.Hash()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, p)
			fmt.Fprintf(out, "members: %d\n", p.Size())
			fmt.Fprintf(out, "complete: %t\n", p.IsComplete())
			fmt.Fprintf(out, "hash: %s\n", id.Hex())
			for i, m := range p.Members().All() {
				fmt.Fprintf(out, "member %d: custody=%s host=%s address=%s\n",
					i, m.CustodyKey(), m.HostKey(), m.HostAddress())
			}
			return nil
		},
	}
}

func newBuildCmd(a *app) *cobra.Command {
	var act activation
	cmd := &cobra.Command{
		Use:   "build",
		Short: "build the configured pending federation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pending()
			if err != nil {
				return err
			}
			fed, err := p.BuildFederation(act.at(), act.height, a.net)
			if err != nil {
				return err
			}
			if act.db != "" {
				if err := a.store(act.db, p, fed); err != nil {
					return err
				}
			}
			printFederation(cmd.OutOrStdout(), fed)
			return nil
		},
	}
	act.register(cmd)
	return cmd
}

func newElectCmd(a *app) *cobra.Command {
	var (
		act    activation
		voters []string
	)
	cmd := &cobra.Command{
		Use:   "elect",
		Short: "vote for the configured pending federation and activate it on majority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			authorized, err := a.conf.Election.ParseVoters()
			if err != nil {
				return err
			}
			auth, err := election.NewAuthorizer(authorized)
			if err != nil {
				return fmt.Errorf("election voters: %w", err)
			}
			votes := authorized
			if len(voters) > 0 {
				votes = make([]types.Address, 0, len(voters))
				for _, v := range voters {
					addr, err := types.HexToAddress(v)
					if err != nil {
						return err
					}
					votes = append(votes, addr)
				}
			}
			p, err := a.pending()
			if err != nil {
				return err
			}
			e := election.New(auth, election.WithLogger(a.logger.WithName("election")))
			out := cmd.OutOrStdout()
			for _, voter := range votes {
				tally, err := e.Vote(voter, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "vote %s: %d of %d\n", voter, tally, auth.RequiredVotes())
			}
			fed, err := e.Activate(act.at(), act.height, a.net)
			if err != nil {
				return err
			}
			if act.db != "" {
				if err := a.store(act.db, p, fed); err != nil {
					return err
				}
			}
			printFederation(out, fed)
			return nil
		},
	}
	act.register(cmd)
	cmd.Flags().StringSliceVar(&voters, "voters", nil, "addresses that vote, all configured voters if not set")
	return cmd
}

func newActiveCmd(a *app) *cobra.Command {
	var (
		db     string
		height uint64
	)
	cmd := &cobra.Command{
		Use:   "active",
		Short: "print the stored active federation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			database, err := a.openDB(db)
			if err != nil {
				return err
			}
			defer closeDB(database, &err)
			var fed *federation.Federation
			if cmd.Flags().Changed("height") {
				fed, err = federations.ActiveAt(database, a.net, height)
			} else {
				fed, err = federations.Latest(database, a.net)
			}
			if err != nil {
				return err
			}
			printFederation(cmd.OutOrStdout(), fed)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "database file, the configured one if not set")
	cmd.Flags().Uint64Var(&height, "height", 0, "print the federation in effect at this height")
	return cmd
}

func newVacuumCmd(a *app) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "vacuum",
		Short: "compact the federation database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			database, err := a.openDB(db)
			if err != nil {
				return err
			}
			defer closeDB(database, &err)
			start := time.Now()
			if err := sql.Vacuum(database); err != nil {
				return err
			}
			a.logger.With().Info("database vacuumed", log.Duration("duration", time.Since(start)))
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "database file, the configured one if not set")
	return cmd
}

func (a *app) store(path string, p *federation.Pending, fed *federation.Federation) (err error) {
	db, err := a.openDB(path)
	if err != nil {
		return err
	}
	defer closeDB(db, &err)
	id, err := p.Hash()
	if err != nil {
		return err
	}
	return db.WithTx(context.Background(), func(tx *sql.Tx) error {
		has, err := federations.HasPending(tx, id)
		if err != nil {
			return err
		}
		if !has {
			if err := federations.AddPending(tx, p); err != nil {
				return err
			}
		}
		return federations.AddActive(tx, fed)
	})
}

func printFederation(out io.Writer, fed *federation.Federation) {
	fmt.Fprintln(out, fed)
	fmt.Fprintf(out, "id: %s\n", fed.ID().Hex())
	fmt.Fprintf(out, "network: %s\n", fed.Network())
	fmt.Fprintf(out, "activation-time: %d\n", fed.ActivationTime().UnixMilli())
	fmt.Fprintf(out, "activation-height: %d\n", fed.ActivationHeight())
	fmt.Fprintf(out, "redeem-script: %s\n", hex.EncodeToString(fed.RedeemScript()))
	fmt.Fprintf(out, "p2sh: %s\n", fed.Address())
	fmt.Fprintf(out, "p2wsh: %s\n", fed.WitnessAddress())
}
