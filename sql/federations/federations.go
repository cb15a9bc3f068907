// Package federations stores pending and active federations.
package federations

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pegfed/go-pegfed/codec"
	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/sql"
)

// ErrHeightOverflow is returned for activation heights that do not fit the
// signed 64 bit integer column.
var ErrHeightOverflow = errors.New("activation height out of range")

// AddPending stores a pending federation under its identity hash.
func AddPending(db sql.Executor, p *federation.Pending) error {
	id, err := p.Hash()
	if err != nil {
		return fmt.Errorf("hash pending federation: %w", err)
	}
	members, err := codec.EncodeSlice(p.Members().Slice())
	if err != nil {
		return fmt.Errorf("encode members %s: %w", id.ShortString(), err)
	}
	if _, err := db.Exec(`insert into pending_federations (id, size, members)
	values (?1, ?2, ?3);`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
			stmt.BindInt64(2, int64(p.Size()))
			stmt.BindBytes(3, members)
		}, nil,
	); err != nil {
		return fmt.Errorf("insert pending %s: %w", id.ShortString(), err)
	}
	return nil
}

// GetPending loads the pending federation with the given identity hash.
func GetPending(db sql.Executor, id types.Hash32, opts ...federation.PendingOpt) (*federation.Pending, error) {
	var (
		members []federation.Member
		decErr  error
	)
	rows, err := db.Exec("select members from pending_federations where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
		}, func(stmt *sql.Statement) bool {
			members, decErr = decodeMembers(stmt, 0)
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("get pending %s: %w", id.ShortString(), err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: pending %s", sql.ErrNotFound, id.ShortString())
	}
	if decErr != nil {
		return nil, fmt.Errorf("decode pending %s: %w", id.ShortString(), decErr)
	}
	return federation.NewPending(members, opts...)
}

// HasPending returns true if a pending federation with the given hash is stored.
func HasPending(db sql.Executor, id types.Hash32) (bool, error) {
	rows, err := db.Exec("select 1 from pending_federations where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
		}, nil)
	if err != nil {
		return false, fmt.Errorf("has pending %s: %w", id.ShortString(), err)
	}
	return rows > 0, nil
}

// DeletePending removes a pending federation.
func DeletePending(db sql.Executor, id types.Hash32) error {
	if _, err := db.Exec("delete from pending_federations where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
		}, nil); err != nil {
		return fmt.Errorf("delete pending %s: %w", id.ShortString(), err)
	}
	return nil
}

// AddActive stores an active federation. At most one federation can be
// activated per network and height.
func AddActive(db sql.Executor, f *federation.Federation) error {
	if f.ActivationHeight() > math.MaxInt64 {
		return fmt.Errorf("%w: %d", ErrHeightOverflow, f.ActivationHeight())
	}
	members, err := codec.EncodeSlice(f.Members().Slice())
	if err != nil {
		return fmt.Errorf("encode members %s: %w", f.ID().ShortString(), err)
	}
	if _, err := db.Exec(`insert into federations
	(network, activation_height, activation_time, id, required, members, redeem_script, address)
	values (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8);`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, f.Network().ID().String())
			stmt.BindInt64(2, int64(f.ActivationHeight()))
			stmt.BindInt64(3, f.ActivationTime().UnixNano())
			stmt.BindBytes(4, f.ID().Bytes())
			stmt.BindInt64(5, int64(f.RequiredSignatures()))
			stmt.BindBytes(6, members)
			stmt.BindBytes(7, f.RedeemScript())
			stmt.BindText(8, f.Address())
		}, nil,
	); err != nil {
		return fmt.Errorf("insert federation %s: %w", f.ID().ShortString(), err)
	}
	return nil
}

// Latest returns the federation with the highest activation height on net.
func Latest(db sql.Executor, net *network.Params) (*federation.Federation, error) {
	return getActive(db, net, `select activation_height, activation_time, required, members, redeem_script
	from federations where network = ?1
	order by activation_height desc limit 1;`, nil)
}

// ActiveAt returns the federation in effect at height on net: the one with
// the highest activation height not above height.
func ActiveAt(db sql.Executor, net *network.Params, height uint64) (*federation.Federation, error) {
	return getActive(db, net, `select activation_height, activation_time, required, members, redeem_script
	from federations where network = ?1 and activation_height <= ?2
	order by activation_height desc limit 1;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(2, int64(min(height, math.MaxInt64)))
		})
}

type activeRow struct {
	height   uint64
	time     time.Time
	required int
	members  []federation.Member
	script   []byte
}

func getActive(db sql.Executor, net *network.Params, query string, bind sql.Encoder) (*federation.Federation, error) {
	if err := network.Validate(net); err != nil {
		return nil, err
	}
	var (
		row    activeRow
		decErr error
	)
	rows, err := db.Exec(query,
		func(stmt *sql.Statement) {
			stmt.BindText(1, net.ID().String())
			if bind != nil {
				bind(stmt)
			}
		}, func(stmt *sql.Statement) bool {
			row.height = uint64(stmt.ColumnInt64(0))
			row.time = time.Unix(0, stmt.ColumnInt64(1))
			row.required = stmt.ColumnInt(2)
			row.members, decErr = decodeMembers(stmt, 3)
			row.script = make([]byte, stmt.ColumnLen(4))
			stmt.ColumnBytes(4, row.script)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get federation on %s: %w", net, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: federation on %s", sql.ErrNotFound, net)
	}
	if decErr != nil {
		return nil, fmt.Errorf("decode federation on %s: %w", net, decErr)
	}
	fed, err := federation.New(row.members, row.time, row.height, net,
		federation.WithThresholdPolicy(func(int) int { return row.required }),
	)
	if err != nil {
		return nil, fmt.Errorf("restore federation on %s: %w", net, err)
	}
	if !bytes.Equal(fed.RedeemScript(), row.script) {
		return nil, fmt.Errorf("federation on %s at %d: stored redeem script does not match members", net, row.height)
	}
	return fed, nil
}

func decodeMembers(stmt *sql.Statement, col int) ([]federation.Member, error) {
	buf := make([]byte, stmt.ColumnLen(col))
	stmt.ColumnBytes(col, buf)
	return codec.DecodeSlice[federation.Member](buf)
}
