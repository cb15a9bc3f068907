package sql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVacuum(t *testing.T) {
	require.NoError(t, Vacuum(InMemory()))
}

func TestVacuumPersistent(t *testing.T) {
	db, err := Open("file:" + filepath.Join(t.TempDir(), "state.sql"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	_, err = db.Exec("insert into pending_federations (id, size, members) values (?1, 1, ?2)",
		func(stmt *Statement) {
			stmt.BindBytes(1, make([]byte, 32))
			stmt.BindBytes(2, make([]byte, 99))
		}, nil)
	require.NoError(t, err)
	_, err = db.Exec("delete from pending_federations", nil, nil)
	require.NoError(t, err)
	require.NoError(t, Vacuum(db))
}
