package binding

import (
	"testing"

	"github.com/hhkbp2/testify/require"
	"github.com/kvbench/kvbench"
)

func newTestPebbleDB(t *testing.T) *PebbleDB {
	props := kvbench.NewProperties()
	props.Add(kvbench.PropertyDBPath, t.TempDir())
	db := NewPebbleDB()
	db.SetProperties(props)
	require.Nil(t, db.Init())
	t.Cleanup(func() {
		require.Nil(t, db.Cleanup())
	})
	return db
}

func TestPebbleDBInsertRead(t *testing.T) {
	db := newTestPebbleDB(t)
	fields := kvbench.Fields{"field0": "abc", "field1": "def"}
	require.Equal(t, kvbench.StatusOK, db.Insert("user1", fields))
	got, status := db.Read("user1")
	require.Equal(t, kvbench.StatusOK, status)
	require.Equal(t, fields, got)
}

func TestPebbleDBReadMissing(t *testing.T) {
	db := newTestPebbleDB(t)
	_, status := db.Read("user404")
	require.Equal(t, kvbench.StatusNotFound, status)
}

func TestPebbleDBUpdateOverwrites(t *testing.T) {
	db := newTestPebbleDB(t)
	require.Equal(t, kvbench.StatusOK,
		db.Insert("user1", kvbench.Fields{"field0": "old", "field1": "keep"}))
	require.Equal(t, kvbench.StatusOK,
		db.Update("user1", kvbench.Fields{"field0": "new"}))
	got, status := db.Read("user1")
	require.Equal(t, kvbench.StatusOK, status)
	// Update replaces the whole record, no field merge.
	require.Equal(t, kvbench.Fields{"field0": "new"}, got)
}

func TestPebbleDBDelete(t *testing.T) {
	db := newTestPebbleDB(t)
	require.Equal(t, kvbench.StatusOK,
		db.Insert("user1", kvbench.Fields{"field0": "x"}))
	require.Equal(t, kvbench.StatusOK, db.Delete("user1"))
	_, status := db.Read("user1")
	require.Equal(t, kvbench.StatusNotFound, status)
	// Deleting a missing key is not an error.
	require.Equal(t, kvbench.StatusOK, db.Delete("user1"))
}

func TestPebbleDBScan(t *testing.T) {
	db := newTestPebbleDB(t)
	for _, key := range []string{"user1", "user2", "user3", "user4"} {
		require.Equal(t, kvbench.StatusOK,
			db.Insert(key, kvbench.Fields{"field0": key}))
	}
	results, status := db.Scan("user2", 2)
	require.Equal(t, kvbench.StatusOK, status)
	require.Equal(t, 2, len(results))
	require.Equal(t, "user2", results[0]["field0"])
	require.Equal(t, "user3", results[1]["field0"])

	// Fewer records than asked for is fine.
	results, status = db.Scan("user4", 10)
	require.Equal(t, kvbench.StatusOK, status)
	require.Equal(t, 1, len(results))
}

func TestPebbleDBReadModifyWrite(t *testing.T) {
	db := newTestPebbleDB(t)
	require.Equal(t, kvbench.StatusOK,
		db.Insert("user1", kvbench.Fields{"field0": "old", "field1": "keep"}))
	require.Equal(t, kvbench.StatusOK,
		db.ReadModifyWrite("user1", kvbench.Fields{"field0": "new"}))
	got, status := db.Read("user1")
	require.Equal(t, kvbench.StatusOK, status)
	require.Equal(t, kvbench.Fields{"field0": "new", "field1": "keep"}, got)

	// Absent record counts as empty.
	require.Equal(t, kvbench.StatusOK,
		db.ReadModifyWrite("user2", kvbench.Fields{"field0": "v"}))
	got, status = db.Read("user2")
	require.Equal(t, kvbench.StatusOK, status)
	require.Equal(t, kvbench.Fields{"field0": "v"}, got)
}
