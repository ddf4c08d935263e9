package kvbench

import (
	g "github.com/kvbench/kvbench/generator"
)

// Fields is the set of field/value pairs making up one record.
type Fields map[string]string

type StatusType uint8

const (
	StatusOK StatusType = 1 + iota
	StatusError
	StatusNotFound
	StatusNotImplemented
	StatusBadRequest
)

func (self StatusType) String() string {
	switch self {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusNotImplemented:
		return "NOT_IMPLEMENTED"
	case StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "UNKNOWN_STATUS"
	}
}

// DB is a layer for accessing a storage backend to be benchmarked.
// One instance is shared by all client routines of a run; adapters are
// expected to be safe for concurrent calls, as real storage engines are.
//
// The benchmark makes no flow-control use of the returned statuses: it
// counts them, logs non-OK ones and moves on, so an adapter error never
// shortens the measured operation window.
//
// The semantics of Insert and Update vary from backend to backend; in
// particular an Insert over an existing key is not required to fail.
// Adapters should implement whatever their engine's natural overwrite
// semantics are and document any deviation.
type DB interface {
	// SetProperties hands the adapter its configuration. Called once,
	// before Init.
	SetProperties(p Properties)

	// GetProperties returns the configuration previously set.
	GetProperties() Properties

	// Init opens or creates the backing store. Called once per run,
	// before any operation.
	Init() error

	// Cleanup releases all resources. Called at most once per successful
	// Init, on every exit path of the caller.
	Cleanup() error

	// Read returns the record stored under key, or StatusNotFound.
	Read(key string) (Fields, StatusType)

	// Update overwrites the record under key with exactly the supplied
	// fields. No partial-field merge.
	Update(key string, values Fields) StatusType

	// Insert writes a new record. Same write path as Update; an existing
	// key is not an error.
	Insert(key string, values Fields) StatusType

	// Delete removes the record under key.
	Delete(key string) StatusType

	// Scan returns up to recordCount records starting at the first key
	// >= startKey in the backend's native key order. Fewer results than
	// asked for is not an error.
	Scan(startKey string, recordCount int64) ([]Fields, StatusType)

	// ReadModifyWrite reads the record under key (absent counts as
	// empty), merges the supplied fields over the existing ones and
	// writes the result back.
	ReadModifyWrite(key string, values Fields) StatusType
}

type DBBase struct {
	p Properties
}

func NewDBBase() *DBBase {
	return &DBBase{}
}

func (self *DBBase) SetProperties(p Properties) {
	self.p = p
}

func (self *DBBase) GetProperties() Properties {
	return self.p
}

type MakeDBFunc func() DB

var (
	Databases = map[string]MakeDBFunc{
		"basic": func() DB {
			return NewBasicDB()
		},
	}
)

// RegisterDB adds an adapter constructor under the given name. Adapter
// packages call this from their AddBindings hook.
func RegisterDB(name string, f MakeDBFunc) {
	Databases[name] = f
}

func NewDB(database string, props Properties) (DB, error) {
	f, ok := Databases[database]
	if !ok {
		return nil, g.NewErrorf("unsupported database: %s", database)
	}
	db := f()
	db.SetProperties(props)
	return db, nil
}
