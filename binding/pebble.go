package binding

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/kvbench/kvbench"
)

const (
	// Write-buffer tuning mirroring the workloads this benchmark was
	// built against; overridable per run.
	PropertyPebbleMemTableSize        = "pebble.memtablesize"
	PropertyPebbleMemTableSizeDefault = "67108864"
)

// PebbleDB is the reference embedded adapter: an LSM store keyed by the
// raw record key, with the record fields packed by the shared codec.
type PebbleDB struct {
	*kvbench.DBBase
	path string
	db   *pebble.DB
}

func NewPebbleDB() *PebbleDB {
	return &PebbleDB{
		DBBase: kvbench.NewDBBase(),
	}
}

func (self *PebbleDB) Init() error {
	props := self.GetProperties()
	self.path = props.GetDefault(kvbench.PropertyDBPath, kvbench.PropertyDBPathDefault)
	memTableSize, err := props.GetInt64(PropertyPebbleMemTableSize, PropertyPebbleMemTableSizeDefault)
	if err != nil {
		return err
	}
	// Open creates the store when the directory does not hold one yet.
	db, err := pebble.Open(self.path, &pebble.Options{
		MemTableSize: uint64(memTableSize),
	})
	if err != nil {
		return err
	}
	self.db = db
	kvbench.Infof("pebble opened at: %s", self.path)
	return nil
}

func (self *PebbleDB) Cleanup() error {
	if self.db != nil {
		err := self.db.Close()
		self.db = nil
		return err
	}
	return nil
}

func (self *PebbleDB) Read(key string) (kvbench.Fields, kvbench.StatusType) {
	value, closer, err := self.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, kvbench.StatusNotFound
		}
		return nil, kvbench.StatusError
	}
	fields := kvbench.DeserializeFields(value)
	closer.Close()
	return fields, kvbench.StatusOK
}

func (self *PebbleDB) Update(key string, values kvbench.Fields) kvbench.StatusType {
	// Full-record overwrite, same write path as Insert.
	if err := self.db.Set([]byte(key), kvbench.SerializeFields(values), pebble.NoSync); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *PebbleDB) Insert(key string, values kvbench.Fields) kvbench.StatusType {
	return self.Update(key, values)
}

func (self *PebbleDB) Delete(key string) kvbench.StatusType {
	if err := self.db.Delete([]byte(key), pebble.NoSync); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *PebbleDB) Scan(startKey string, recordCount int64) ([]kvbench.Fields, kvbench.StatusType) {
	iter, err := self.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(startKey),
	})
	if err != nil {
		return nil, kvbench.StatusError
	}
	ret := make([]kvbench.Fields, 0, recordCount)
	for valid := iter.First(); valid && int64(len(ret)) < recordCount; valid = iter.Next() {
		ret = append(ret, kvbench.DeserializeFields(iter.Value()))
	}
	if err = iter.Close(); err != nil {
		return nil, kvbench.StatusError
	}
	// Fewer records than asked for just means the keyspace ran out.
	return ret, kvbench.StatusOK
}

func (self *PebbleDB) ReadModifyWrite(key string, values kvbench.Fields) kvbench.StatusType {
	fields := make(kvbench.Fields)
	value, closer, err := self.db.Get([]byte(key))
	if err == nil {
		fields = kvbench.DeserializeFields(value)
		closer.Close()
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return kvbench.StatusError
	}
	// Absent record counts as empty: merge is a field-level upsert.
	for k, v := range values {
		fields[k] = v
	}
	if err = self.db.Set([]byte(key), kvbench.SerializeFields(fields), pebble.NoSync); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}
