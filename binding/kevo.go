package binding

import (
	"errors"

	"github.com/KevoDB/kevo/pkg/engine"
	"github.com/KevoDB/kevo/pkg/engine/storage"
	"github.com/kvbench/kvbench"
)

// KevoDB is a second embedded adapter, wrapping the kevo engine facade.
// Same record codec as the pebble adapter, so loaded stores are
// byte-comparable between the two.
type KevoDB struct {
	*kvbench.DBBase
	path string
	db   *engine.EngineFacade
}

func NewKevoDB() *KevoDB {
	return &KevoDB{
		DBBase: kvbench.NewDBBase(),
	}
}

func (self *KevoDB) Init() error {
	props := self.GetProperties()
	self.path = props.GetDefault(kvbench.PropertyDBPath, kvbench.PropertyDBPathDefault)
	db, err := engine.NewEngineFacade(self.path)
	if err != nil {
		return err
	}
	self.db = db
	kvbench.Infof("kevo opened at: %s", self.path)
	return nil
}

func (self *KevoDB) Cleanup() error {
	if self.db != nil {
		err := self.db.Close()
		self.db = nil
		return err
	}
	return nil
}

func (self *KevoDB) Read(key string) (kvbench.Fields, kvbench.StatusType) {
	value, err := self.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, kvbench.StatusNotFound
		}
		return nil, kvbench.StatusError
	}
	return kvbench.DeserializeFields(value), kvbench.StatusOK
}

func (self *KevoDB) Update(key string, values kvbench.Fields) kvbench.StatusType {
	if err := self.db.Put([]byte(key), kvbench.SerializeFields(values)); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *KevoDB) Insert(key string, values kvbench.Fields) kvbench.StatusType {
	return self.Update(key, values)
}

func (self *KevoDB) Delete(key string) kvbench.StatusType {
	if err := self.db.Delete([]byte(key)); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *KevoDB) Scan(startKey string, recordCount int64) ([]kvbench.Fields, kvbench.StatusType) {
	iter, err := self.db.GetIterator()
	if err != nil {
		return nil, kvbench.StatusError
	}
	ret := make([]kvbench.Fields, 0, recordCount)
	for valid := iter.Seek([]byte(startKey)); valid && iter.Valid() && int64(len(ret)) < recordCount; valid = iter.Next() {
		if iter.IsTombstone() {
			continue
		}
		ret = append(ret, kvbench.DeserializeFields(iter.Value()))
	}
	return ret, kvbench.StatusOK
}

func (self *KevoDB) ReadModifyWrite(key string, values kvbench.Fields) kvbench.StatusType {
	fields := make(kvbench.Fields)
	value, err := self.db.Get([]byte(key))
	if err == nil {
		fields = kvbench.DeserializeFields(value)
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return kvbench.StatusError
	}
	for k, v := range values {
		fields[k] = v
	}
	if err = self.db.Put([]byte(key), kvbench.SerializeFields(fields)); err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}
