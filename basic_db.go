package kvbench

import (
	"sort"
	"strconv"
	"strings"
	"time"

	g "github.com/kvbench/kvbench/generator"
)

func concatFieldsStr(values Fields) string {
	if len(values) == 0 {
		return "<no fields>"
	}
	parts := make([]string, 0, len(values))
	for k, v := range values {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// BasicDB is a demo adapter that does nothing but echo the operations,
// with an optionally randomized simulated delay. Useful for checking the
// workload plumbing without a real backend.
type BasicDB struct {
	*DBBase
	verbose        bool
	randomizeDelay bool
	toDelay        int64
	random         *g.Random
}

func NewBasicDB() *BasicDB {
	return &BasicDB{
		DBBase: NewDBBase(),
		random: g.NewRandom(0),
	}
}

func (self *BasicDB) delay() {
	if self.toDelay > 0 {
		millis := self.toDelay
		if self.randomizeDelay {
			millis = self.random.NextInt64(self.toDelay)
			if millis == 0 {
				return
			}
		}
		time.Sleep(time.Duration(millis) * time.Millisecond)
	}
}

func (self *BasicDB) Init() error {
	p := self.GetProperties()
	var err error
	self.verbose, err = strconv.ParseBool(
		p.GetDefault(ConfigBasicDBVerbose, ConfigBasicDBVerboseDefault))
	if err != nil {
		return err
	}
	self.toDelay, err = p.GetInt64(ConfigSimulateDelay, ConfigSimulateDelayDefault)
	if err != nil {
		return err
	}
	self.randomizeDelay, err = strconv.ParseBool(
		p.GetDefault(ConfigRandomizeDelay, ConfigRandomizeDelayDefault))
	if err != nil {
		return err
	}
	return nil
}

func (self *BasicDB) Cleanup() error {
	return nil
}

func (self *BasicDB) Read(key string) (Fields, StatusType) {
	self.delay()
	if self.verbose {
		Printf("READ %s", key)
	}
	return nil, StatusOK
}

func (self *BasicDB) Update(key string, values Fields) StatusType {
	self.delay()
	if self.verbose {
		Printf("UPDATE %s [%s]", key, concatFieldsStr(values))
	}
	return StatusOK
}

func (self *BasicDB) Insert(key string, values Fields) StatusType {
	self.delay()
	if self.verbose {
		Printf("INSERT %s [%s]", key, concatFieldsStr(values))
	}
	return StatusOK
}

func (self *BasicDB) Delete(key string) StatusType {
	self.delay()
	if self.verbose {
		Printf("DELETE %s", key)
	}
	return StatusOK
}

func (self *BasicDB) Scan(startKey string, recordCount int64) ([]Fields, StatusType) {
	self.delay()
	if self.verbose {
		Printf("SCAN %s %d", startKey, recordCount)
	}
	return nil, StatusOK
}

func (self *BasicDB) ReadModifyWrite(key string, values Fields) StatusType {
	self.delay()
	if self.verbose {
		Printf("READ_MODIFY_WRITE %s [%s]", key, concatFieldsStr(values))
	}
	return StatusOK
}
