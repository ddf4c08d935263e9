package binding

import (
	"github.com/kvbench/kvbench"
)

// AddBindings registers every adapter in this package. Called once from
// the binary's main before argument parsing.
func AddBindings() {
	kvbench.RegisterDB("pebble", func() kvbench.DB {
		return NewPebbleDB()
	})
	kvbench.RegisterDB("kevo", func() kvbench.DB {
		return NewKevoDB()
	})
	kvbench.RegisterDB("mysql", func() kvbench.DB {
		return NewMysqlDB()
	})
}
