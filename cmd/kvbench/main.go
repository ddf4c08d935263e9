package main

import (
	"github.com/kvbench/kvbench"
	"github.com/kvbench/kvbench/binding"
)

func main() {
	binding.AddBindings()
	kvbench.Main()
}
