package main

import (
	"os"

	"github.com/mzakany23/ncsh-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
