// Package main is the entry point for playcore.
package main

import (
	"github.com/playcore/playcore/cmd"
	"github.com/playcore/playcore/config"
	"github.com/playcore/playcore/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
