// Package main is the entry point for the reel application.
package main

import (
	"github.com/samber/lo"

	"github.com/openreelio/reel/cmd/reel/cmd"
	"github.com/openreelio/reel/cmd/reel/internal/settings"
)

func main() {
	lo.Must0(settings.Setup(""))

	cmd.Execute()
}
