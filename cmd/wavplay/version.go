package main

import (
	"flag"
	"fmt"
)

type versionCommand struct{}

// Implement command interface.
func (cmd *versionCommand) Name() string {
	return "version"
}

func (cmd *versionCommand) Help() string {
	return "Show version information"
}

func (cmd *versionCommand) Register(fs *flag.FlagSet) {}

func (cmd *versionCommand) Run() error {
	fmt.Printf("wavplay version %v\n", version)
	return nil
}
