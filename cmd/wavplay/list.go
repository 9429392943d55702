package main

import (
	"flag"
	"fmt"

	"github.com/dudk/wavplay/device"
)

type listCommand struct{}

// Implement command interface.
func (cmd *listCommand) Name() string {
	return "list"
}

func (cmd *listCommand) Help() string {
	return "Show available audio devices"
}

func (cmd *listCommand) Register(fs *flag.FlagSet) {}

func (cmd *listCommand) Run() error {
	catalog, err := device.New()
	if err != nil {
		return err
	}
	defer catalog.Close()

	devices, err := catalog.Devices()
	if err != nil {
		return err
	}
	fmt.Println("Available Audio Devices:")
	for _, d := range devices {
		fmt.Printf("  %v\n", d)
	}
	return nil
}
