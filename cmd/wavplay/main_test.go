package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	name, args := parseArgs([]string{"wavplay"})
	assert.Equal(t, "", name)
	assert.Nil(t, args)

	name, args = parseArgs([]string{"wavplay", "play", "-i", "test.wav"})
	assert.Equal(t, "play", name)
	assert.Equal(t, []string{"-i", "test.wav"}, args)
}

func TestRun(t *testing.T) {
	commands = []command{&versionCommand{}}

	// no arguments shows usage and succeeds
	c := config{args: []string{"wavplay"}}
	assert.Equal(t, successExitCode, c.run())

	c = config{args: []string{"wavplay", "version"}}
	assert.Equal(t, successExitCode, c.run())

	c = config{args: []string{"wavplay", "unknown"}}
	assert.Equal(t, errorExitCode, c.run())
}
