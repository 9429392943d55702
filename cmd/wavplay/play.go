package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	osignal "os/signal"
	"sync/atomic"
	"time"

	"github.com/dudk/wavplay"
	"github.com/dudk/wavplay/device"
	"github.com/dudk/wavplay/engine"
	"github.com/dudk/wavplay/log"
	"github.com/dudk/wavplay/signal"
	"github.com/dudk/wavplay/track"
	"github.com/dudk/wavplay/wav"
)

// pollInterval caps shutdown detection latency of the control loop.
const pollInterval = 100 * time.Millisecond

type playCommand struct {
	input  string
	device int
	volume float64
}

// Implement command interface.
func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play a wav file"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.input, "i", "", "path to input wav file")
	fs.IntVar(&cmd.device, "o", -1, "output device id, default output when omitted")
	fs.Float64Var(&cmd.volume, "volume", 1, "playback gain in [0, 1]")
}

func (cmd *playCommand) Run() error {
	logger := log.GetLogger()
	if cmd.input == "" {
		logger.Info("no input file specified")
		return nil
	}

	catalog, err := device.New()
	if err != nil {
		return err
	}
	defer catalog.Close()

	var dev device.Device
	if cmd.device >= 0 {
		if dev, err = catalog.Get(uint(cmd.device)); err != nil {
			return err
		}
	} else {
		var ok bool
		if dev, ok = catalog.DefaultOutput(); !ok {
			return fmt.Errorf("%w: no default output device", wavplay.ErrDeviceNotFound)
		}
	}
	logger.Info("output device: ", dev)

	src, err := wav.Open(cmd.input)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("playing %v: %d Hz, %d channels, %v",
		cmd.input, src.SampleRate(), src.NumChannels(),
		signal.DurationOf(src.SampleRate(), src.NumFrames())))

	out, err := catalog.OpenOutput(dev, src.SampleRate(), src.NumChannels(), engine.DefaultBufferSize)
	if err != nil {
		_ = src.Close()
		return err
	}

	registry := track.NewRegistry()
	t, _ := registry.Get(registry.Add())
	if err := t.Bind(out, src); err != nil {
		return err
	}
	t.SetVolume(cmd.volume)

	var finished atomic.Bool
	t.OnEvent(func(e track.Event) {
		if e == track.PlaybackFinished {
			finished.Store(true)
		}
	})

	eng := engine.New(registry, engine.WithLogger(logger))
	if err := eng.Start(); err != nil {
		return err
	}
	if err := t.Play(); err != nil {
		eng.Stop()
		return err
	}

	// the handler only pushes into the channel, teardown happens here
	interrupt := make(chan os.Signal, 1)
	osignal.Notify(interrupt, os.Interrupt)
	defer osignal.Stop(interrupt)

	for eng.IsRunning() {
		select {
		case <-interrupt:
			logger.Info("interrupt received, shutting down")
			shutdown(t, eng, logger)
			return nil
		case <-time.After(pollInterval):
			if finished.Load() {
				logger.Info("track playback finished")
				shutdown(t, eng, logger)
				return nil
			}
		}
	}
	return nil
}

func shutdown(t *track.Track, eng *engine.Engine, logger wavplay.Logger) {
	// stopping an already finished track is expected here
	if err := t.Stop(); err != nil && !errors.Is(err, wavplay.ErrInvalidState) {
		logger.Info("stop track: ", err)
	}
	eng.Stop()
}
