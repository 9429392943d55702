// Package device enumerates audio devices and opens playback streams on
// them. It wraps portaudio, which does the OS-level driver binding.
package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/dudk/wavplay"
)

// Device is an immutable snapshot of an audio device taken at enumeration
// time. It becomes stale if hardware changes, re-enumeration is required
// to detect that.
type Device struct {
	ID          uint
	Name        string
	InChannels  int
	OutChannels int

	info *portaudio.DeviceInfo
}

// String returns device representation used by CLI output.
func (d Device) String() string {
	return fmt.Sprintf("ID: %d, Name: %v (Input Channels: %d, Output Channels: %d)",
		d.ID, d.Name, d.InChannels, d.OutChannels)
}

// Catalog provides read access to the current audio hardware snapshot.
// It must be used from the control thread only, never from the render loop.
type Catalog struct{}

// New initializes the audio host API and returns a catalog. Close must be
// called to release it.
func New() (*Catalog, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio host: %w", err)
	}
	return &Catalog{}, nil
}

// Close terminates the audio host API.
func (c *Catalog) Close() error {
	return portaudio.Terminate()
}

// Devices re-enumerates available audio devices.
func (c *Catalog) Devices() ([]Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	devices := make([]Device, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, snapshot(info))
	}
	return devices, nil
}

// Get returns the device with the passed id. When no device with such id
// exists it fails with wavplay.ErrDeviceNotFound, so an unmatched id never
// aliases to another device. Enumeration failures are returned as is and
// stay distinguishable from absence.
func (c *Catalog) Get(id uint) (Device, error) {
	devices, err := c.Devices()
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if d.ID == id {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: id %d", wavplay.ErrDeviceNotFound, id)
}

// DefaultOutput returns the platform-chosen default output device, or
// false when no output-capable device exists.
func (c *Catalog) DefaultOutput() (Device, bool) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil || info == nil || info.MaxOutputChannels < 1 {
		return Device{}, false
	}
	return snapshot(info), true
}

func snapshot(info *portaudio.DeviceInfo) Device {
	return Device{
		ID:          uint(info.Index),
		Name:        info.Name,
		InChannels:  info.MaxInputChannels,
		OutChannels: info.MaxOutputChannels,
		info:        info,
	}
}
