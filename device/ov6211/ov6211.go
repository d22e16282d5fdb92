/*
DESCRIPTION
  ov6211.go provides an implementation of the device.Device interface for the
  OmniVision OV6211 image sensor, covering mode selection, frame timing,
  exposure control and stream sequencing over a register transport.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package ov6211 provides control of the OmniVision OV6211 image sensor
// through its register interface. The sensor outputs frames over its own
// CSI-2 link; this package programs operating mode, frame timing and
// exposure, and sequences the idle/streaming transition. All operations are
// serialized by a single lock, held across any hardware I/O they perform.
package ov6211

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/sensor/config"
	"github.com/ausocean/sensor/device"
	"github.com/ausocean/sensor/register"
)

// To indicate package when logging.
const pkg = "ov6211: "

// System control registers.
const (
	regModeSelect = 0x0100
	regSoftReset  = 0x0103
	regChipIDHigh = 0x300a
	regChipIDLow  = 0x300b
	regRevision   = 0x300c
)

// AEC/AGC registers.
const (
	regAECExpo1  = 0x3500
	regAECExpo2  = 0x3501
	regAECExpo3  = 0x3502
	regAECManual = 0x3503
)

// Timing control registers; total vertical timing in lines, high byte first.
const (
	regTimingVTSHigh = 0x380e
	regTimingVTSLow  = 0x380f
)

// Strobe frame span registers.
const (
	regStrobeSpan1 = 0x3b8d
	regStrobeSpan2 = 0x3b8e
	regStrobeSpan3 = 0x3b8f
)

// Expected chip identity register values.
const (
	chipIDHigh = 0x67
	chipIDLow  = 0x10
)

// LinkFrequency is the fixed CSI-2 link frequency in Hz.
const LinkFrequency = 38400000

// Delays required by the stream-enable sequence. The sensor allows a settle
// window of 5000-9000us after reset assert and 4000-5000us after idle-sync;
// sleeps must be at least the lower bound.
const (
	resetSettleDelay = 5 * time.Millisecond
	streamSyncDelay  = 4 * time.Millisecond
)

// exposureMargin is the number of lines below the programmed total vertical
// timing reserved for sensor housekeeping. Exposures beyond this silently
// corrupt frame timing on this sensor family, so applied values are always
// clamped, and the clamp is not reported as an error.
const exposureMargin = 4

// Media-bus pixel encoding and colorspace codes (V4L2 values). The OV6211
// outputs 8-bit greyscale only.
const (
	MediaBusFmtY8 = 0x2001
	ColorspaceRAW = 11
)

// Sensor control errors.
var (
	ErrBusy                 = errors.New("cannot change configuration while streaming")
	ErrUnsupportedFrameRate = errors.New("unsupported frame rate")
	ErrWrongChip            = errors.New("chip ID mismatch, device not present or wrong device")
)

// Configuration field errors.
var (
	errBadWidth        = errors.New("width bad or unset, defaulting")
	errBadHeight       = errors.New("height bad or unset, defaulting")
	errBadFrameRate    = errors.New("frame rate bad or unset, defaulting")
	errBadExposureMode = errors.New("exposure mode bad or unset, defaulting")
)

// Configuration defaults.
const (
	defaultWidth        = 400
	defaultHeight       = 200
	defaultFrameRate    = 45
	defaultExposureMode = config.ExposureAuto
)

// FrameRates holds the frame rates the sensor can be programmed for, in
// frames per second. No other rates are accepted.
var FrameRates = []uint{10, 15, 30, 45, 60}

// ExposureMode selects between the sensor's automatic exposure control and
// a caller-supplied manual exposure duration.
type ExposureMode uint8

const (
	ExposureAuto ExposureMode = iota
	ExposureManual
)

// Format describes the pixel geometry and encoding produced by the sensor.
type Format struct {
	Width      uint
	Height     uint
	Code       uint32 // Media-bus pixel encoding.
	Colorspace uint32
}

type fract struct{ num, den uint32 }

// Sensor is an implementation of device.Device providing control of the
// OV6211 image sensor over a register transport. The zero value is not
// usable; use New.
//
// All mutable state below mu is guarded by it, and every exported operation
// holds it for its full duration, including hardware I/O. Register writes
// are therefore never interleaved between operations, at the cost of
// serializing all control traffic.
type Sensor struct {
	xport register.Transport
	log   logging.Logger
	cfg   config.Config

	mu          sync.Mutex
	mode        *Mode
	frameRate   uint
	interval    fract
	pendingMode bool
	pendingFI   bool
	exposure    uint32 // Manual exposure in lines; zero means no manual override.
	streaming   bool
	revision    byte
}

// New returns a new Sensor on the given register transport. The sensor
// defaults to 400x200 at 45 frames per second with automatic exposure, the
// same state the silicon powers up into after Init.
func New(t register.Transport, l logging.Logger) *Sensor {
	return &Sensor{
		xport:     t,
		log:       l,
		mode:      &modes[ModeY8x400x200],
		frameRate: defaultFrameRate,
		interval:  fract{1, defaultFrameRate},
	}
}

// Name returns the name of the device.
func (s *Sensor) Name() string {
	return "OV6211"
}

// Set will take a Config struct, check the validity of the relevant fields
// and then perform any configuration necessary. If fields are not valid, an
// error is added to the multiError and a default value is used. Set fails
// with ErrBusy while the sensor is streaming.
func (s *Sensor) Set(c config.Config) error {
	var errs device.MultiError
	if c.Width == 0 {
		errs = append(errs, errBadWidth)
		c.Width = defaultWidth
	}

	if c.Height == 0 {
		errs = append(errs, errBadHeight)
		c.Height = defaultHeight
	}

	if _, _, err := frameRateTiming(c.FrameRate); err != nil {
		errs = append(errs, errBadFrameRate)
		c.FrameRate = defaultFrameRate
	}

	switch c.ExposureMode {
	case config.ExposureAuto, config.ExposureManual:
	default:
		errs = append(errs, errBadExposureMode)
		c.ExposureMode = defaultExposureMode
	}

	if _, err := s.SetMode(c.Width, c.Height); err != nil {
		return fmt.Errorf("could not set mode: %w", err)
	}

	err := s.SetFrameInterval(1, uint32(c.FrameRate))
	if err != nil {
		return fmt.Errorf("could not set frame interval: %w", err)
	}

	em := ExposureAuto
	if c.ExposureMode == config.ExposureManual {
		em = ExposureManual
	}
	err = s.SetExposure(em, uint32(c.Exposure))
	if err != nil {
		return fmt.Errorf("could not set exposure: %w", err)
	}

	s.cfg = c
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Init verifies the sensor's identity and then loads the register script of
// the current mode, leaving the sensor idle and ready to stream. It is
// intended to be called exactly once, at attach time; an identity mismatch
// is fatal and no script is applied.
func (s *Sensor) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.checkChipID()
	if err != nil {
		return err
	}

	err = register.Apply(s.xport, s.mode.Regs)
	if err != nil {
		return fmt.Errorf("could not load initial mode registers: %w", err)
	}
	return nil
}

// VerifyIdentity reads the sensor's identity registers and fails with
// ErrWrongChip unless they match the OV6211 signature. On success the
// revision register is also read, for diagnostics only.
func (s *Sensor) VerifyIdentity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkChipID()
}

func (s *Sensor) checkChipID() error {
	hi, err := s.xport.ReadRegister(regChipIDHigh)
	if err != nil {
		return fmt.Errorf("could not read chip ID high byte: %w", err)
	}
	if hi != chipIDHigh {
		return ErrWrongChip
	}

	lo, err := s.xport.ReadRegister(regChipIDLow)
	if err != nil {
		return fmt.Errorf("could not read chip ID low byte: %w", err)
	}
	if lo != chipIDLow {
		return ErrWrongChip
	}

	s.revision, err = s.xport.ReadRegister(regRevision)
	if err != nil {
		return fmt.Errorf("could not read chip revision: %w", err)
	}

	s.log.Info(pkg+"found OV6211", "revision", fmt.Sprintf("0x%02x", s.revision))
	return nil
}

// Revision returns the sensor's silicon revision, valid after a successful
// VerifyIdentity or Init.
func (s *Sensor) Revision() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// SetMode resolves the requested geometry to the nearest supported mode and
// stores it as current. Hardware is not touched; the mode's register script
// is applied on the next Start. SetMode fails with ErrBusy while streaming.
func (s *Sensor) SetMode(w, h uint) (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streaming {
		return Mode{}, ErrBusy
	}

	s.mode = findMode(w, h)
	s.pendingMode = true
	return *s.mode, nil
}

// CurrentMode returns the currently selected mode.
func (s *Sensor) CurrentMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.mode
}

// SetFormat resolves the requested geometry like SetMode and returns the
// resulting format. The pixel encoding and colorspace are fixed; only the
// geometry negotiates.
func (s *Sensor) SetFormat(w, h uint) (Format, error) {
	m, err := s.SetMode(w, h)
	if err != nil {
		return Format{}, err
	}
	return Format{Width: m.Width, Height: m.Height, Code: MediaBusFmtY8, Colorspace: ColorspaceRAW}, nil
}

// Format returns the format produced by the currently selected mode.
func (s *Sensor) Format() Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Format{Width: s.mode.Width, Height: s.mode.Height, Code: MediaBusFmtY8, Colorspace: ColorspaceRAW}
}

// Formats enumerates the formats the sensor can produce, one per mode.
func (s *Sensor) Formats() []Format {
	f := make([]Format, 0, len(modes))
	for i := range modes {
		f = append(f, Format{Width: modes[i].Width, Height: modes[i].Height, Code: MediaBusFmtY8, Colorspace: ColorspaceRAW})
	}
	return f
}

// SetFrameInterval requests a frame interval of num/den seconds. Only the
// rates in FrameRates are accepted; anything else fails with
// ErrUnsupportedFrameRate. On success the frame-rate change is marked
// pending and the timing registers are written during the next Start, even
// if the requested rate equals the current one. SetFrameInterval is allowed
// in either idle or streaming state.
func (s *Sensor) SetFrameInterval(num, den uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if num == 0 {
		return ErrUnsupportedFrameRate
	}

	rate := uint(den / num)
	if _, _, err := frameRateTiming(rate); err != nil {
		return err
	}

	s.frameRate = rate
	s.interval = fract{num, den}
	s.pendingFI = true
	return nil
}

// FrameInterval returns the current frame interval as a numerator and
// denominator in seconds.
func (s *Sensor) FrameInterval() (num, den uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval.num, s.interval.den
}

// SetExposure sets the exposure control mode. ExposureAuto clears any manual
// override, returning the sensor to its own exposure control on the next
// stream start. ExposureManual stores lines as the manual exposure duration
// and, if the sensor is currently streaming, applies it immediately. The
// applied value is clamped to the sensor's timing limit; the clamp is not an
// error.
func (s *Sensor) SetExposure(m ExposureMode, lines uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m {
	case ExposureAuto:
		s.exposure = 0
	case ExposureManual:
		s.exposure = lines
		if s.streaming {
			_, err := s.setExposure(lines)
			if err != nil {
				return fmt.Errorf("could not apply manual exposure: %w", err)
			}
		}
	default:
		return fmt.Errorf("invalid exposure mode: %d", m)
	}
	return nil
}

// setExposure programs a manual exposure of the requested number of lines,
// clamped to the currently programmed total vertical timing less the
// housekeeping margin. The strobe span registers are mirrored so the
// illumination pulse width tracks the exposure exactly. The clamped value
// is returned. The lock must be held.
func (s *Sensor) setExposure(lines uint32) (uint32, error) {
	vts, err := register.ReadU16(s.xport, regTimingVTSHigh)
	if err != nil {
		return 0, fmt.Errorf("could not read total vertical timing: %w", err)
	}

	max := uint32(vts) - exposureMargin
	if lines > max {
		lines = max
	}

	err = register.Mod(s.xport, regAECManual, 0x01, 0x01)
	if err != nil {
		return 0, fmt.Errorf("could not enable manual exposure: %w", err)
	}

	// The exposure occupies a 20-bit field spread MSB first over three
	// registers, the low nibble of the last left zero.
	for _, w := range []struct {
		addr uint16
		val  byte
	}{
		{regAECExpo1, byte(lines>>12) & 0x0f},
		{regAECExpo2, byte(lines >> 4)},
		{regAECExpo3, byte(lines<<4) & 0xf0},
		{regStrobeSpan1, byte(lines >> 16)},
		{regStrobeSpan2, byte(lines >> 8)},
		{regStrobeSpan3, byte(lines)},
	} {
		err = s.xport.WriteRegister(w.addr, w.val)
		if err != nil {
			return 0, fmt.Errorf("could not write reg 0x%04x: %w", w.addr, err)
		}
	}

	return lines, nil
}

// frameRateTiming maps a frame rate in frames per second to the total
// vertical timing register pair that realizes it.
func frameRateTiming(rate uint) (hi, lo byte, err error) {
	switch rate {
	case 10:
		return 0x14, 0x88, nil
	case 15:
		return 0x0d, 0xb0, nil
	case 30:
		return 0x06, 0xd8, nil
	case 45:
		return 0x04, 0x90, nil
	case 60:
		return 0x03, 0x6c, nil
	}
	return 0, 0, ErrUnsupportedFrameRate
}

// Start programs the sensor for the current mode and enables streaming.
//
// The sensor loses register state across a stop/start cycle, so the full
// sequence runs on every call: soft reset, mode register script, pending
// frame-rate timing if any, then the enable sequence of an idle-sync write,
// a settle wait, manual exposure if one is set, and finally the stream
// enable bit. Any transport failure aborts and is returned with the sensor
// left idle; Start may then be retried, the script being idempotent.
func (s *Sensor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streaming {
		return ErrBusy
	}

	err := s.softReset()
	if err != nil {
		return err
	}

	err = register.Apply(s.xport, s.mode.Regs)
	if err != nil {
		return fmt.Errorf("could not load mode registers: %w", err)
	}

	if s.pendingFI {
		hi, lo, err := frameRateTiming(s.frameRate)
		if err != nil {
			return err
		}

		err = s.xport.WriteRegister(regTimingVTSHigh, hi)
		if err != nil {
			return fmt.Errorf("could not write timing high byte: %w", err)
		}
		err = s.xport.WriteRegister(regTimingVTSLow, lo)
		if err != nil {
			return fmt.Errorf("could not write timing low byte: %w", err)
		}
		s.pendingFI = false
	}

	err = s.xport.WriteRegister(regModeSelect, 0x00)
	if err != nil {
		return fmt.Errorf("could not idle-sync before stream enable: %w", err)
	}

	time.Sleep(streamSyncDelay)

	if s.exposure != 0 {
		_, err = s.setExposure(s.exposure)
		if err != nil {
			return fmt.Errorf("could not apply manual exposure: %w", err)
		}
	}

	err = s.xport.WriteRegister(regModeSelect, 0x01)
	if err != nil {
		return fmt.Errorf("could not enable streaming: %w", err)
	}

	s.pendingMode = false
	s.streaming = true
	s.log.Info(pkg+"streaming started", "mode", s.mode.ID, "width", s.mode.Width, "height", s.mode.Height, "frameRate", s.frameRate)

	return nil
}

// softReset asserts the sensor's software reset, waits for the silicon to
// settle, then deasserts it.
func (s *Sensor) softReset() error {
	err := s.xport.WriteRegister(regSoftReset, 0x01)
	if err != nil {
		return fmt.Errorf("could not assert soft reset: %w", err)
	}

	time.Sleep(resetSettleDelay)

	err = s.xport.WriteRegister(regSoftReset, 0x00)
	if err != nil {
		return fmt.Errorf("could not deassert soft reset: %w", err)
	}
	return nil
}

// Stop clears the sensor's stream enable bit and returns it to idle. Any
// pending mode or frame-rate change is left pending for the next Start to
// observe. Stopping an idle sensor is a no-op.
func (s *Sensor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.streaming {
		return nil
	}
	s.streaming = false

	err := s.xport.WriteRegister(regModeSelect, 0x00)
	if err != nil {
		return fmt.Errorf("could not disable streaming: %w", err)
	}

	s.log.Info(pkg + "streaming stopped")
	return nil
}

// IsRunning is used to determine if the sensor is streaming.
func (s *Sensor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

// ReadRegister returns the byte held by an arbitrary sensor register. It is
// intended for diagnostics.
func (s *Sensor) ReadRegister(addr uint16) (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xport.ReadRegister(addr)
}

// WriteRegister writes an arbitrary sensor register. It is intended for
// diagnostics; writes made here are not tracked by the control state and
// will be lost at the next Start.
func (s *Sensor) WriteRegister(addr uint16, val byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xport.WriteRegister(addr, val)
}
