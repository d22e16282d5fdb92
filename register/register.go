/*
DESCRIPTION
  register.go provides the register transport interface along with types and
  functions for describing and applying register scripts to a device.

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


// Package register provides a transport interface for register-addressable
// devices and a means of describing and applying ordered register scripts,
// i.e. the sequences of writes used to program a device into a known state.
package register

import (
	"time"

	"github.com/pkg/errors"
)

// Transport performs addressed byte reads and writes on a device, e.g. over
// an I2C or SPI bus. Implementations report the first bus failure; no
// retrying is performed at this level.
type Transport interface {
	// ReadRegister returns the byte currently held by the register at addr.
	ReadRegister(addr uint16) (byte, error)

	// WriteRegister writes val to the register at addr.
	WriteRegister(addr uint16, val byte) error
}

// Op describes one step of a register script. If Mask is zero Val is written
// to Addr directly, otherwise the bits of Val selected by Mask are merged
// into the register's current value, preserving the remaining bits. If Delay
// is non-zero, execution pauses for at least Delay after the op is issued.
type Op struct {
	Addr  uint16
	Val   byte
	Mask  byte
	Delay time.Duration
}

// Script is an ordered list of register ops that fully programs a device
// configuration. Ops are applied strictly in sequence.
type Script []Op

// Apply issues the ops of the given script against t in order. The first
// transport failure aborts the remaining ops and is returned; no rollback of
// ops already issued is attempted.
func Apply(t Transport, s Script) error {
	for i, op := range s {
		var err error
		if op.Mask != 0 {
			err = Mod(t, op.Addr, op.Mask, op.Val)
		} else {
			err = t.WriteRegister(op.Addr, op.Val)
		}
		if err != nil {
			return errors.Errorf("could not apply script op %d (reg 0x%04x): %v", i, op.Addr, err)
		}

		if op.Delay != 0 {
			time.Sleep(op.Delay)
		}
	}
	return nil
}

// Mod performs a read-modify-write on the register at addr, replacing the
// bits selected by mask with the corresponding bits of val.
func Mod(t Transport, addr uint16, mask, val byte) error {
	cur, err := t.ReadRegister(addr)
	if err != nil {
		return errors.Errorf("could not read reg 0x%04x for modify: %v", addr, err)
	}

	cur &= ^mask
	val &= mask
	val |= cur

	err = t.WriteRegister(addr, val)
	if err != nil {
		return errors.Errorf("could not write back reg 0x%04x: %v", addr, err)
	}
	return nil
}

// ReadU16 reads a big-endian 16-bit value whose high byte is held at addr
// and low byte at addr+1.
func ReadU16(t Transport, addr uint16) (uint16, error) {
	hi, err := t.ReadRegister(addr)
	if err != nil {
		return 0, errors.Errorf("could not read high byte at 0x%04x: %v", addr, err)
	}

	lo, err := t.ReadRegister(addr + 1)
	if err != nil {
		return 0, errors.Errorf("could not read low byte at 0x%04x: %v", addr+1, err)
	}

	return uint16(hi)<<8 | uint16(lo), nil
}
