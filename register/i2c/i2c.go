/*
DESCRIPTION
  i2c.go provides an implementation of the register.Transport interface over
  an I2C bus for devices with 16-bit register addressing.

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


// Package i2c provides a register.Transport over an I2C bus for sensors
// addressed with 16-bit register addresses and 8-bit values. Some sensors,
// the OV6211 among them, answer register reads on a different device address
// than writes, so the two addresses are held separately.
package i2c

import (
	"fmt"

	"github.com/kidoman/embd"
)

// Default 7-bit device addresses for the OV6211.
const (
	DefaultWriteAddr = 0x60
	DefaultReadAddr  = 0x21
)

// Transport is a register.Transport over an embd I2C bus.
type Transport struct {
	bus       embd.I2CBus
	writeAddr byte
	readAddr  byte
}

// New returns a Transport on the given bus using the default OV6211 device
// addresses.
func New(bus embd.I2CBus) *Transport {
	return NewWithAddrs(bus, DefaultWriteAddr, DefaultReadAddr)
}

// NewWithAddrs returns a Transport on the given bus with explicit write and
// read device addresses.
func NewWithAddrs(bus embd.I2CBus, writeAddr, readAddr byte) *Transport {
	return &Transport{bus: bus, writeAddr: writeAddr, readAddr: readAddr}
}

// WriteRegister writes val to the 16-bit register at addr. The address is
// sent high byte first followed by the value, in a single bus transaction.
func (t *Transport) WriteRegister(addr uint16, val byte) error {
	err := t.bus.WriteBytes(t.writeAddr, []byte{byte(addr >> 8), byte(addr), val})
	if err != nil {
		return fmt.Errorf("could not write reg 0x%04x: %w", addr, err)
	}
	return nil
}

// ReadRegister returns the byte held by the 16-bit register at addr. The
// register address is latched with a write transaction on the read device
// address, then one byte is read back.
func (t *Transport) ReadRegister(addr uint16) (byte, error) {
	err := t.bus.WriteBytes(t.readAddr, []byte{byte(addr >> 8), byte(addr)})
	if err != nil {
		return 0, fmt.Errorf("could not latch reg 0x%04x for read: %w", addr, err)
	}

	v, err := t.bus.ReadBytes(t.readAddr, 1)
	if err != nil {
		return 0, fmt.Errorf("could not read reg 0x%04x: %w", addr, err)
	}
	if len(v) != 1 {
		return 0, fmt.Errorf("short read of reg 0x%04x: got %d bytes", addr, len(v))
	}

	return v[0], nil
}
