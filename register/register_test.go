/*
DESCRIPTION
  register_test.go tests register script application and the read-modify-write
  helper against a simulated register file.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package register

import (
	"errors"
	"testing"
	"time"
)

// regFile is an in-memory Transport, a map from register address to byte.
type regFile struct {
	regs   map[uint16]byte
	writes []Op // Record of plain writes, in issue order.

	// failAddr, when non-zero, causes any access to that address to fail.
	failAddr uint16
}

var errBus = errors.New("bus failure")

func newRegFile() *regFile { return &regFile{regs: make(map[uint16]byte)} }

func (f *regFile) ReadRegister(addr uint16) (byte, error) {
	if addr == f.failAddr {
		return 0, errBus
	}
	return f.regs[addr], nil
}

func (f *regFile) WriteRegister(addr uint16, val byte) error {
	if addr == f.failAddr {
		return errBus
	}
	f.regs[addr] = val
	f.writes = append(f.writes, Op{Addr: addr, Val: val})
	return nil
}

func TestApplyMaskSemantics(t *testing.T) {
	tests := []struct {
		initial byte
		op      Op
		want    byte
	}{
		// Masked op merges into the selected bits only.
		{initial: 0xa3, op: Op{Addr: 0x3503, Val: 0x05, Mask: 0x0f}, want: 0xa5},
		// Plain write fully overwrites.
		{initial: 0xa3, op: Op{Addr: 0x3503, Val: 0x05}, want: 0x05},
		// Mask wider than value still preserves unmasked bits.
		{initial: 0xff, op: Op{Addr: 0x0100, Val: 0x00, Mask: 0x01}, want: 0xfe},
	}

	for i, test := range tests {
		f := newRegFile()
		f.regs[test.op.Addr] = test.initial

		err := Apply(f, Script{test.op})
		if err != nil {
			t.Fatalf("did not expect error for test %d: %v", i, err)
		}

		if got := f.regs[test.op.Addr]; got != test.want {
			t.Errorf("unexpected register value for test %d\nGot: %#02x\nWant: %#02x", i, got, test.want)
		}
	}
}

func TestApplyOrderAndAbort(t *testing.T) {
	f := newRegFile()
	f.failAddr = 0x3014

	s := Script{
		{Addr: 0x0103, Val: 0x01},
		{Addr: 0x3013, Val: 0x12},
		{Addr: 0x3014, Val: 0x04}, // Fails here.
		{Addr: 0x3016, Val: 0x10},
	}

	err := Apply(f, s)
	if err == nil {
		t.Fatal("expected error from script application")
	}

	// The ops before the failure must have been issued in order, and nothing
	// after the failure.
	want := []Op{{Addr: 0x0103, Val: 0x01}, {Addr: 0x3013, Val: 0x12}}
	if len(f.writes) != len(want) {
		t.Fatalf("unexpected number of writes\nGot: %d\nWant: %d", len(f.writes), len(want))
	}
	for i := range want {
		if f.writes[i] != want[i] {
			t.Errorf("unexpected write %d\nGot: %v\nWant: %v", i, f.writes[i], want[i])
		}
	}
}

func TestApplyDelay(t *testing.T) {
	const delay = 20 * time.Millisecond

	f := newRegFile()
	s := Script{
		{Addr: 0x0103, Val: 0x01, Delay: delay},
		{Addr: 0x0103, Val: 0x00},
	}

	now := time.Now()
	err := Apply(f, s)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if elapsed := time.Since(now); elapsed < delay {
		t.Errorf("script applied too quickly; waited %v, want at least %v", elapsed, delay)
	}
}

func TestModReadFailure(t *testing.T) {
	f := newRegFile()
	f.failAddr = 0x3503

	err := Mod(f, 0x3503, 0x01, 0x01)
	if err == nil {
		t.Error("expected error from modify of failing register")
	}

	if len(f.writes) != 0 {
		t.Errorf("did not expect any writes, got %d", len(f.writes))
	}
}

func TestReadU16(t *testing.T) {
	f := newRegFile()
	f.regs[0x380e] = 0x03
	f.regs[0x380f] = 0x6c

	got, err := ReadU16(f, 0x380e)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if got != 0x036c {
		t.Errorf("unexpected value\nGot: %#04x\nWant: 0x036c", got)
	}
}
