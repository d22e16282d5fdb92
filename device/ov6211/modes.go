/*
DESCRIPTION
  modes.go defines the operating modes supported by the OV6211 along with
  their register scripts, and provides nearest-match mode lookup.

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

package ov6211

import (
	"github.com/ausocean/sensor/register"
)

// Mode identifiers.
const (
	ModeY8x400x200 = iota
	ModeY8x400x400
)

// Mode describes one supported operating configuration of the sensor: its
// pixel geometry and the register script that programs the sensor to
// produce it. The mode set is fixed at compile time.
type Mode struct {
	ID         int
	Width      uint
	Height     uint
	Regs       register.Script
	PixelClock uint // Hz.
}

// modes is the fixed mode table. Order matters; nearest-match lookup breaks
// ties in favour of earlier entries.
var modes = []Mode{
	{
		ID:         ModeY8x400x200,
		Width:      400,
		Height:     200,
		Regs:       initY8x400x200,
		PixelClock: 400 * 400 * 60 * 2,
	},
	{
		ID:         ModeY8x400x400,
		Width:      400,
		Height:     400,
		Regs:       initY8x400x400,
		PixelClock: 400 * 400 * 60 * 2,
	},
}

// Modes returns a copy of the supported mode table.
func Modes() []Mode {
	m := make([]Mode, len(modes))
	copy(m, modes)
	return m
}

// findMode returns the mode whose geometry is nearest the requested width
// and height by euclidean distance, earlier table entries winning ties. The
// table is non-empty, so lookup cannot fail; a zero request resolves to the
// first entry.
func findMode(w, h uint) *Mode {
	best := &modes[0]
	bestDist := int64(-1)
	for i := range modes {
		dw := int64(modes[i].Width) - int64(w)
		dh := int64(modes[i].Height) - int64(h)
		d := dw*dw + dh*dh
		if bestDist < 0 || d < bestDist {
			best = &modes[i]
			bestDist = d
		}
	}
	return best
}

// Register script for 400x400 8-bit greyscale capture.
var initY8x400x400 = register.Script{
	{Addr: 0x0103, Val: 0x01}, {Addr: 0x0100, Val: 0x00}, {Addr: 0x3005, Val: 0x08},
	{Addr: 0x3013, Val: 0x12}, {Addr: 0x3014, Val: 0x04}, {Addr: 0x3016, Val: 0x10},
	{Addr: 0x3017, Val: 0x00}, {Addr: 0x3018, Val: 0x00}, {Addr: 0x301a, Val: 0x00},
	{Addr: 0x301b, Val: 0x00}, {Addr: 0x301c, Val: 0x00}, {Addr: 0x3037, Val: 0xf0},
	{Addr: 0x3080, Val: 0x01}, {Addr: 0x3081, Val: 0x00}, {Addr: 0x3082, Val: 0x01},
	{Addr: 0x3098, Val: 0x04}, {Addr: 0x3099, Val: 0x28}, {Addr: 0x309a, Val: 0x06},
	{Addr: 0x309b, Val: 0x04}, {Addr: 0x309c, Val: 0x00}, {Addr: 0x309d, Val: 0x00},
	{Addr: 0x309e, Val: 0x01}, {Addr: 0x309f, Val: 0x00}, {Addr: 0x30b0, Val: 0x08},
	{Addr: 0x30b1, Val: 0x02}, {Addr: 0x30b2, Val: 0x00}, {Addr: 0x30b3, Val: 0x28},
	{Addr: 0x30b4, Val: 0x02}, {Addr: 0x30b5, Val: 0x00}, {Addr: 0x3106, Val: 0xd9},
	{Addr: 0x3500, Val: 0x00}, {Addr: 0x3501, Val: 0x1b}, {Addr: 0x3502, Val: 0x20},
	{Addr: 0x3503, Val: 0x07}, {Addr: 0x3509, Val: 0x10}, {Addr: 0x350b, Val: 0x10},
	{Addr: 0x3600, Val: 0xfc}, {Addr: 0x3620, Val: 0xb7}, {Addr: 0x3621, Val: 0x05},
	{Addr: 0x3626, Val: 0x31}, {Addr: 0x3627, Val: 0x40}, {Addr: 0x3632, Val: 0xa3},
	{Addr: 0x3633, Val: 0x34}, {Addr: 0x3634, Val: 0x40}, {Addr: 0x3636, Val: 0x00},
	{Addr: 0x3660, Val: 0x80}, {Addr: 0x3662, Val: 0x03}, {Addr: 0x3664, Val: 0xf0},
	{Addr: 0x366a, Val: 0x10}, {Addr: 0x366b, Val: 0x06}, {Addr: 0x3680, Val: 0xf4},
	{Addr: 0x3681, Val: 0x50}, {Addr: 0x3682, Val: 0x00}, {Addr: 0x3708, Val: 0x20},
	{Addr: 0x3709, Val: 0x40}, {Addr: 0x370d, Val: 0x03}, {Addr: 0x373b, Val: 0x02},
	{Addr: 0x373c, Val: 0x08}, {Addr: 0x3742, Val: 0x00}, {Addr: 0x3744, Val: 0x16},
	{Addr: 0x3745, Val: 0x08}, {Addr: 0x3781, Val: 0xfc}, {Addr: 0x3788, Val: 0x00},
	{Addr: 0x3800, Val: 0x00}, {Addr: 0x3801, Val: 0x04}, {Addr: 0x3802, Val: 0x00},
	{Addr: 0x3803, Val: 0x04}, {Addr: 0x3804, Val: 0x01}, {Addr: 0x3805, Val: 0x9b},
	{Addr: 0x3806, Val: 0x01}, {Addr: 0x3807, Val: 0x9b}, {Addr: 0x3808, Val: 0x01},
	{Addr: 0x3809, Val: 0x90}, {Addr: 0x380a, Val: 0x01}, {Addr: 0x380b, Val: 0x90},
	{Addr: 0x380c, Val: 0x05}, {Addr: 0x380d, Val: 0xf2}, {Addr: 0x380e, Val: 0x03},
	{Addr: 0x380f, Val: 0x6c}, {Addr: 0x3810, Val: 0x00}, {Addr: 0x3811, Val: 0x04},
	{Addr: 0x3812, Val: 0x00}, {Addr: 0x3813, Val: 0x04}, {Addr: 0x3814, Val: 0x11},
	{Addr: 0x3815, Val: 0x11}, {Addr: 0x3820, Val: 0x00}, {Addr: 0x3821, Val: 0x00},
	{Addr: 0x382b, Val: 0xfa}, {Addr: 0x382f, Val: 0x04}, {Addr: 0x3832, Val: 0x00},
	{Addr: 0x3833, Val: 0x05}, {Addr: 0x3834, Val: 0x00}, {Addr: 0x3835, Val: 0x05},
	{Addr: 0x3882, Val: 0x04}, {Addr: 0x3883, Val: 0x00}, {Addr: 0x38a4, Val: 0x10},
	{Addr: 0x38a5, Val: 0x00}, {Addr: 0x38b1, Val: 0x03}, {Addr: 0x3b80, Val: 0x00},
	{Addr: 0x3b81, Val: 0xff}, {Addr: 0x3b82, Val: 0x10}, {Addr: 0x3b83, Val: 0x00},
	{Addr: 0x3b84, Val: 0x08}, {Addr: 0x3b85, Val: 0x00}, {Addr: 0x3b86, Val: 0x01},
	{Addr: 0x3b87, Val: 0x00}, {Addr: 0x3b88, Val: 0x00}, {Addr: 0x3b89, Val: 0x00},
	{Addr: 0x3b8a, Val: 0x00}, {Addr: 0x3b8b, Val: 0x05}, {Addr: 0x3b8c, Val: 0x00},
	{Addr: 0x3b8d, Val: 0x00}, {Addr: 0x3b8e, Val: 0x01}, {Addr: 0x3b8f, Val: 0xb2},
	{Addr: 0x3b94, Val: 0x05}, {Addr: 0x3b95, Val: 0xf2}, {Addr: 0x3b96, Val: 0xc0},
	{Addr: 0x4004, Val: 0x04}, {Addr: 0x404e, Val: 0x01}, {Addr: 0x4801, Val: 0x0f},
	{Addr: 0x4806, Val: 0x0f}, {Addr: 0x4837, Val: 0x43}, {Addr: 0x5a08, Val: 0x00},
	{Addr: 0x5a01, Val: 0x00}, {Addr: 0x5a03, Val: 0x00}, {Addr: 0x5a04, Val: 0x10},
	{Addr: 0x5a05, Val: 0xa0}, {Addr: 0x5a06, Val: 0x0c}, {Addr: 0x5a07, Val: 0x78},
}

// Register script for 400x200 8-bit greyscale capture.
var initY8x400x200 = register.Script{
	{Addr: 0x0103, Val: 0x01}, {Addr: 0x0100, Val: 0x00}, {Addr: 0x3005, Val: 0x08},
	{Addr: 0x3013, Val: 0x12}, {Addr: 0x3014, Val: 0x04}, {Addr: 0x3016, Val: 0x10},
	{Addr: 0x3017, Val: 0x00}, {Addr: 0x3018, Val: 0x00}, {Addr: 0x301a, Val: 0x00},
	{Addr: 0x301b, Val: 0x00}, {Addr: 0x301c, Val: 0x00}, {Addr: 0x3037, Val: 0xf0},
	{Addr: 0x3080, Val: 0x01}, {Addr: 0x3081, Val: 0x00}, {Addr: 0x3082, Val: 0x01},
	{Addr: 0x3098, Val: 0x04}, {Addr: 0x3099, Val: 0x28}, {Addr: 0x309a, Val: 0x06},
	{Addr: 0x309b, Val: 0x04}, {Addr: 0x309c, Val: 0x00}, {Addr: 0x309d, Val: 0x00},
	{Addr: 0x309e, Val: 0x01}, {Addr: 0x309f, Val: 0x00}, {Addr: 0x30b0, Val: 0x08},
	{Addr: 0x30b1, Val: 0x02}, {Addr: 0x30b2, Val: 0x00}, {Addr: 0x30b3, Val: 0x28},
	{Addr: 0x30b4, Val: 0x02}, {Addr: 0x30b5, Val: 0x00}, {Addr: 0x3106, Val: 0xd9},
	{Addr: 0x3500, Val: 0x00}, {Addr: 0x3501, Val: 0x1b}, {Addr: 0x3502, Val: 0x20},
	{Addr: 0x3503, Val: 0x07}, {Addr: 0x3509, Val: 0x10}, {Addr: 0x350b, Val: 0x10},
	{Addr: 0x3600, Val: 0xfc}, {Addr: 0x3620, Val: 0xb7}, {Addr: 0x3621, Val: 0x05},
	{Addr: 0x3626, Val: 0x31}, {Addr: 0x3627, Val: 0x40}, {Addr: 0x3632, Val: 0xa3},
	{Addr: 0x3633, Val: 0x34}, {Addr: 0x3634, Val: 0x40}, {Addr: 0x3636, Val: 0x00},
	{Addr: 0x3660, Val: 0x80}, {Addr: 0x3662, Val: 0x03}, {Addr: 0x3664, Val: 0xf0},
	{Addr: 0x366a, Val: 0x10}, {Addr: 0x366b, Val: 0x06}, {Addr: 0x3680, Val: 0xf4},
	{Addr: 0x3681, Val: 0x50}, {Addr: 0x3682, Val: 0x00}, {Addr: 0x3708, Val: 0x20},
	{Addr: 0x3709, Val: 0x40}, {Addr: 0x370d, Val: 0x03}, {Addr: 0x373b, Val: 0x02},
	{Addr: 0x373c, Val: 0x08}, {Addr: 0x3742, Val: 0x00}, {Addr: 0x3744, Val: 0x16},
	{Addr: 0x3745, Val: 0x08}, {Addr: 0x3781, Val: 0xfc}, {Addr: 0x3788, Val: 0x00},
	{Addr: 0x3800, Val: 0x00}, {Addr: 0x3801, Val: 0x04}, {Addr: 0x3802, Val: 0x00},
	{Addr: 0x3803, Val: 0x04}, {Addr: 0x3804, Val: 0x01}, {Addr: 0x3805, Val: 0x9b},
	{Addr: 0x3806, Val: 0x01}, {Addr: 0x3807, Val: 0x9b}, {Addr: 0x3808, Val: 0x01},
	{Addr: 0x3809, Val: 0x90}, {Addr: 0x380a, Val: 0x00}, {Addr: 0x380b, Val: 0xc8},
	{Addr: 0x380c, Val: 0x05}, {Addr: 0x380d, Val: 0xf2}, {Addr: 0x380e, Val: 0x0d},
	{Addr: 0x380f, Val: 0xb0}, {Addr: 0x3810, Val: 0x00}, {Addr: 0x3811, Val: 0x04},
	{Addr: 0x3812, Val: 0x00}, {Addr: 0x3813, Val: 0x9a}, {Addr: 0x3814, Val: 0x11},
	{Addr: 0x3815, Val: 0x11}, {Addr: 0x3820, Val: 0x00}, {Addr: 0x3821, Val: 0x00},
	{Addr: 0x382b, Val: 0xfa}, {Addr: 0x382f, Val: 0x04}, {Addr: 0x3832, Val: 0x00},
	{Addr: 0x3833, Val: 0x05}, {Addr: 0x3834, Val: 0x00}, {Addr: 0x3835, Val: 0x05},
	{Addr: 0x3882, Val: 0x04}, {Addr: 0x3883, Val: 0x00}, {Addr: 0x38a4, Val: 0x10},
	{Addr: 0x38a5, Val: 0x00}, {Addr: 0x38b1, Val: 0x03}, {Addr: 0x3b80, Val: 0x00},
	{Addr: 0x3b81, Val: 0xff}, {Addr: 0x3b82, Val: 0x10}, {Addr: 0x3b83, Val: 0x00},
	{Addr: 0x3b84, Val: 0x08}, {Addr: 0x3b85, Val: 0x00}, {Addr: 0x3b86, Val: 0x01},
	{Addr: 0x3b87, Val: 0x00}, {Addr: 0x3b88, Val: 0x00}, {Addr: 0x3b89, Val: 0x00},
	{Addr: 0x3b8a, Val: 0x00}, {Addr: 0x3b8b, Val: 0x05}, {Addr: 0x3b8c, Val: 0x00},
	{Addr: 0x3b8d, Val: 0x00}, {Addr: 0x3b8e, Val: 0x01}, {Addr: 0x3b8f, Val: 0xb2},
	{Addr: 0x3b94, Val: 0x05}, {Addr: 0x3b95, Val: 0xf2}, {Addr: 0x3b96, Val: 0xc0},
	{Addr: 0x4004, Val: 0x04}, {Addr: 0x404e, Val: 0x01}, {Addr: 0x4801, Val: 0x0f},
	{Addr: 0x4806, Val: 0x0f}, {Addr: 0x4837, Val: 0x43}, {Addr: 0x5a08, Val: 0x00},
	{Addr: 0x5a01, Val: 0x00}, {Addr: 0x5a03, Val: 0x00}, {Addr: 0x5a04, Val: 0x10},
	{Addr: 0x5a05, Val: 0xa0}, {Addr: 0x5a06, Val: 0x0c}, {Addr: 0x5a07, Val: 0x78},
}
