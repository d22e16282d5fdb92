/*
DESCRIPTION
  device.go provides Device, an interface that describes a configurable
  sensor device that can be started and stopped.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package device provides an interface for sensor devices whose capture can
// be configured, started and stopped. A sensor device here is control-plane
// only; captured data leaves the device over its own link (e.g. CSI-2) and
// is not read through the Device.
package device

import (
	"fmt"

	"github.com/ausocean/sensor/config"
)

// Device describes a configurable sensor device that can be started and
// stopped.
type Device interface {
	// Name returns the name of the Device.
	Name() string

	// Set allows for configuration of the Device using a Config struct. All,
	// some or none of the fields of the Config struct may be used for
	// configuration by an implementation. An implementation should specify
	// what fields are considered.
	Set(c config.Config) error

	// Start will start the Device capturing data.
	Start() error

	// Stop will stop the Device from capturing data. The Device may be
	// started again afterwards.
	Stop() error

	// IsRunning is used to determine if the device is running.
	IsRunning() bool
}

// MultiError implements the built in error interface. MultiError is used here
// to collect multi errors during validation of configuration parameters for
// Devices.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}
