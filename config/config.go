/*
DESCRIPTION
  config.go contains the configuration settings for sensor control clients.

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


// Package config contains the configuration settings for sensor control.
package config

import (
	"github.com/ausocean/utils/logging"
)

// Exposure control modes.
const (
	ExposureAuto   = "auto"
	ExposureManual = "manual"
)

// Config provides parameters relevant to a sensor control instance. Default
// values for these fields are defined as consts in variables.go.
type Config struct {
	// Width and Height define the requested capture geometry in pixels. The
	// sensor will resolve these to the nearest supported mode.
	Width  uint
	Height uint

	// FrameRate defines the requested capture rate in frames per second. Only
	// rates enumerated by the sensor are accepted.
	FrameRate uint

	// ExposureMode selects automatic or manual exposure control. Valid values
	// are the ExposureAuto and ExposureManual consts above.
	ExposureMode string

	// Exposure is the manual exposure duration in sensor lines. It is only
	// consulted when ExposureMode is manual.
	Exposure uint

	// I2CPort is the index of the I2C bus the sensor is attached to.
	I2CPort int

	// Logger holds an implementation of the logging.Logger interface. This
	// must be set for sensor control to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level. Valid values are defined by
	// enums from the logging package: logging.Debug, logging.Info,
	// logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	Suppress bool // Holds logger suppression state.
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values converting into the correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
