/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type
  in a string format, a function for updating the variable in the Config
  struct from a string, and finally, a validation function to check the
  validity of the corresponding field value in the Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map keys.
const (
	KeyExposure     = "Exposure"
	KeyExposureMode = "ExposureMode"
	KeyFrameRate    = "FrameRate"
	KeyHeight       = "Height"
	KeyI2CPort      = "I2CPort"
	KeyLogging      = "logging"
	KeySuppress     = "Suppress"
	KeyWidth        = "Width"
)

// Config map parameter types.
const (
	typeString = "string"
	typeInt    = "int"
	typeUint   = "uint"
	typeBool   = "bool"
)

// Default variable values.
const (
	defaultWidth        = 400
	defaultHeight       = 200
	defaultFrameRate    = 45
	defaultExposureMode = ExposureAuto
	defaultVerbosity    = logging.Error
	defaultI2CPort      = 1
)

// Variables describes the variables that can be used for sensor control.
// These structs provide the name and type of variable, a function for
// updating this variable in a Config, and a function for validating the
// value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyExposure,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Exposure = parseUint(KeyExposure, v, c) },
	},
	{
		Name:   KeyExposureMode,
		Type:   "enum:auto,manual",
		Update: func(c *Config, v string) { c.ExposureMode = strings.ToLower(v) },
		Validate: func(c *Config) {
			switch c.ExposureMode {
			case ExposureAuto, ExposureManual:
			default:
				c.LogInvalidField(KeyExposureMode, defaultExposureMode)
				c.ExposureMode = defaultExposureMode
			}
		},
	},
	{
		Name:   KeyFrameRate,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FrameRate = parseUint(KeyFrameRate, v, c) },
		Validate: func(c *Config) {
			if c.FrameRate == 0 {
				c.LogInvalidField(KeyFrameRate, defaultFrameRate)
				c.FrameRate = defaultFrameRate
			}
		},
	},
	{
		Name:   KeyHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Height = parseUint(KeyHeight, v, c) },
		Validate: func(c *Config) {
			if c.Height == 0 {
				c.LogInvalidField(KeyHeight, defaultHeight)
				c.Height = defaultHeight
			}
		},
	},
	{
		Name:   KeyI2CPort,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.I2CPort = parseInt(KeyI2CPort, v, c) },
		Validate: func(c *Config) {
			if c.I2CPort < 0 {
				c.LogInvalidField(KeyI2CPort, defaultI2CPort)
				c.I2CPort = defaultI2CPort
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField(KeyLogging, defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeySuppress,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Suppress = parseBool(KeySuppress, v, c) },
	},
	{
		Name:   KeyWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Width = parseUint(KeyWidth, v, c) },
		Validate: func(c *Config) {
			if c.Width == 0 {
				c.LogInvalidField(KeyWidth, defaultWidth)
				c.Width = defaultWidth
			}
		},
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseInt(n, v string, c *Config) int {
	_v, err := strconv.Atoi(v)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}
