/*
DESCRIPTION
  sensor is a netsender client intended to be run alongside a camera unit,
  providing cloud control of the unit's OV6211 image sensor.

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


// Package sensor is a netsender client for OV6211 image sensor control. The
// sensor's operating mode, frame rate and exposure are driven by cloud
// variables; pixel data itself leaves the sensor over its CSI-2 link and is
// not handled here.
package main

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ausocean/client/pi/gpio"
	"github.com/ausocean/client/pi/netlogger"
	"github.com/ausocean/client/pi/netsender"
	"github.com/ausocean/utils/logging"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/sensor/config"
	"github.com/ausocean/sensor/device/ov6211"
	"github.com/ausocean/sensor/register/i2c"
)

// Logging configuration.
const (
	logPath      = "/var/log/netsender/netsender.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Misc constants.
const (
	netSendRetryTime = 5 * time.Second
	defaultSleepTime = 60 // Seconds
	pkg              = "sensor: "
	i2cPort          = 1
)

// Sensor modes.
const (
	modeStreaming = "Streaming"
	modeIdle      = "Idle"
)

// varMap holds the variable types to send to the cloud; the config package's
// variables are added alongside the mode control.
var varMap = map[string]string{
	"SensorMode": "enum:" + strings.Join([]string{modeStreaming, modeIdle}, ","),
}

func init() {
	for _, v := range config.Variables {
		varMap[v.Name] = v.Type
	}
}

func main() {

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	// Create netlogger to handle logging to cloud.
	netLog := netlogger.New()

	// Create logger that we call methods on to log, which in turn writes to the
	// lumberjack and netloggers.
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, netLog), logSuppress)

	// Create i2c bus to communicate with the sensor.
	bus := embd.NewI2CBus(i2cPort)
	sens := ov6211.New(i2c.New(bus), log)

	cfg := config.Config{Logger: log, I2CPort: i2cPort}
	err := cfg.Validate()
	if err != nil {
		log.Fatal("config validation failed", "error", err)
	}

	err = sens.Set(cfg)
	if err != nil {
		// Defaulted fields are reported through the returned multiError, but
		// the sensor is still configured.
		log.Warning(pkg+"sensor set with defaults", "error", err)
	}

	// Confirm the sensor is present and load its initial mode registers. If
	// the chip ID doesn't match there is no point continuing.
	err = sens.Init()
	if err != nil {
		log.Fatal("could not initialise sensor", "error", err)
	}

	// The netsender client handles cloud communication and GPIO control.
	log.Debug("initialising netsender client")
	ns, err := netsender.New(log, gpio.InitPin, nil, gpio.WritePin, netsender.WithVarTypes(varMap))
	if err != nil {
		log.Fatal("could not initialise netsender client", "error", err)
	}

	// Start the control loop.
	log.Debug("starting control loop")
	run(sens, ns, &cfg, log, netLog)
}

// run starts a control loop that runs netsender, sends logs, checks for var
// changes, and on change reconfigures the sensor and applies the requested
// mode (streaming or idle).
func run(sens *ov6211.Sensor, ns *netsender.Sender, cfg *config.Config, l logging.Logger, nl *netlogger.Logger) {
	var vs int

	for {
		l.Debug("running netsender")
		err := ns.Run()
		if err != nil {
			l.Warning("run failed. Retrying...", "error", err)
			time.Sleep(netSendRetryTime)
			continue
		}

		l.Debug("sending logs")
		err = nl.Send(ns)
		if err != nil {
			l.Warning(pkg+"Logs could not be sent", "error", err)
		}

		l.Debug("checking varsum")
		newVs := ns.VarSum()
		if vs == newVs {
			sleep(ns, l)
			continue
		}
		vs = newVs
		l.Info("varsum changed", "vs", vs)

		l.Debug("getting new vars")
		vars, err := ns.Vars()
		if err != nil {
			l.Error(pkg+"netSender failed to get vars", "error", err)
			time.Sleep(netSendRetryTime)
			continue
		}
		l.Info("got new vars", "vars", vars)

		l.Debug("updating sensor configuration")
		err = update(sens, cfg, vars, l)
		if err != nil {
			l.Warning(pkg+"couldn't update sensor", "error", err)
		}

		sleep(ns, l)
	}
}

// update applies new cloud vars to the sensor. Configuration changes are
// rejected while streaming, so the sensor is stopped first and the prior
// mode restored afterwards unless SensorMode requests otherwise.
func update(sens *ov6211.Sensor, cfg *config.Config, vars map[string]string, l logging.Logger) error {
	wasRunning := sens.IsRunning()
	if wasRunning {
		err := sens.Stop()
		if err != nil {
			return err
		}
	}

	cfg.Update(vars)
	err := cfg.Validate()
	if err != nil {
		return err
	}

	err = sens.Set(*cfg)
	if err != nil {
		// Defaulting notices only; the sensor took the config.
		l.Warning(pkg+"sensor set with defaults", "error", err)
	}

	mode := vars["SensorMode"]
	switch mode {
	case modeStreaming:
		return sens.Start()
	case modeIdle:
		return nil
	case "":
		if wasRunning {
			return sens.Start()
		}
		return nil
	default:
		l.Warning("invalid SensorMode", "SensorMode", mode)
		if wasRunning {
			return sens.Start()
		}
		return nil
	}
}

// sleep uses a delay to halt the program based on the monitoring period
// netsender parameter (mp) defined in the netsender.conf config.
func sleep(ns *netsender.Sender, l logging.Logger) {
	l.Debug("sleeping")
	t, err := strconv.Atoi(ns.Param("mp"))
	if err != nil {
		l.Error(pkg+"could not get sleep time, using default", "error", err)
		t = defaultSleepTime
	}
	time.Sleep(time.Duration(t) * time.Second)
	l.Debug("finished sleeping")
}
