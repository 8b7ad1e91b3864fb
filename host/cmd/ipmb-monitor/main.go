package main

import (
	"flag"
	"io"
	"os"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"

	"gommc/host/monitor"
	"gommc/host/serial"
)

var (
	device   = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud     = flag.Int("baud", 115200, "Baud rate of the MMC debug UART")
	loglevel = flag.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
)

func getLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.Level(*loglevel))
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.PrefixPadding = 20
	logger.SetFormatter(customFormatter)
	return logrus.NewEntry(logger)
}

func main() {
	flag.Parse()

	log := getLogger()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to open serial port")
		os.Exit(1)
	}
	defer port.Close()

	log.WithFields(logrus.Fields{
		"device": cfg.Device,
		"baud":   cfg.Baud,
	}).Info("Listening for trace frames")

	m := monitor.New(port, log)
	if err := m.Run(); err != nil && err != io.EOF {
		log.WithError(err).Error("Serial port read failed")
		os.Exit(1)
	}
}
