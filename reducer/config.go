package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	reducer "github.com/uvit-soft/reducer_go/pkg"
)

func LoadConfiguration(filename string) (reducer.Configuration, error) {
	var config reducer.Configuration

	// Set default values
	config.MaxFrames = 0
	config.Verbosity = 0
	config.Detector = ""
	config.NoDB = false
	config.Host = "uvit.iiap.res.in"
	config.User = "uvreader"
	config.Passwd = "readonly"
	config.DBName = "UVIT"
	config.Unattended = false
	config.WriteData = true
	config.Resolution = 8
	config.ImageSize = 512
	config.CompressionLevel = 4

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config reducer.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Detector override: %s", config.Detector), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Unattended: %t", config.Unattended), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Max frames: %d", config.MaxFrames), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Resolution: %d", config.Resolution), "config")
	logger.Info(fmt.Sprintf("Image size: %d", config.ImageSize), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
}

type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}
