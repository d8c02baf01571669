package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	evtfilter "github.com/next-exp/evtfilter_go/pkg"
	"gopkg.in/yaml.v3"
)

func defaultConfiguration() evtfilter.Configuration {
	var config evtfilter.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.Skip = 0
	config.NumWorkers = 1
	config.CoincMode = true
	config.UseEnergy = false
	config.EnMin = evtfilter.DefaultMinEnergy
	config.EnMax = evtfilter.DefaultMaxEnergy
	config.MinCh = 0
	config.SumRowsCols = false
	config.TimeWindow = 5
	config.NoDB = true
	config.DBDriver = "mysql"
	config.Host = "next.ific.uv.es"
	config.User = "nextreader"
	config.Passwd = "readonly"
	config.DBName = "PETALO"
	return config
}

// LoadConfiguration overlays a JSON file, or a YAML one for .yaml/.yml
// extensions, on the default configuration.
func LoadConfiguration(filename string) (evtfilter.Configuration, error) {
	config := defaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, &evtfilter.ErrOpenFile{Filename: filename, Err: err}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config evtfilter.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Metrics file: %s", config.MetricsFile), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Coincidence mode: %t", config.CoincMode), "config")
	logger.Info(fmt.Sprintf("Energy filter: %t (%v, %v)", config.UseEnergy, config.EnMin, config.EnMax), "config")
	logger.Info(fmt.Sprintf("Min channels: %d", config.MinCh), "config")
	logger.Info(fmt.Sprintf("Sum rows and columns: %t", config.SumRowsCols), "config")
	logger.Info(fmt.Sprintf("Single minimodule: %t", config.SingleMM), "config")
	logger.Info(fmt.Sprintf("ROI filter: %t x(%v, %v) y(%v, %v)", config.UseROI, config.XROI.Min, config.XROI.Max, config.YROI.Min, config.YROI.Max), "config")
	logger.Info(fmt.Sprintf("Max supermodules: %d", config.MaxSM), "config")
	logger.Info(fmt.Sprintf("Specific minimodule: %t (%d, %d)", config.SpecificMM, config.SMNum, config.MMNum), "config")
	logger.Info(fmt.Sprintf("Valid channels: %v", config.ValidChannels), "config")
	logger.Info(fmt.Sprintf("Coincidence filter: %t window %v", config.UseCoincidence, config.TimeWindow), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Mapping file: %s", config.MappingFile), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}
