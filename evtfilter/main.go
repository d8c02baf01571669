package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	evtfilter "github.com/next-exp/evtfilter_go/pkg"
	"github.com/prometheus/client_golang/prometheus"
)

var configuration evtfilter.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	numWorkers := flag.Int("workers", 0, "Number of workers, overrides the configuration file")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *numWorkers > 0 {
		configuration.NumWorkers = *numWorkers
	}
	evtfilter.SetConfiguration(configuration)
	evtfilter.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if err := run(configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(config evtfilter.Configuration) error {
	start := time.Now()

	mapping, err := loadMapping(config)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	selector, err := evtfilter.NewSelector(config, mapping, evtfilter.NewMetrics(registry))
	if err != nil {
		return fmt.Errorf("Error building selector: %w", err)
	}

	file, err := os.Open(config.FileIn)
	if err != nil {
		return &evtfilter.ErrOpenFile{Filename: config.FileIn, Err: err}
	}
	defer file.Close()

	reader := evtfilter.NewEventReader(file, config.Skip, config.MaxEvents)
	summary, err := runSelection(reader, selector, config.NumWorkers)
	if err != nil {
		return fmt.Errorf("Error reading events: %w", err)
	}
	printSummary(summary, logger)

	if config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(config.MetricsFile, registry); err != nil {
			return fmt.Errorf("Error writing metrics file: %w", err)
		}
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
	return nil
}

func loadMapping(config evtfilter.Configuration) (evtfilter.Mapping, error) {
	if config.NoDB {
		return evtfilter.LoadMappingFile(config.MappingFile)
	}
	dbConn, err := evtfilter.ConnectToDatabase(config.DBDriver, config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return evtfilter.Mapping{}, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()
	return evtfilter.LoadMappingFromDB(dbConn, config.RunNumber)
}
