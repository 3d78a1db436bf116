package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	sqlx "github.com/jmoiron/sqlx"
	reducer "github.com/uvit-soft/reducer_go/pkg"
)

var dbConn *sqlx.DB
var configuration reducer.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := newConsoleHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	reducer.SetConfiguration(configuration)
	reducer.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	list, err := reducer.ReadEventList(file)
	if err != nil {
		message := fmt.Errorf("Error reading event list: %w", err)
		logger.Error(message.Error())
		return
	}
	if configuration.Detector != "" {
		list.Detector = configuration.Detector
	}

	if !configuration.NoDB {
		dbConn, err = reducer.ConnectToDatabase(configuration.User, configuration.Passwd,
			configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()
		if err := reducer.LoadDatabase(dbConn, int(list.RunNumber)); err != nil {
			return
		}
	}

	session := newSession(list)
	if err := session.Run(); err != nil {
		message := fmt.Errorf("Reduction failed: %w", err)
		logger.Error(message.Error())
	}
}

func newSession(list *reducer.EventList) *reducer.Session {
	params := reducer.DefaultParameters()
	params.FrameMin = int(list.FrameMin)
	params.FrameMax = int(list.FrameMax)
	params.Resolution = configuration.Resolution
	params.ImageSize = configuration.ImageSize
	params.Detector = list.Detector
	params.RunNumber = int(list.RunNumber)

	session := reducer.NewSession(list, params)
	if Interactive() && !configuration.Unattended {
		session.Interactive = true
		session.Prompter = NewConsolePrompter()
	}
	if configuration.WriteData {
		session.Persist = persistProducts
	}
	return session
}

func persistProducts(s *reducer.Session, rec *reducer.Reconciliation,
	image *reducer.ImageAccumulator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writer recovered from panic: %v", r)
		}
	}()

	writer := reducer.NewWriter(configuration.FileOut)
	writer.WriteProducts(s.List, rec, s.SavedFlags(), &s.Params, image)
	return writer.Close()
}
