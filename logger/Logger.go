package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = &Logger{}

type Logger struct {
	mu      sync.Mutex
	console bool
	rolling *lumberjack.Logger
}

type loggerProperties struct {
	logFilename string
	maxSize     int
	maxBackups  int
	maxAge      int
	compress    bool
	level       string
	console     bool
}

func readLoggerProperties(path string) (loggerProperties, error) {
	v := viper.New()
	v.SetConfigName("logger")
	v.SetConfigType("properties")
	v.AddConfigPath(path)

	v.SetDefault("logFilename", "pong.log")
	v.SetDefault("maxSize", 10)
	v.SetDefault("maxBackups", 3)
	v.SetDefault("maxAge", 28)
	v.SetDefault("compress", false)
	v.SetDefault("level", "Info")
	v.SetDefault("console", true)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return loggerProperties{}, fmt.Errorf("logger config file: %w", err)
	}

	return loggerProperties{
		logFilename: cast.ToString(v.Get("logFilename")),
		maxSize:     cast.ToInt(v.Get("maxSize")),
		maxBackups:  cast.ToInt(v.Get("maxBackups")),
		maxAge:      cast.ToInt(v.Get("maxAge")),
		compress:    cast.ToBool(v.Get("compress")),
		level:       cast.ToString(v.Get("level")),
		console:     cast.ToBool(v.Get("console")),
	}, nil
}

// Init reads logger.properties from path and points logrus at a rolling file.
func (l *Logger) Init(path string) error {
	props, err := readLoggerProperties(path)
	if err != nil {
		return err
	}

	rolling := &lumberjack.Logger{
		Filename:   props.logFilename,
		MaxSize:    props.maxSize,
		MaxBackups: props.maxBackups,
		MaxAge:     props.maxAge,
		Compress:   props.compress,
	}
	l.setup(rolling, props.level)

	l.mu.Lock()
	l.console = props.console
	l.rolling = rolling
	l.mu.Unlock()
	return nil
}

func (l *Logger) setup(out io.Writer, level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(out)
	logrus.SetLevel(parseLevel(level))
}

func parseLevel(level string) logrus.Level {
	switch level {

	case "Trace":
		return logrus.TraceLevel

	case "Info":
		return logrus.InfoLevel

	case "Warn":
		return logrus.WarnLevel

	case "Error":
		return logrus.ErrorLevel

	case "Fatal":
		return logrus.FatalLevel

	default:
		return logrus.DebugLevel
	}
}

// SetConsole turns the stdout echo on or off. Terminal front ends own the
// screen and switch it off.
func (l *Logger) SetConsole(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = on
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rolling == nil {
		return nil
	}
	err := l.rolling.Close()
	l.rolling = nil
	return err
}

func (l *Logger) echo(level, message string) {
	l.mu.Lock()
	console := l.console
	l.mu.Unlock()
	if console {
		fmt.Fprintln(os.Stdout, level+":", message)
	}
}

// WithFields attaches structured fields; the entry is written to the log file only.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func (l *Logger) Info(message string) {
	logrus.Info(message)
	l.echo("Info", message)
}

func (l *Logger) Error(message string) {
	logrus.Error(message)
	l.echo("Error", message)
}

func (l *Logger) Debug(message string) {
	logrus.Debug(message)
	l.echo("Debug", message)
}

func (l *Logger) Warn(message string) {
	logrus.Warn(message)
	l.echo("Warn", message)
}

func (l *Logger) Fatal(message string) {
	l.echo("Fatal", message)
	logrus.Fatal(message)
}
