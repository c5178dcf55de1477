package config

import "time"

// app constants
const (
	AppName        = "logreader"
	AppDescription = "Browse, filter and follow application logs day by day"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	ConfigFile = "logreader.yaml"
	EnvFile    = ".env"

	Version = "0.4.0"
)

// worker constants
const (
	MaxWorkers = 2
)

// watch constants
const (
	WatchDebounce = 500 * time.Millisecond
	WatchPoll     = 2 * time.Second
)

// event constants
const (
	EventsBufferSize = 64
)

// settings constants
const (
	SettingsDir  = ".logreader"
	SettingsFile = "settings.yaml"
)

// source type constants
const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// file source constants
const (
	FormatPattern = "pattern"
	FormatJSON    = "json"

	DefaultInclude    = "*.log"
	DefaultPattern    = `^(?P<time>\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?)\|(?P<level>[A-Za-z]+)\|(?P<logger>[^|]*)\|(?P<thread>[^|]*)\|(?P<message>.*)$`
	DefaultTimeLayout = "2006-01-02 15:04:05.999999999"
)

// table source constants
const (
	DefaultTable = "logs"
)
