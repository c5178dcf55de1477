package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrFailedToReadEnv     = errors.New("failed to read env file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrFailedToOpenLogFile = errors.New("failed to open diagnostics log file")

	ErrInvalidConcurrencyWorkers = errors.New("concurrency workers must be greater than 0")
	ErrInvalidWatchDebounce      = errors.New("watch debounce must not be negative")
	ErrInvalidWatchPoll          = errors.New("watch poll interval must be greater than 0")
	ErrInvalidEventsBuffer       = errors.New("events buffer must be greater than 0")

	ErrFailedToReadSettings  = errors.New("failed to read settings file")
	ErrFailedToParseSettings = errors.New("failed to parse settings file")
	ErrFailedToWriteSettings = errors.New("failed to write settings file")

	ErrRepositoryNotFound  = errors.New("repository not found")
	ErrDuplicateRepository = errors.New("repository already exists")
	ErrUnknownSourceType   = errors.New("unknown source type")
	ErrInvalidSource       = errors.New("invalid source settings")
	ErrSourceRequired      = errors.New("no repository selected")
	ErrInvalidLinePattern  = errors.New("invalid line pattern")
	ErrInvalidFormat       = errors.New("invalid file format")
	ErrFailedToOpenLog     = errors.New("failed to open log file")
	ErrFailedToQuery       = errors.New("failed to query log table")

	ErrNoDaySelected    = errors.New("no day selected")
	ErrListenerNotReady = errors.New("listener is not listening")

	ErrFilterNotFound      = errors.New("filter not found")
	ErrDuplicateFilterID   = errors.New("duplicate filter id")
	ErrFilterCycle         = errors.New("filter tree contains a cycle")
	ErrInvalidFilter       = errors.New("invalid filter expression")
	ErrNoFilterIsImmutable = errors.New("the no-filter sentinel cannot be modified")

	ErrViewerStopped       = errors.New("viewer is not running")
	ErrFailedToAcquireSlot = errors.New("failed to acquire worker")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
