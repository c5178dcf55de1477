package notify

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=notify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/getsentry/sentry-go"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

const flushTimeout = 2 * time.Second

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	askStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
)

// Notifier is how the engine talks to the operator
type Notifier interface {
	NotifySuccess(msg string)
	NotifyInformation(msg string)
	NotifyError(err error, msg string)
	Ask(question string) bool
	Busy(label string) func()
	IsBusy() bool
	Close()
}

// console implements Notifier on a terminal
type console struct {
	out   io.Writer
	in    *bufio.Reader
	hub   *sentry.Hub
	log   logger.Logger
	mu    sync.Mutex
	busy  int
	label string
}

// NewConsole creates a notifier on stderr and stdin
func NewConsole(cfg *config.Config, log logger.Logger) Notifier {
	return NewConsoleWithIO(cfg, os.Stdin, os.Stderr, log)
}

// NewConsoleWithIO creates a notifier on the given streams; a nil in answers every question with no
func NewConsoleWithIO(cfg *config.Config, in io.Reader, out io.Writer, log logger.Logger) Notifier {
	c := &console{
		out: out,
		log: log,
	}

	if in != nil {
		c.in = bufio.NewReader(in)
	}

	if cfg.Report.DSN != "" {
		client, err := sentry.NewClient(sentry.ClientOptions{
			Dsn:     cfg.Report.DSN,
			Release: config.AppName + "@" + config.Version,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Error reporting disabled")
		} else {
			c.hub = sentry.NewHub(client, sentry.NewScope())
		}
	}

	return c
}

// NotifySuccess reports a completed action
func (c *console) NotifySuccess(msg string) {
	c.println(successStyle.Render("✓ " + msg))
}

// NotifyInformation reports progress
func (c *console) NotifyInformation(msg string) {
	c.println(infoStyle.Render(msg))
}

// NotifyError reports a failure and forwards it to error reporting when configured
func (c *console) NotifyError(err error, msg string) {
	text := msg
	if err != nil {
		text = fmt.Sprintf("%s: %v", msg, err)
	}

	c.println(errorStyle.Render("✗ " + text))
	c.log.Error().Err(err).Msg(msg)

	if c.hub != nil && err != nil {
		c.hub.CaptureException(err)
	}
}

// Ask asks a yes/no question; anything but y or yes is a no
func (c *console) Ask(question string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprint(c.out, askStyle.Render(question+" [y/N] "))

	if c.in == nil {
		fmt.Fprintln(c.out)
		return false
	}

	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(c.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Busy marks the notifier busy until the returned release is called; release is idempotent
func (c *console) Busy(label string) func() {
	c.mu.Lock()
	c.busy++
	c.label = label
	c.mu.Unlock()

	c.log.Debug().Msgf("Busy: %s", label)

	var once sync.Once

	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.busy--
			c.mu.Unlock()
		})
	}
}

// IsBusy reports whether any busy scope is held
func (c *console) IsBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.busy > 0
}

// Close flushes pending error reports
func (c *console) Close() {
	if c.hub != nil {
		c.hub.Flush(flushTimeout)
	}
}

func (c *console) println(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, text)
}
