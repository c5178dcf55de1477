package generator

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

const templatePath = "templates/logreader.yaml.tmpl"

//go:embed templates/logreader.yaml.tmpl
var templateFS embed.FS

// Options contains the values written into logreader.yaml
type Options struct {
	LogLevel     string
	Workers      int
	Debounce     time.Duration
	Poll         time.Duration
	SettingsPath string
}

// DefaultOptions returns the built-in defaults
func DefaultOptions() Options {
	return Options{
		LogLevel:     config.DefaultLogLevel,
		Workers:      config.MaxWorkers,
		Debounce:     config.WatchDebounce,
		Poll:         config.WatchPoll,
		SettingsPath: config.DefaultSettingsPath(),
	}
}

// Generator defines the interface for generating logreader.yaml
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type generator struct {
	out io.Writer
	log logger.Logger
}

// NewGenerator creates a generator printing dry runs to stdout
func NewGenerator(log logger.Logger) Generator {
	return NewGeneratorWithOutput(os.Stdout, log)
}

// NewGeneratorWithOutput creates a generator printing dry runs to out
func NewGeneratorWithOutput(out io.Writer, log logger.Logger) Generator {
	return &generator{
		out: out,
		log: log,
	}
}

// Generate creates logreader.yaml in the working directory from the template
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	if !dryRun && !force {
		if _, err := os.Stat(config.ConfigFile); err == nil {
			return fmt.Errorf("file %s already exists, use --force to overwrite", config.ConfigFile)
		}
	}

	tmplContent, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New(config.ConfigFile).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if dryRun {
		_, err := g.out.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(config.ConfigFile, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	g.log.Info().Msgf("Generated %s", config.ConfigFile)

	return nil
}
