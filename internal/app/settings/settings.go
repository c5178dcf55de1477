package settings

//go:generate mockgen -source=settings.go -destination=settings_mock.go -package=settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.yaml.in/yaml/v3"

	"logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// UI holds the viewer preferences persisted between sessions
type UI struct {
	OrderAsc      bool `yaml:"order_asc"`
	LoggerVisible bool `yaml:"logger_visible"`
	ThreadVisible bool `yaml:"thread_visible"`
	GridLines     bool `yaml:"grid_lines"`
}

// Repository is a named backend configuration
type Repository struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Dir        string   `yaml:"dir,omitempty"`
	Include    []string `yaml:"include,omitempty"`
	Ignore     []string `yaml:"ignore,omitempty"`
	Format     string   `yaml:"format,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	TimeLayout string   `yaml:"time_layout,omitempty"`
	DSN        string   `yaml:"dsn,omitempty"`
	Table      string   `yaml:"table,omitempty"`
	QueryDays  string   `yaml:"query_days,omitempty"`
	QueryLogs  string   `yaml:"query_logs,omitempty"`
	QueryCount string   `yaml:"query_count,omitempty"`
}

// Settings is the persisted user settings blob
type Settings struct {
	UI           UI                  `yaml:"ui"`
	Repositories []Repository        `yaml:"repositories"`
	Filters      []filter.Definition `yaml:"filters"`
}

// Default returns the settings used when no file exists yet
func Default() Settings {
	return Settings{
		UI: UI{
			LoggerVisible: true,
			ThreadVisible: true,
		},
		Repositories: []Repository{},
		Filters:      []filter.Definition{},
	}
}

// Repository looks up a repository by id or name
func (s Settings) Repository(key string) (Repository, bool) {
	for _, repo := range s.Repositories {
		if repo.ID == key || repo.Name == key {
			return repo, true
		}
	}

	return Repository{}, false
}

// Manager reads and writes the settings blob
type Manager interface {
	Get() (Settings, error)
	Save(mutate func(*Settings)) error
	SaveAsync(s Settings) <-chan error
}

// manager implements Manager backed by a YAML file
type manager struct {
	path string
	mu   sync.Mutex
	log  logger.Logger
}

// NewManager creates a settings manager for the configured path
func NewManager(cfg *config.Config, log logger.Logger) Manager {
	return &manager{
		path: cfg.Settings.Path,
		log:  log,
	}
}

// Get reads the settings file, returning defaults when it does not exist
func (m *manager) Get() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.read()
}

// Save applies mutate to the current settings and writes the result
func (m *manager) Save(mutate func(*Settings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.read()
	if err != nil {
		return err
	}

	mutate(&s)

	return m.write(s)
}

// SaveAsync writes s in the background; the channel yields the outcome once
func (m *manager) SaveAsync(s Settings) <-chan error {
	done := make(chan error, 1)

	go func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		done <- m.write(s)
		close(done)
	}()

	return done
}

func (m *manager) read() (Settings, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.log.Debug().Msgf("Settings file '%s' not found, using defaults", m.path)
			return Default(), nil
		}

		return Settings{}, fmt.Errorf("%w: %w", errors.ErrFailedToReadSettings, err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", errors.ErrFailedToParseSettings, err)
	}

	return s, nil
}

// write replaces the settings file atomically through a temp file in the same directory
func (m *manager) write(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSettings, err)
	}

	m.log.Debug().Msgf("Settings written to '%s'", m.path)

	return nil
}
