package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

func newTestManager(t *testing.T) (Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	cfg := config.DefaultConfig()
	cfg.Settings.Path = path

	return NewManager(cfg, logger.Nop()), path
}

func Test_Get_MissingFileReturnsDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Get()

	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func Test_Get(t *testing.T) {
	tests := []struct {
		name    string
		content string
		error   error
		check   func(t *testing.T, s Settings)
	}{
		{
			name: "full",
			content: `ui:
  order_asc: true
  logger_visible: false
  thread_visible: true
repositories:
  - id: app
    name: Application
    type: file
    dir: /var/log/app
    include: ["*.log", "*.log.gz"]
filters:
  - id: f1
    name: Errors
    expression: level:error
    enabled: true
`,
			check: func(t *testing.T, s Settings) {
				assert.True(t, s.UI.OrderAsc)
				assert.False(t, s.UI.LoggerVisible)
				require.Len(t, s.Repositories, 1)
				assert.Equal(t, []string{"*.log", "*.log.gz"}, s.Repositories[0].Include)
				require.Len(t, s.Filters, 1)
				assert.Equal(t, "level:error", s.Filters[0].Expression)
			},
		},
		{
			name:    "partial keeps defaults",
			content: "ui:\n  order_asc: true\n",
			check: func(t *testing.T, s Settings) {
				assert.True(t, s.UI.OrderAsc)
				assert.True(t, s.UI.ThreadVisible)
				assert.Empty(t, s.Repositories)
			},
		},
		{
			name:    "invalid yaml",
			content: "ui: [unclosed",
			error:   errors.ErrFailedToParseSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, path := newTestManager(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := m.Get()
			if tt.error != nil {
				assert.ErrorIs(t, err, tt.error)
				return
			}

			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func Test_Save(t *testing.T) {
	m, path := newTestManager(t)

	def := filter.NewDefinition("Errors", "level:error")

	err := m.Save(func(s *Settings) {
		s.UI.OrderAsc = true
		s.Filters = append(s.Filters, def)
	})
	require.NoError(t, err)
	assert.FileExists(t, path)

	err = m.Save(func(s *Settings) {
		s.Repositories = append(s.Repositories, Repository{ID: "db", Name: "Database", Type: config.SourceSQLite, DSN: "logs.db"})
	})
	require.NoError(t, err)

	s, err := m.Get()
	require.NoError(t, err)
	assert.True(t, s.UI.OrderAsc)
	assert.Equal(t, []filter.Definition{def}, s.Filters)

	repo, ok := s.Repository("Database")
	require.True(t, ok)
	assert.Equal(t, "db", repo.ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func Test_SaveAsync(t *testing.T) {
	m, _ := newTestManager(t)

	s := Default()
	s.UI.GridLines = true

	require.NoError(t, <-m.SaveAsync(s))

	got, err := m.Get()
	require.NoError(t, err)
	assert.True(t, got.UI.GridLines)
}

func Test_SaveAsync_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := config.DefaultConfig()
	cfg.Settings.Path = filepath.Join(blocker, "settings.yaml")
	m := NewManager(cfg, logger.Nop())

	assert.ErrorIs(t, <-m.SaveAsync(Default()), errors.ErrFailedToWriteSettings)
}

func Test_Repository_NotFound(t *testing.T) {
	_, ok := Default().Repository("missing")
	assert.False(t, ok)
}
