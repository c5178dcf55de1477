package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"logreader/internal/app/filter"
	"logreader/internal/app/logs"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
)

type listenableSource struct {
	*source.MockLogSource
	*source.MockListener
}

func Test_New(t *testing.T) {
	s := New()

	assert.False(t, s.HasSource())
	assert.False(t, s.HasDay())
	assert.False(t, s.Listenable())
	assert.Equal(t, filter.AllLevels, s.Criteria.Levels)
	assert.Equal(t, logs.Desc, s.Order())
	assert.True(t, filter.IsNoFilter(s.Definition))
}

func Test_WithSource_ClearsDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := logs.Day{Year: 2024, Month: time.March, Date: 1}
	src := source.NewMockLogSource(ctrl)

	s := New().WithDay(day)
	assert.True(t, s.HasDay())

	next := s.WithSource(settings.Repository{Name: "app"}, src)

	assert.True(t, next.HasSource())
	assert.False(t, next.HasDay())
	assert.Equal(t, "app", next.Repository.Name)
	assert.Equal(t, day, s.Day, "Previous value is unchanged")
}

func Test_Listenable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plain := New().WithSource(settings.Repository{}, source.NewMockLogSource(ctrl))
	assert.False(t, plain.Listenable())

	live := New().WithSource(settings.Repository{}, listenableSource{
		MockLogSource: source.NewMockLogSource(ctrl),
		MockListener:  source.NewMockListener(ctrl),
	})
	assert.True(t, live.Listenable())
}

func Test_WithCriteriaAndDefinition(t *testing.T) {
	s := New().
		WithCriteria(filter.DefaultCriteria().WithAscending(true).WithText("timeout")).
		WithDefinition("abc")

	assert.Equal(t, logs.Asc, s.Order())
	assert.Equal(t, "timeout", s.Criteria.Text)
	assert.Equal(t, "abc", s.Definition)

	assert.Equal(t, filter.NoFilterID, s.WithDefinition("").Definition)
}
