package source

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/app/settings"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Dialect describes how a SQL backend is opened and how it derives a row's day
type Dialect struct {
	Name    string
	open    func(dsn string) gorm.Dialector
	dayExpr string
}

// Supported SQL dialects
var (
	SQLite = Dialect{
		Name:    config.SourceSQLite,
		open:    sqlite.Open,
		dayExpr: `substr("time", 1, 10)`,
	}
	Postgres = Dialect{
		Name:    config.SourcePostgres,
		open:    postgres.Open,
		dayExpr: `to_char("time", 'YYYY-MM-DD')`,
	}
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Record is the default row layout of a log table
type Record struct {
	Time    time.Time `gorm:"column:time;index"`
	Level   string    `gorm:"column:level"`
	Logger  string    `gorm:"column:logger"`
	Thread  string    `gorm:"column:thread"`
	Message string    `gorm:"column:message;type:text"`
}

// TableSource reads rows from a relational table, opening a connection per call
type TableSource struct {
	name       string
	dialect    Dialect
	dsn        string
	queryDays  string
	queryLogs  string
	queryCount string
	log        logger.Logger
	*pollListener
}

// NewTableSource validates the repository settings and builds a table source
func NewTableSource(repo settings.Repository, dialect Dialect, poll time.Duration, log logger.Logger) (*TableSource, error) {
	dsn := os.ExpandEnv(repo.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: repository '%s' has no dsn", errors.ErrInvalidSource, repo.Name)
	}

	table := repo.Table
	if table == "" {
		table = config.DefaultTable
	}

	if !identifierRegex.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name '%s'", errors.ErrInvalidSource, table)
	}

	src := &TableSource{
		name:       repo.Name,
		dialect:    dialect,
		dsn:        dsn,
		queryDays:  orDefault(repo.QueryDays, fmt.Sprintf(`SELECT DISTINCT %s AS day FROM %s`, dialect.dayExpr, table)),
		queryLogs:  orDefault(repo.QueryLogs, fmt.Sprintf(`SELECT "time", level, logger, thread, message FROM %s WHERE %s = @day`, table, dialect.dayExpr)),
		queryCount: orDefault(repo.QueryCount, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = @day`, table, dialect.dayExpr)),
		log:        log,
	}
	src.pollListener = newPollListener(src.count, poll, log)

	return src, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

// GetDays returns the distinct days present in the table
func (s *TableSource) GetDays(ctx context.Context, order logs.OrderBy) ([]logs.Day, error) {
	if !order.Valid() {
		return nil, &logs.UnsupportedOrderError{Order: order}
	}

	var values []string

	err := s.withDB(ctx, func(db *gorm.DB) error {
		return db.Raw(s.queryDays).Scan(&values).Error
	})
	if err != nil {
		return nil, err
	}

	days := make([]logs.Day, 0, len(values))
	for _, value := range values {
		day, err := logs.ParseDay(value)
		if err != nil {
			s.log.Warn().Err(err).Msgf("Skipping unparsable day in '%s'", s.name)
			continue
		}

		days = append(days, day)
	}

	return logs.SortDays(days, order)
}

// GetLogs returns the rows of day
func (s *TableSource) GetLogs(ctx context.Context, day logs.Day, order logs.OrderBy) ([]logs.Row, error) {
	if !order.Valid() {
		return nil, &logs.UnsupportedOrderError{Order: order}
	}

	var records []Record

	err := s.withDB(ctx, func(db *gorm.DB) error {
		return db.Raw(s.queryLogs, dayParams(day)).Scan(&records).Error
	})
	if err != nil {
		return nil, err
	}

	rows := make([]logs.Row, len(records))
	for i, r := range records {
		rows[i] = logs.Row{
			Time:    r.Time,
			Level:   logs.Level(r.Level).Normalize(),
			Logger:  r.Logger,
			Thread:  r.Thread,
			Message: r.Message,
		}
	}

	return logs.SortRows(rows, order)
}

// count returns the number of rows of day
func (s *TableSource) count(ctx context.Context, day logs.Day) (int64, error) {
	var n int64

	err := s.withDB(ctx, func(db *gorm.DB) error {
		return db.Raw(s.queryCount, dayParams(day)).Scan(&n).Error
	})

	return n, err
}

// withDB opens a connection, runs fn and closes the connection before returning
func (s *TableSource) withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(s.dialect.open(s.dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToQuery, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToQuery, err)
	}
	defer sqlDB.Close()

	if err := fn(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrFailedToQuery, s.name, err)
	}

	return nil
}

// dayParams binds @day, @from and @to for day in local time
func dayParams(day logs.Day) map[string]interface{} {
	from := day.Start(time.Local)

	return map[string]interface{}{
		"day":  day.String(),
		"from": from,
		"to":   from.AddDate(0, 0, 1),
	}
}
