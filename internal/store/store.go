// Package store 把分析结果持久化到 SQL 数据库，用于跨版本的历史对比。
// 支持 sqlite（modernc.org/sqlite）、mysql 与 postgres（pgx）三种后端。
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gohalstead/internal/config"
	"gohalstead/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

const (
	runsTable    = "gohalstead_runs"
	resultsTable = "gohalstead_results"
)

// ErrUnsupportedBackend 表示未知的存储后端。
var ErrUnsupportedBackend = errors.New("unsupported store backend")

// Store 封装一个数据库连接。
type Store struct {
	db      *sql.DB
	backend string
}

// HistoryEntry 是某个文件在一次运行中的结果摘要。
type HistoryEntry struct {
	RunID       int64   `json:"run_id"`
	Filepath    string  `json:"filepath"`
	Version     string  `json:"version"`
	Date        string  `json:"date"`
	Fingerprint string  `json:"fingerprint"`
	Volume      float64 `json:"volume"`
	Difficulty  float64 `json:"difficulty"`
	Effort      float64 `json:"effort"`
	Score       int     `json:"score"`
	Grade       string  `json:"grade"`
}

// Open 打开并初始化数据库。
func Open(backend string, dsn string) (*Store, error) {
	var driverName string
	switch backend {
	case config.StoreSQLite:
		driverName = "sqlite"
		if dsn == "" {
			dsn = config.DefaultSQLiteDSN
		}
	case config.StoreMySQL:
		driverName = "mysql"
	case config.StorePostgres:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == config.StoreSQLite {
		// 单连接避免 "database is locked"，同时让 :memory: 数据库在各次查询间共享。
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}

	s := &Store{db: db, backend: backend}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close 关闭连接。
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	for _, query := range createQueries(s.backend) {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func createQueries(backend string) []string {
	idColumn := "run_id INTEGER PRIMARY KEY AUTOINCREMENT"
	timeType := "TEXT"
	realType := "REAL"
	textType := "TEXT"
	switch backend {
	case config.StoreMySQL:
		idColumn = "run_id BIGINT AUTO_INCREMENT PRIMARY KEY"
		timeType = "DATETIME(6)"
		realType = "DOUBLE"
		textType = "VARCHAR(512)"
	case config.StorePostgres:
		idColumn = "run_id BIGSERIAL PRIMARY KEY"
		timeType = "TIMESTAMPTZ"
		realType = "DOUBLE PRECISION"
	}

	runs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			source TEXT,
			start_time %s NOT NULL,
			end_time %s,
			total_files INTEGER,
			skipped_files INTEGER,
			config_params TEXT
		)`, runsTable, idColumn, timeType, timeType)

	results := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id BIGINT NOT NULL,
			ordinal INTEGER NOT NULL,
			filepath %s NOT NULL,
			filename TEXT NOT NULL,
			language TEXT NOT NULL,
			version TEXT NOT NULL,
			date TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			total_lines INTEGER NOT NULL,
			blank_lines INTEGER NOT NULL,
			comment_lines INTEGER NOT NULL,
			code_lines INTEGER NOT NULL,
			vocabulary INTEGER NOT NULL,
			program_length INTEGER NOT NULL,
			volume %s NOT NULL,
			difficulty %s NOT NULL,
			effort %s NOT NULL,
			time_seconds %s NOT NULL,
			delivered_bugs %s NOT NULL,
			avg_line_length %s NOT NULL,
			keywords TEXT NOT NULL,
			score INTEGER NOT NULL,
			grade TEXT NOT NULL,
			PRIMARY KEY (run_id, ordinal)
		)`, resultsTable, textType, realType, realType, realType, realType, realType, realType)

	return []string{runs, results}
}

// rebind 把 ? 占位符改写为 postgres 的 $n。
func (s *Store) rebind(query string) string {
	if s.backend != config.StorePostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime 按后端存储：sqlite 用 RFC3339 文本，其余用原生时间类型。
func (s *Store) formatTime(t time.Time) any {
	if s.backend == config.StoreSQLite {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC()
}

// execer 是 *sql.DB 与 *sql.Tx 的公共子集。
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// beginRun 创建一次运行记录并返回其 ID。
func (s *Store) beginRun(ctx context.Context, db execer, source string, startTime time.Time, params map[string]any) (int64, error) {
	configJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	if s.backend == config.StorePostgres {
		query := fmt.Sprintf(`INSERT INTO %s (source, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, runsTable)
		var runID int64
		if err := db.QueryRowContext(ctx, query, source, s.formatTime(startTime), string(configJSON)).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		return runID, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (source, start_time, config_params) VALUES (?, ?, ?)`, runsTable)
	result, err := db.ExecContext(ctx, query, source, s.formatTime(startTime), string(configJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return result.LastInsertId()
}

// endRun 写入运行结束时间与文件数。
func (s *Store) endRun(ctx context.Context, db execer, runID int64, endTime time.Time, totalFiles int, skippedFiles int) error {
	query := s.rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, total_files = ?, skipped_files = ? WHERE run_id = ?`, runsTable))
	if _, err := db.ExecContext(ctx, query, s.formatTime(endTime), totalFiles, skippedFiles, runID); err != nil {
		return fmt.Errorf("failed to update run %d: %w", runID, err)
	}
	return nil
}

// recordResult 保存单文件结果。ordinal 是结果在本次运行中的序号，
// 同一路径在一次运行中出现多次时各自成行。
func (s *Store) recordResult(ctx context.Context, db execer, runID int64, ordinal int, result model.Result) error {
	keywords, err := json.Marshal(result.Keywords.Map())
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	query := s.rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, ordinal, filepath, filename, language, version, date, fingerprint,
		                total_lines, blank_lines, comment_lines, code_lines,
		                vocabulary, program_length, volume, difficulty, effort, time_seconds, delivered_bugs,
		                avg_line_length, keywords, score, grade)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, resultsTable))

	h := result.Halstead
	_, err = db.ExecContext(ctx, query,
		runID, ordinal, result.Filepath, result.Filename, result.Language, result.Version, result.Date,
		strconv.FormatUint(result.Fingerprint, 16),
		result.LOC.Total, result.LOC.Blank, result.LOC.Comment, result.LOC.Code,
		h.Vocabulary, h.Length, h.Volume, h.Difficulty, h.Effort, h.Time, h.DeliveredBugs,
		result.AvgLineLength, string(keywords), result.Score, result.Grade,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result for %s: %w", result.Filepath, err)
	}
	return nil
}

// RecordBatch 在一个事务中保存整个批量结果，返回运行 ID。
// 任一写入失败时整体回滚，数据库中不会留下未结束的运行。
func (s *Store) RecordBatch(ctx context.Context, batch model.BatchResult, params map[string]any) (runID int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	runID, err = s.beginRun(ctx, tx, batch.Source, time.Now(), params)
	if err != nil {
		return 0, err
	}
	for idx, result := range batch.Results {
		if err = s.recordResult(ctx, tx, runID, idx, result); err != nil {
			return 0, err
		}
	}
	if err = s.endRun(ctx, tx, runID, time.Now(), len(batch.Results), len(batch.Errors)); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// History 返回某个文件的全部历史结果，按日期、版本、运行顺序排列。
func (s *Store) History(ctx context.Context, filepath string) ([]HistoryEntry, error) {
	query := s.rebind(fmt.Sprintf(`
		SELECT run_id, filepath, version, date, fingerprint, volume, difficulty, effort, score, grade
		FROM %s
		WHERE filepath = ?
		ORDER BY date, version, run_id, ordinal`, resultsTable))

	rows, err := s.db.QueryContext(ctx, query, filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.RunID, &entry.Filepath, &entry.Version, &entry.Date, &entry.Fingerprint,
			&entry.Volume, &entry.Difficulty, &entry.Effort, &entry.Score, &entry.Grade,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
