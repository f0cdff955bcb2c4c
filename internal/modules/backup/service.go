package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appcfg "github.com/visapath/core/internal/config"
	"github.com/visapath/core/internal/pkg/clock"
)

const (
	manifestFile  = "manifest.json"
	dumpDir       = "db"
	formatName    = "visapath-json"
	formatVersion = 1
)

// backupTables is the closed set of tables included in a catalog backup.
// Page views are raw traffic rows and are deliberately left out.
var backupTables = []string{
	"users",
	"countries",
	"content_plans",
	"topics",
	"draft_contents",
	"blog_posts",
	"routes",
}

var ErrBackupNotFound = errors.New("backup not found")

type manifest struct {
	Format    string         `json:"format"`
	Version   int            `json:"version"`
	Database  string         `json:"database"`
	CreatedAt time.Time      `json:"created_at"`
	Tables    map[string]int `json:"tables"`
}

// Entry describes one stored backup archive.
type Entry struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Service dumps the content catalog into a zip of per-table JSON files,
// keeps archives in a local directory and optionally mirrors them to S3.
type Service struct {
	db     *gorm.DB
	cfg    *appcfg.BackupConfig
	dsn    string
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(db *gorm.DB, cfg *appcfg.BackupConfig, dsn string, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, cfg: cfg, dsn: dsn, clk: clk, logger: logger.Named("Backup")}
}

func (s *Service) dir() string {
	if d := strings.TrimSpace(s.cfg.Dir); d != "" {
		return d
	}
	return "backups"
}

// Create dumps every catalog table and writes the archive. When S3 is
// enabled the upload failure is logged but the local archive still counts.
func (s *Service) Create(ctx context.Context) (*Entry, error) {
	now := s.clk.Now().UTC()
	filename := fmt.Sprintf("backup-%s.zip", now.Format("20060102-150405"))

	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	fullPath := filepath.Join(s.dir(), filename)

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	if err := s.writeArchive(ctx, f, now); err != nil {
		os.Remove(fullPath)
		return nil, err
	}
	if err := f.Sync(); err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}
	entry := &Entry{Filename: filename, SizeBytes: info.Size(), CreatedAt: now}
	s.logger.Info("backup created",
		zap.String("file", filename),
		zap.Int64("size", entry.SizeBytes))

	if s.cfg.S3.Enable {
		if err := uploadToS3(ctx, &s.cfg.S3, fullPath, filename, now); err != nil {
			s.logger.Warn("s3 upload failed", zap.String("file", filename), zap.Error(err))
		} else {
			s.logger.Info("backup mirrored to s3", zap.String("file", filename))
		}
	}
	return entry, nil
}

func (s *Service) writeArchive(ctx context.Context, f *os.File, now time.Time) error {
	zw := zip.NewWriter(f)
	counts := make(map[string]int, len(backupTables))

	for _, table := range backupTables {
		rows, err := s.dumpTable(ctx, table)
		if err != nil {
			return fmt.Errorf("dump %s: %w", table, err)
		}
		counts[table] = len(rows)

		w, err := zw.Create(dumpDir + "/" + table + ".json")
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		if err := enc.Encode(rows); err != nil {
			return err
		}
	}

	w, err := zw.Create(manifestFile)
	if err != nil {
		return err
	}
	m := manifest{
		Format:    formatName,
		Version:   formatVersion,
		Database:  s.databaseName(),
		CreatedAt: now,
		Tables:    counts,
	}
	if err := json.NewEncoder(w).Encode(m); err != nil {
		return err
	}
	return zw.Close()
}

func (s *Service) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {
	rows := []map[string]any{}
	err := s.db.WithContext(ctx).Table(table).Find(&rows).Error
	return rows, err
}

// databaseName reads the schema name straight out of the DSN so the
// manifest records which database the dump came from.
func (s *Service) databaseName() string {
	cfg, err := mysqlDriver.ParseDSN(s.dsn)
	if err != nil {
		return ""
	}
	return cfg.DBName
}

// List returns stored archives, newest first.
func (s *Service) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var out []Entry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Filename:  e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Path resolves a stored archive by filename, refusing path traversal.
func (s *Service) Path(filename string) (string, error) {
	if filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".zip") {
		return "", ErrBackupNotFound
	}
	full := filepath.Join(s.dir(), filename)
	if _, err := os.Stat(full); err != nil {
		return "", ErrBackupNotFound
	}
	return full, nil
}

func (s *Service) Delete(filename string) error {
	full, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

// Prune keeps the newest keep archives and removes the rest.
func (s *Service) Prune(keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	entries, err := s.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries[min(keep, len(entries)):] {
		if err := s.Delete(e.Filename); err != nil {
			s.logger.Warn("prune backup failed", zap.String("file", e.Filename), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
