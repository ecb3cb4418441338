package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/config"
)

const (
	backupPrefix = "journal_backup_"
	backupSuffix = ".db"

	// backupInterval is how stale the newest backup may be before a new one
	// is taken at startup or by the background ticker.
	backupInterval = 24 * time.Hour
)

// ErrBackupUnsupported signals a backup request against a non-sqlite store.
var ErrBackupUnsupported = errors.New("backups are only supported for sqlite databases")

// CreateBackup copies the sqlite database file into the backup directory with
// a timestamped name and prunes old copies beyond the retention count.
func CreateBackup(cfg *config.Config, log *zap.Logger) error {
	if cfg.DBType != "sqlite" {
		return ErrBackupUnsupported
	}

	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DBDatabase); err != nil {
		return fmt.Errorf("database file not found: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(cfg.BackupDir, backupPrefix+stamp+backupSuffix)

	if err := copyFile(cfg.DBDatabase, dst); err != nil {
		return err
	}
	log.Info("backup created", zap.String("file", dst))

	return CleanupBackups(cfg, log)
}

// CleanupBackups removes all but the newest cfg.BackupKeep backup files.
func CleanupBackups(cfg *config.Config, log *zap.Logger) error {
	backups, err := listBackups(cfg.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// A misconfigured negative retention keeps nothing rather than panicking.
	keep := min(max(cfg.BackupKeep, 0), len(backups))
	for _, stale := range backups[keep:] {
		if err := os.Remove(stale.path); err != nil {
			return err
		}
		log.Info("removed old backup", zap.String("file", stale.path))
	}
	return nil
}

// ShouldBackup reports whether the newest backup is older than the backup
// interval (or whether none exists at all).
func ShouldBackup(cfg *config.Config) bool {
	backups, err := listBackups(cfg.BackupDir)
	if err != nil || len(backups) == 0 {
		return true
	}
	return time.Since(backups[0].modTime) > backupInterval
}

type backupFile struct {
	path    string
	modTime time.Time
}

// listBackups returns the backup files newest first.
func listBackups(dir string) ([]backupFile, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	backups := make([]backupFile, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, err
		}
		backups = append(backups, backupFile{
			path:    filepath.Join(dir, name),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})
	return backups, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
