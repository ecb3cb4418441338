package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/config"
)

func backupConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	dbFile := filepath.Join(dir, "journal.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite payload"), 0o644))

	return &config.Config{
		DBType:     "sqlite",
		DBDatabase: dbFile,
		BackupDir:  filepath.Join(dir, "backups"),
		BackupKeep: 3,
	}
}

func TestCreateBackup(t *testing.T) {
	cfg := backupConfig(t)

	require.NoError(t, CreateBackup(cfg, zap.NewNop()))

	backups, err := listBackups(cfg.BackupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)

	data, err := os.ReadFile(backups[0].path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite payload", string(data))
}

func TestCreateBackupNonSqlite(t *testing.T) {
	cfg := backupConfig(t)
	cfg.DBType = "postgres"

	assert.ErrorIs(t, CreateBackup(cfg, zap.NewNop()), ErrBackupUnsupported)
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	cfg := backupConfig(t)
	cfg.DBDatabase = filepath.Join(t.TempDir(), "absent.db")

	assert.Error(t, CreateBackup(cfg, zap.NewNop()))
}

func TestCleanupBackupsRetention(t *testing.T) {
	cfg := backupConfig(t)
	require.NoError(t, os.MkdirAll(cfg.BackupDir, 0o755))

	// Five fake backups with distinct mtimes, oldest first.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		name := filepath.Join(cfg.BackupDir, backupPrefix+time.Now().Add(time.Duration(i)*time.Minute).Format("20060102_150405")+backupSuffix)
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
		stamp := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(name, stamp, stamp))
	}

	require.NoError(t, CleanupBackups(cfg, zap.NewNop()))

	backups, err := listBackups(cfg.BackupDir)
	require.NoError(t, err)
	assert.Len(t, backups, cfg.BackupKeep)
}

func TestCleanupBackupsNegativeRetention(t *testing.T) {
	cfg := backupConfig(t)
	cfg.BackupKeep = -1
	require.NoError(t, os.MkdirAll(cfg.BackupDir, 0o755))

	name := filepath.Join(cfg.BackupDir, backupPrefix+"20240115_120000"+backupSuffix)
	require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))

	require.NoError(t, CleanupBackups(cfg, zap.NewNop()))

	backups, err := listBackups(cfg.BackupDir)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCleanupBackupsNoDirectory(t *testing.T) {
	cfg := backupConfig(t)
	// BackupDir was never created.
	assert.NoError(t, CleanupBackups(cfg, zap.NewNop()))
}

func TestShouldBackup(t *testing.T) {
	cfg := backupConfig(t)

	// No backups yet.
	assert.True(t, ShouldBackup(cfg))

	require.NoError(t, CreateBackup(cfg, zap.NewNop()))
	assert.False(t, ShouldBackup(cfg), "fresh backup should not trigger another")

	// Age the backup past the interval.
	backups, err := listBackups(cfg.BackupDir)
	require.NoError(t, err)
	old := time.Now().Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(backups[0].path, old, old))
	assert.True(t, ShouldBackup(cfg))
}
