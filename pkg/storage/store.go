// Package storage implements the JSON document store backing ValutaTrade
// Hub. All application state (users, portfolios, rates, history) lives in
// JSON files under a single data directory; the file layout is shared with
// external tooling, so documents are written pretty-printed and in place.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
)

// keepBackups is how many timestamped copies are retained per document.
const keepBackups = 5

// Store reads and writes JSON documents with optional backup rotation.
type Store struct {
	backupEnabled bool
	backupDir     string
	log           zerolog.Logger
}

// New creates a store using the database section of the configuration.
func New(cfg *config.Config, log zerolog.Logger) *Store {
	return &Store{
		backupEnabled: cfg.Database.BackupEnabled,
		backupDir:     cfg.Database.BackupDir,
		log:           log,
	}
}

// Load decodes the document at path into v. It returns false when the file
// does not exist. A file that no longer parses is quarantined with a
// .corrupted_<timestamp> suffix and treated as missing so the caller can
// start from its default document.
func (s *Store) Load(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Debug().Str("path", path).Msg("document not found, using default")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		quarantine := fmt.Sprintf("%s.corrupted_%s", path, time.Now().Format("20060102_150405"))
		if renameErr := os.Rename(path, quarantine); renameErr == nil {
			s.log.Warn().Str("path", path).Str("moved_to", quarantine).
				Msg("corrupted document quarantined")
		}
		return false, nil
	}

	s.log.Debug().Str("path", path).Msg("document loaded")
	return true, nil
}

// Save writes v as indented JSON to path, creating parent directories and
// taking a rotating backup of the previous version first.
func (s *Store) Save(path string, v interface{}) error {
	s.backup(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.log.Debug().Str("path", path).Msg("document saved")
	return nil
}

// backup copies the current version of path into the backup directory with a
// timestamped name and prunes old copies, keeping the most recent five.
func (s *Store) backup(path string) {
	if !s.backupEnabled {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		s.log.Warn().Err(err).Msg("failed to create backup directory")
		return
	}

	name := filepath.Base(path)
	backupPath := filepath.Join(s.backupDir,
		fmt.Sprintf("%s.backup_%s", name, time.Now().Format("20060102_150405.000000000")))

	if err := copyFile(path, backupPath); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to create backup")
		return
	}
	s.log.Debug().Str("backup", backupPath).Msg("backup created")

	s.pruneBackups(name)
}

func (s *Store) pruneBackups(baseName string) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return
	}

	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), baseName+".backup_") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= keepBackups {
		return
	}

	// The timestamp suffix sorts lexicographically, oldest first.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-keepBackups] {
		if err := os.Remove(filepath.Join(s.backupDir, name)); err == nil {
			s.log.Debug().Str("backup", name).Msg("old backup removed")
		}
	}
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

	_, err = io.Copy(out, in)
	return err
}
