package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// MaxBackups is the number of user config backups kept by BackupUserConfig.
const MaxBackups = 3

// backupLayout is the timestamp suffix of backup files. It sorts
// lexically in time order.
const backupLayout = "20060102-150405"

// BackupUserConfig copies the user config to config.yaml.bak.<timestamp>
// and prunes all but the newest MaxBackups copies. It returns "" when there
// is no user config.
func BackupUserConfig(now time.Time) (string, error) {
	configPath := GetUserConfigPath()
	if !UserConfigExists() {
		return "", nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}

	backupPath := configPath + ".bak." + now.Format(backupLayout)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	// Pruning is best effort; the new backup already exists.
	backups, err := ListUserConfigBackups()
	if err == nil && len(backups) > MaxBackups {
		for _, old := range backups[MaxBackups:] {
			_ = os.Remove(old)
		}
	}

	return backupPath, nil
}

// ListUserConfigBackups returns user config backups, newest first.
func ListUserConfigBackups() ([]string, error) {
	backups, err := filepath.Glob(GetUserConfigPath() + ".bak.*")
	if err != nil {
		return nil, fmt.Errorf("failed to list config backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}
