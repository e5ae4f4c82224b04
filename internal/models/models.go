package models

import (
	"sort"
	"time"
)

// Instance is a point-in-time snapshot of one SQL Server instance.
type Instance struct {
	Name               string
	Edition            string
	VersionString      string
	ProductLevel       string
	ProductUpdateLevel string
	LoginMode          string
	Config             ServerConfig
}

// ServerConfig carries the server-wide tunables the report cares
// about. All values are run values, the settings currently in effect.
type ServerConfig struct {
	MinServerMemoryMB int64
	MaxServerMemoryMB int64
	MaxDOP            int64
	CostThreshold     int64
}

// Database is a snapshot of one database attached to an instance.
// Backup timestamps are zero when the database has never been backed
// up; BackupNeverSentinel marks the oldest timestamp msdb records.
type Database struct {
	Name               string
	CompatibilityLevel int
	Status             string
	Owner              string
	AutoClose          bool
	AutoShrink         bool
	RecoveryModel      string
	IsSystemObject     bool
	LastFullBackup     time.Time
	LastDiffBackup     time.Time
	LastLogBackup      time.Time
}

// BackupNeverSentinel is the msdb zero date. A backup timestamp at or
// before it means the backup has never run.
var BackupNeverSentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NeverBackedUp reports whether ts represents a backup that never ran.
func NeverBackedUp(ts time.Time) bool {
	return ts.IsZero() || !ts.After(BackupNeverSentinel)
}

// SortDatabases orders databases for the report: system databases
// first, then ascending by name within each group. The order is
// deterministic for any input.
func SortDatabases(dbs []Database) {
	sort.SliceStable(dbs, func(i, j int) bool {
		if dbs[i].IsSystemObject != dbs[j].IsSystemObject {
			return dbs[i].IsSystemObject
		}
		return dbs[i].Name < dbs[j].Name
	})
}
