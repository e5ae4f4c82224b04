// Package reporter renders the instance check report and writes the
// result and error files.
package reporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shoestringdba/Check-SqlInstance/internal/models"
)

// TimestampLayout is the display form for the report header, backup
// times, and error-file entries.
const TimestampLayout = "2006-01-02 15:04:05"

// Render assembles the full report: header line, then the four
// bracketed sections in fixed order. Databases must already be in
// report order.
func Render(inst *models.Instance, dbs []models.Database, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Check-SqlInstance results for %s on %s\n\n", inst.Name, now.Format(TimestampLayout))

	writeSection(&b, "Instance Information",
		[]string{"Name", "Edition", "Version", "Product Level", "Update Level", "Login Mode"},
		[][]string{instanceRow(inst)})

	writeSection(&b, "Memory and Parallelism",
		[]string{"Min Memory (MB)", "Max Memory (MB)", "MaxDOP", "CToP"},
		[][]string{memoryRow(inst.Config)})

	dbRows := make([][]string, 0, len(dbs))
	backupRows := make([][]string, 0, len(dbs))
	for _, d := range dbs {
		dbRows = append(dbRows, databaseRow(d))
		backupRows = append(backupRows, backupRow(d))
	}

	writeSection(&b, "Databases",
		[]string{"Name", "Compatibility Level", "Status", "Owner", "Auto Close", "Auto Shrink"},
		dbRows)

	writeSection(&b, "Backups",
		[]string{"Name", "Recovery Model", "Last Full Backup", "Last Diff Backup", "Last Log Backup"},
		backupRows)

	return b.String()
}

func writeSection(b *strings.Builder, title string, headers []string, rows [][]string) {
	fmt.Fprintf(b, "[%s]\n", title)
	writeTable(b, headers, rows)
	b.WriteString("\n")
}

func instanceRow(inst *models.Instance) []string {
	return []string{
		inst.Name,
		inst.Edition,
		inst.VersionString,
		inst.ProductLevel,
		inst.ProductUpdateLevel,
		inst.LoginMode,
	}
}

func memoryRow(cfg models.ServerConfig) []string {
	return []string{
		strconv.FormatInt(cfg.MinServerMemoryMB, 10),
		strconv.FormatInt(cfg.MaxServerMemoryMB, 10),
		strconv.FormatInt(cfg.MaxDOP, 10),
		strconv.FormatInt(cfg.CostThreshold, 10),
	}
}

func databaseRow(d models.Database) []string {
	return []string{
		d.Name,
		strconv.Itoa(d.CompatibilityLevel),
		d.Status,
		d.Owner,
		formatBool(d.AutoClose),
		formatBool(d.AutoShrink),
	}
}

func backupRow(d models.Database) []string {
	return []string{
		d.Name,
		d.RecoveryModel,
		formatBackupTime(d.LastFullBackup),
		formatBackupTime(d.LastDiffBackup),
		formatBackupTime(d.LastLogBackup),
	}
}

// formatBackupTime substitutes "Never" for the never-backed-up
// sentinel; everything else renders as a plain timestamp.
func formatBackupTime(ts time.Time) string {
	if models.NeverBackedUp(ts) {
		return "Never"
	}
	return ts.Format(TimestampLayout)
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
