package reporter

import (
	"strings"
	"testing"
	"time"

	"github.com/shoestringdba/Check-SqlInstance/internal/models"
)

func testInstance() *models.Instance {
	return &models.Instance{
		Name:               "SQL01",
		Edition:            "Developer Edition (64-bit)",
		VersionString:      "16.0.1000.6",
		ProductLevel:       "RTM",
		ProductUpdateLevel: "CU12",
		LoginMode:          "Mixed",
		Config: models.ServerConfig{
			MinServerMemoryMB: 0,
			MaxServerMemoryMB: 2147483647,
			MaxDOP:            4,
			CostThreshold:     5,
		},
	}
}

func assertContains(t *testing.T, output, needle string) {
	t.Helper()
	if !strings.Contains(output, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, output)
	}
}

func TestRenderHeaderAndSectionOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	output := Render(testInstance(), nil, now)

	assertContains(t, output, "Check-SqlInstance results for SQL01 on 2026-08-30 09:30:00")

	titles := []string{"[Instance Information]", "[Memory and Parallelism]", "[Databases]", "[Backups]"}
	last := -1
	for _, title := range titles {
		idx := strings.Index(output, title)
		if idx < 0 {
			t.Fatalf("expected section %s in output:\n%s", title, output)
		}
		if idx < last {
			t.Fatalf("section %s out of order", title)
		}
		last = idx
	}
}

func TestRenderInstanceInformation(t *testing.T) {
	output := Render(testInstance(), nil, time.Now())

	assertContains(t, output, "SQL01")
	assertContains(t, output, "Developer Edition (64-bit)")
	assertContains(t, output, "16.0.1000.6")
	assertContains(t, output, "RTM")
	assertContains(t, output, "CU12")
	assertContains(t, output, "Mixed")
}

func TestRenderMemoryAndParallelism(t *testing.T) {
	output := Render(testInstance(), nil, time.Now())

	for _, label := range []string{"Min Memory (MB)", "Max Memory (MB)", "MaxDOP", "CToP"} {
		assertContains(t, output, label)
	}

	// The data row carries the run values in label order.
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if strings.Contains(line, "Min Memory (MB)") {
			row := lines[i+2]
			fields := strings.Fields(row)
			want := []string{"0", "2147483647", "4", "5"}
			if len(fields) != len(want) {
				t.Fatalf("expected %d values in %q", len(want), row)
			}
			for j := range want {
				if fields[j] != want[j] {
					t.Fatalf("column %d: expected %s, got %s", j, want[j], fields[j])
				}
			}
			return
		}
	}
	t.Fatalf("memory section header not found in output:\n%s", output)
}

func TestRenderZeroDatabasesHeadersOnly(t *testing.T) {
	output := Render(testInstance(), nil, time.Now())

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if line != "[Databases]" {
			continue
		}
		if !strings.Contains(lines[i+1], "Name") || !strings.Contains(lines[i+1], "Auto Shrink") {
			t.Fatalf("expected column header after [Databases], got %q", lines[i+1])
		}
		if !strings.HasPrefix(lines[i+2], "---") {
			t.Fatalf("expected rule after header, got %q", lines[i+2])
		}
		if lines[i+3] != "" {
			t.Fatalf("expected no data rows, got %q", lines[i+3])
		}
		return
	}
	t.Fatalf("[Databases] section not found in output:\n%s", output)
}

func TestRenderDatabaseRows(t *testing.T) {
	dbs := []models.Database{
		{
			Name:               "master",
			CompatibilityLevel: 160,
			Status:             "ONLINE",
			Owner:              "sa",
			RecoveryModel:      "SIMPLE",
			IsSystemObject:     true,
		},
		{
			Name:               "Sales",
			CompatibilityLevel: 150,
			Status:             "ONLINE",
			Owner:              "app_owner",
			AutoClose:          true,
			AutoShrink:         true,
			RecoveryModel:      "FULL",
			LastFullBackup:     time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC),
		},
	}

	output := Render(testInstance(), dbs, time.Now())

	assertContains(t, output, "master")
	assertContains(t, output, "160")
	assertContains(t, output, "ONLINE")
	assertContains(t, output, "app_owner")
	assertContains(t, output, "True")
	assertContains(t, output, "False")
	assertContains(t, output, "SIMPLE")
	assertContains(t, output, "FULL")
}

func TestBackupTimestampSubstitution(t *testing.T) {
	dbs := []models.Database{
		{
			Name:           "Sales",
			RecoveryModel:  "FULL",
			LastFullBackup: time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC),
			LastDiffBackup: models.BackupNeverSentinel,
			// LastLogBackup left zero.
		},
	}

	output := Render(testInstance(), dbs, time.Now())

	assertContains(t, output, "2026-08-29 23:00:00")

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "Sales") && strings.Contains(line, "FULL") {
			if got := strings.Count(line, "Never"); got != 2 {
				t.Fatalf("expected 2 Never cells in %q, got %d", line, got)
			}
			return
		}
	}
	t.Fatalf("backup row for Sales not found in output:\n%s", output)
}

func TestLongEditionWrapsWithoutTruncation(t *testing.T) {
	inst := testInstance()
	inst.Edition = "Enterprise Edition: Core-based Licensing with Software Assurance (64-bit) extended description"

	output := Render(inst, nil, time.Now())

	// Every word survives the wrap.
	for _, word := range strings.Fields(inst.Edition) {
		assertContains(t, output, word)
	}

	// The value is too long for one cell, so no single line holds it.
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, inst.Edition) {
			t.Fatalf("expected long edition to wrap, found it on one line: %q", line)
		}
	}
}
