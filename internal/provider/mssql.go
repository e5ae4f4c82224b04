package provider

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/shoestringdba/Check-SqlInstance/internal/models"
	"github.com/shoestringdba/Check-SqlInstance/pkg/config"
)

// SQLServer implements Provider over a live SQL Server connection.
type SQLServer struct {
	db *sql.DB
}

// NewSQLServer opens and pings a connection to the instance named in
// cfg. The instance name doubles as the server address and may carry
// a named-instance suffix ("host\name") or an explicit port
// ("host,port").
func NewSQLServer(cfg *config.Config) (*SQLServer, error) {
	db, err := sql.Open("sqlserver", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open connection to %q: %w", cfg.Instance, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %q: %w", cfg.Instance, err)
	}

	slog.Debug("connected", slog.String("instance", cfg.Instance))
	return &SQLServer{db: db}, nil
}

func connString(cfg *config.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "server=%s", cfg.Instance)
	// An explicit "host,port" address already names its port.
	if cfg.Port > 0 && !strings.Contains(cfg.Instance, ",") {
		fmt.Fprintf(&b, ";port=%d", cfg.Port)
	}
	// Empty user selects integrated authentication.
	if cfg.User != "" {
		fmt.Fprintf(&b, ";user id=%s;password=%s", cfg.User, cfg.Password)
	}
	if cfg.Encrypt {
		b.WriteString(";encrypt=true")
	} else {
		b.WriteString(";encrypt=false")
	}

	return b.String()
}

const instanceQuery = `
SELECT
	CAST(SERVERPROPERTY('ServerName') AS nvarchar(256)),
	CAST(SERVERPROPERTY('Edition') AS nvarchar(256)),
	CAST(SERVERPROPERTY('ProductVersion') AS nvarchar(128)),
	CAST(SERVERPROPERTY('ProductLevel') AS nvarchar(128)),
	CAST(SERVERPROPERTY('ProductUpdateLevel') AS nvarchar(128)),
	CAST(SERVERPROPERTY('IsIntegratedSecurityOnly') AS int)
`

const configQuery = `
SELECT name, CAST(value_in_use AS bigint)
FROM sys.configurations
WHERE name IN (
	'min server memory (MB)',
	'max server memory (MB)',
	'max degree of parallelism',
	'cost threshold for parallelism'
)
`

// ResolveInstance fetches the server properties and configuration run
// values for the named instance.
func (s *SQLServer) ResolveInstance(ctx context.Context, name string) (*models.Instance, error) {
	inst := &models.Instance{}

	var updateLevel sql.NullString
	var integratedOnly int
	err := s.db.QueryRowContext(ctx, instanceQuery).Scan(
		&inst.Name,
		&inst.Edition,
		&inst.VersionString,
		&inst.ProductLevel,
		&updateLevel,
		&integratedOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("resolve instance %q: %w", name, err)
	}

	// ProductUpdateLevel is NULL before the first CU of a release.
	inst.ProductUpdateLevel = updateLevel.String
	if integratedOnly == 1 {
		inst.LoginMode = "Integrated"
	} else {
		inst.LoginMode = "Mixed"
	}

	rows, err := s.db.QueryContext(ctx, configQuery)
	if err != nil {
		return nil, fmt.Errorf("resolve instance %q: read configuration: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var option string
		var runValue int64
		if err := rows.Scan(&option, &runValue); err != nil {
			return nil, fmt.Errorf("resolve instance %q: scan configuration row: %w", name, err)
		}
		switch option {
		case "min server memory (MB)":
			inst.Config.MinServerMemoryMB = runValue
		case "max server memory (MB)":
			inst.Config.MaxServerMemoryMB = runValue
		case "max degree of parallelism":
			inst.Config.MaxDOP = runValue
		case "cost threshold for parallelism":
			inst.Config.CostThreshold = runValue
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve instance %q: read configuration: %w", name, err)
	}

	return inst, nil
}

const databaseQuery = `
SELECT
	d.name,
	d.compatibility_level,
	d.state_desc,
	ISNULL(sp.name, ''),
	d.is_auto_close_on,
	d.is_auto_shrink_on,
	d.recovery_model_desc,
	CASE WHEN d.database_id <= 4 THEN 1 ELSE 0 END,
	(SELECT MAX(b.backup_finish_date) FROM msdb.dbo.backupset b
		WHERE b.database_name = d.name AND b.type = 'D'),
	(SELECT MAX(b.backup_finish_date) FROM msdb.dbo.backupset b
		WHERE b.database_name = d.name AND b.type = 'I'),
	(SELECT MAX(b.backup_finish_date) FROM msdb.dbo.backupset b
		WHERE b.database_name = d.name AND b.type = 'L')
FROM sys.databases d
LEFT JOIN sys.server_principals sp ON sp.sid = d.owner_sid
`

// ListDatabases enumerates every database on the instance, with its
// settings and last backup times, in report order.
func (s *SQLServer) ListDatabases(ctx context.Context, inst *models.Instance) ([]models.Database, error) {
	rows, err := s.db.QueryContext(ctx, databaseQuery)
	if err != nil {
		return nil, fmt.Errorf("list databases on %q: %w", inst.Name, err)
	}
	defer rows.Close()

	var dbs []models.Database
	for rows.Next() {
		var d models.Database
		var isSystem int
		var lastFull, lastDiff, lastLog sql.NullTime
		err := rows.Scan(
			&d.Name,
			&d.CompatibilityLevel,
			&d.Status,
			&d.Owner,
			&d.AutoClose,
			&d.AutoShrink,
			&d.RecoveryModel,
			&isSystem,
			&lastFull,
			&lastDiff,
			&lastLog,
		)
		if err != nil {
			return nil, fmt.Errorf("list databases on %q: scan row: %w", inst.Name, err)
		}
		d.IsSystemObject = isSystem == 1
		d.LastFullBackup = lastFull.Time
		d.LastDiffBackup = lastDiff.Time
		d.LastLogBackup = lastLog.Time
		dbs = append(dbs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list databases on %q: %w", inst.Name, err)
	}

	models.SortDatabases(dbs)
	slog.Debug("enumerated databases", slog.String("instance", inst.Name), slog.Int("count", len(dbs)))
	return dbs, nil
}

// Close releases the underlying connection pool.
func (s *SQLServer) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
