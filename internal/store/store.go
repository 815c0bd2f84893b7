// Package store persists builds in SQLite. It also serializes concurrent
// mutations to the same build, which the compatibility engine itself
// deliberately does not do.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/partforge/PartForge-API/internal/models"
)

// ErrBuildNotFound is returned for lookups and mutations of unknown IDs.
var ErrBuildNotFound = errors.New("build not found")

// BuildStore keeps builds in a single SQLite file. Parts and reports are
// stored as JSON columns; the store treats both as opaque payloads.
type BuildStore struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates (if needed) and opens the build database under dataPath.
func Open(dataPath string) (*BuildStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "builds.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &BuildStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *BuildStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parts TEXT NOT NULL,
		report TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts an empty named build and returns it.
func (s *BuildStore) Create(name string) (*models.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	build := &models.Build{
		ID:        uuid.NewString(),
		Name:      name,
		Parts:     models.PartSet{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.upsert(build); err != nil {
		return nil, err
	}
	return build, nil
}

// Get loads one build by ID.
func (s *BuildStore) Get(id string) (*models.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

// List returns all builds, newest first.
func (s *BuildStore) List() ([]*models.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, name, parts, report, created_at, updated_at
		FROM builds ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var builds []*models.Build
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, rows.Err()
}

// Delete removes a build.
func (s *BuildStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting build: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBuildNotFound
	}
	return nil
}

// Update applies mutate to a build under the store lock and persists the
// result. The callback sees a consistent snapshot; this is where slot
// changes and report refreshes happen atomically.
func (s *BuildStore) Update(id string, mutate func(*models.Build)) (*models.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	build, err := s.get(id)
	if err != nil {
		return nil, err
	}
	mutate(build)
	build.UpdatedAt = time.Now().UTC()
	if err := s.upsert(build); err != nil {
		return nil, err
	}
	return build, nil
}

// Close releases the database handle.
func (s *BuildStore) Close() error {
	return s.db.Close()
}

func (s *BuildStore) get(id string) (*models.Build, error) {
	row := s.db.QueryRow(`SELECT id, name, parts, report, created_at, updated_at
		FROM builds WHERE id = ?`, id)
	build, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBuildNotFound
	}
	return build, err
}

func (s *BuildStore) upsert(build *models.Build) error {
	parts, err := json.Marshal(build.Parts)
	if err != nil {
		return fmt.Errorf("encoding parts: %w", err)
	}

	var report any
	if build.Report != nil {
		encoded, err := json.Marshal(build.Report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		report = string(encoded)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO builds
		(id, name, parts, report, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		build.ID, build.Name, string(parts), report, build.CreatedAt, build.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving build: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (*models.Build, error) {
	var build models.Build
	var parts string
	var report sql.NullString

	if err := row.Scan(&build.ID, &build.Name, &parts, &report, &build.CreatedAt, &build.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(parts), &build.Parts); err != nil {
		return nil, fmt.Errorf("decoding parts: %w", err)
	}
	if report.Valid {
		build.Report = &models.CompatibilityReport{}
		if err := json.Unmarshal([]byte(report.String), build.Report); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
	}
	return &build, nil
}
