package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pagemark-labs/pagemark/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Store is the SQLite-backed annotation store. One database file holds the
// whole annotation collection for a document workspace.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.AnnotationStore = (*Store)(nil)

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pagemark/data/annotations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pagemark", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "annotations.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_annotations.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save inserts a new annotation. The typed payload and the comment list are
// stored as JSON alongside the queryable columns.
func (s *Store) Save(ctx context.Context, a *domain.Annotation) error {
	dataJSON, err := json.Marshal(a.Data)
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", a.Type, err)
	}
	commentsJSON, err := json.Marshal(a.Comments)
	if err != nil {
		return fmt.Errorf("marshalling comments: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO annotations (id, type, page_number, data, comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Type), a.PageNumber, string(dataJSON), string(commentsJSON),
		a.CreatedAt, a.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: annotation %s", domain.ErrAlreadyExists, a.ID)
		}
		return fmt.Errorf("saving annotation: %w", err)
	}
	return nil
}

// Update replaces an existing annotation.
func (s *Store) Update(ctx context.Context, a *domain.Annotation) error {
	dataJSON, err := json.Marshal(a.Data)
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", a.Type, err)
	}
	commentsJSON, err := json.Marshal(a.Comments)
	if err != nil {
		return fmt.Errorf("marshalling comments: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE annotations
		SET type = ?, page_number = ?, data = ?, comments = ?, updated_at = ?
		WHERE id = ?
	`, string(a.Type), a.PageNumber, string(dataJSON), string(commentsJSON),
		a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("updating annotation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: annotation %s", domain.ErrNotFound, a.ID)
	}
	return nil
}

// Get retrieves an annotation by id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Annotation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, page_number, data, comments, created_at, updated_at
		FROM annotations WHERE id = ?
	`, id)

	a, err := scanAnnotation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: annotation %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return a, nil
}

// Delete removes an annotation by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM annotations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: annotation %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListByPage returns all annotations on a page, oldest first.
func (s *Store) ListByPage(ctx context.Context, pageNumber int) ([]domain.Annotation, error) {
	return s.list(ctx, `
		SELECT id, type, page_number, data, comments, created_at, updated_at
		FROM annotations WHERE page_number = ?
		ORDER BY created_at, id
	`, pageNumber)
}

// List returns the whole collection, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.Annotation, error) {
	return s.list(ctx, `
		SELECT id, type, page_number, data, comments, created_at, updated_at
		FROM annotations
		ORDER BY created_at, id
	`)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]domain.Annotation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		a, err := scanAnnotation(rows.Scan)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	return annotations, nil
}

// scanAnnotation scans one annotation row, decoding the payload by its
// type tag.
func scanAnnotation(scan func(...any) error) (*domain.Annotation, error) {
	var a domain.Annotation
	var typ, dataJSON string
	var commentsJSON sql.NullString

	if err := scan(&a.ID, &typ, &a.PageNumber, &dataJSON, &commentsJSON,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning annotation: %w", err)
	}

	a.Type = domain.AnnotationType(typ)
	data, err := domain.DecodePayload(a.Type, []byte(dataJSON))
	if err != nil {
		return nil, err
	}
	a.Data = data

	if commentsJSON.Valid && commentsJSON.String != "" && commentsJSON.String != "null" {
		if err := json.Unmarshal([]byte(commentsJSON.String), &a.Comments); err != nil {
			return nil, fmt.Errorf("unmarshalling comments: %w", err)
		}
	}

	return &a, nil
}

// isUniqueViolation reports whether err is a primary-key collision. The
// modernc driver surfaces SQLite errors as formatted strings, so this
// matches on the constraint message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
