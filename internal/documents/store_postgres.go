package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// PostgresStore persists documents, versions, and file records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateDocument(ctx context.Context, d *Document) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (id, project_id, title, created_at)
		VALUES ($1, $2, $3, $4)`,
		d.ID, d.ProjectID.String(), d.Title, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateVersion(ctx context.Context, v *Version) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO document_versions (id, document_id, number, file_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.DocumentID, v.Number, v.FileID, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document version: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateFile(ctx context.Context, f *File) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO files (id, url, size_bytes, created_at)
		VALUES ($1, $2, $3, $4)`,
		f.ID, f.URL, f.SizeBytes, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByProject(ctx context.Context, projectID id.ProjectID) ([]*Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, title, created_at
		FROM documents WHERE project_id = $1
		ORDER BY created_at`,
		projectID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []*Document{}
	for rows.Next() {
		var (
			d            Document
			rawProjectID string
		)
		if err := rows.Scan(&d.ID, &rawProjectID, &d.Title, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		parsed, err := id.ParseProjectID(rawProjectID)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		d.ProjectID = parsed
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) LatestVersion(ctx context.Context, documentID uuid.UUID) (*Version, error) {
	var v Version
	err := s.pool.QueryRow(ctx, `
		SELECT id, document_id, number, file_id, created_at
		FROM document_versions WHERE document_id = $1
		ORDER BY number DESC LIMIT 1`,
		documentID,
	).Scan(&v.ID, &v.DocumentID, &v.Number, &v.FileID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("latest document version: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) GetFile(ctx context.Context, fileID uuid.UUID) (*File, error) {
	var f File
	err := s.pool.QueryRow(ctx,
		`SELECT id, url, size_bytes, created_at FROM files WHERE id = $1`,
		fileID,
	).Scan(&f.ID, &f.URL, &f.SizeBytes, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}

func (s *PostgresStore) CountByProjects(ctx context.Context, projectIDs []id.ProjectID) (int, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE project_id = ANY($1)`,
		projectIDStrings(projectIDs),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteByProjects(ctx context.Context, projectIDs []id.ProjectID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	raw := projectIDStrings(projectIDs)
	if _, err := s.pool.Exec(ctx, `
		DELETE FROM document_versions WHERE document_id IN
		(SELECT id FROM documents WHERE project_id = ANY($1))`,
		raw,
	); err != nil {
		return fmt.Errorf("delete document versions: %w", err)
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE project_id = ANY($1)`, raw,
	); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

func projectIDStrings(projectIDs []id.ProjectID) []string {
	raw := make([]string, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		raw = append(raw, projectID.String())
	}
	return raw
}

// PostgresArchiveStore persists archived document snapshots in PostgreSQL.
type PostgresArchiveStore struct {
	pool *pgxpool.Pool
}

func NewPostgresArchiveStore(pool *pgxpool.Pool) *PostgresArchiveStore {
	return &PostgresArchiveStore{pool: pool}
}

func (s *PostgresArchiveStore) CreateArchived(ctx context.Context, d *ArchivedDocument) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO archived_documents
			(id, archive_id, document_id, project_id, title, version, file_url, file_size_bytes, archived_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.ArchiveID.String(), d.DocumentID, d.ProjectID.String(), d.Title,
		d.Version, d.FileURL, d.FileSizeBytes, d.ArchivedAt, d.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create archived document: %w", err)
	}
	return nil
}

func (s *PostgresArchiveStore) ListByArchive(ctx context.Context, archiveID id.ArchiveID) ([]*ArchivedDocument, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, archive_id, document_id, project_id, title, version, file_url, file_size_bytes, archived_at, expires_at
		FROM archived_documents WHERE archive_id = $1
		ORDER BY archived_at`,
		archiveID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list archived documents: %w", err)
	}
	defer rows.Close()

	out := []*ArchivedDocument{}
	for rows.Next() {
		var (
			d            ArchivedDocument
			rawArchiveID string
			rawProjectID string
		)
		if err := rows.Scan(&d.ID, &rawArchiveID, &d.DocumentID, &rawProjectID, &d.Title,
			&d.Version, &d.FileURL, &d.FileSizeBytes, &d.ArchivedAt, &d.ExpiresAt); err != nil {
			return nil, fmt.Errorf("list archived documents: %w", err)
		}
		parsedArchive, err := id.ParseArchiveID(rawArchiveID)
		if err != nil {
			return nil, fmt.Errorf("list archived documents: %w", err)
		}
		parsedProject, err := id.ParseProjectID(rawProjectID)
		if err != nil {
			return nil, fmt.Errorf("list archived documents: %w", err)
		}
		d.ArchiveID = parsedArchive
		d.ProjectID = parsedProject
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list archived documents: %w", err)
	}
	return out, nil
}

func (s *PostgresArchiveStore) DeleteByArchive(ctx context.Context, archiveID id.ArchiveID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM archived_documents WHERE archive_id = $1`, archiveID.String(),
	); err != nil {
		return fmt.Errorf("delete archived documents: %w", err)
	}
	return nil
}
