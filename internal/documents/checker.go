package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"workhive/internal/closure"
	"workhive/internal/organization"
	"workhive/internal/project"
	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
	"workhive/pkg/requestcontext"
)

const (
	ModuleID   = "documents"
	ModuleName = "Документы"
)

// ProjectDirectory lists the organization's projects. Satisfied by
// project.Store.
type ProjectDirectory interface {
	ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*project.Project, error)
}

// ArchiveDirectory resolves closure archive records. Satisfied by
// organization.ArchiveStore; this module only reads the record to copy its
// retention window.
type ArchiveDirectory interface {
	GetByID(ctx context.Context, archiveID id.ArchiveID) (*organization.Archive, error)
}

// Checker never blocks closure. It offers the latest version of every
// document in every project for archival, and snapshots them on Archive.
// Documents whose file record no longer resolves are still archived, with an
// empty URL and zero size.
type Checker struct {
	store    Store
	archived ArchiveStore
	projects ProjectDirectory
	archives ArchiveDirectory
}

func NewChecker(store Store, archived ArchiveStore, projects ProjectDirectory, archives ArchiveDirectory) *Checker {
	return &Checker{store: store, archived: archived, projects: projects, archives: archives}
}

func (c *Checker) ModuleID() string   { return ModuleID }
func (c *Checker) ModuleName() string { return ModuleName }

func (c *Checker) Check(ctx context.Context, orgID id.OrganizationID) (closure.CheckResult, error) {
	result := closure.EmptyResult(ModuleID, ModuleName)

	err := c.scanLatestVersions(ctx, orgID, func(d *Document, v *Version, f *File) error {
		var sizeBytes int64
		if f != nil {
			sizeBytes = f.SizeBytes
		}
		result.ArchivableData = append(result.ArchivableData, closure.ArchivableData{
			ModuleID:   ModuleID,
			ModuleName: ModuleName,
			Type:       "document",
			ID:         d.ID.String(),
			Title:      d.Title,
			SizeBytes:  sizeBytes,
			Metadata: map[string]any{
				"projectId": d.ProjectID.String(),
				"version":   v.Number,
			},
		})
		return nil
	})
	if err != nil {
		return closure.CheckResult{}, err
	}
	return result, nil
}

// Archive fails loudly when the archive record cannot be resolved: without
// its ExpiresAt no correct snapshot can be written.
func (c *Checker) Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
	record, err := c.archives.GetByID(ctx, archiveID)
	if err != nil {
		return fmt.Errorf("resolve archive %s: %w", archiveID, err)
	}

	now := requestcontext.Now(ctx)
	return c.scanLatestVersions(ctx, orgID, func(d *Document, v *Version, f *File) error {
		snapshot := &ArchivedDocument{
			ID:         uuid.New(),
			ArchiveID:  archiveID,
			DocumentID: d.ID,
			ProjectID:  d.ProjectID,
			Title:      d.Title,
			Version:    v.Number,
			ArchivedAt: now,
			ExpiresAt:  record.ExpiresAt,
		}
		if f != nil {
			snapshot.FileURL = f.URL
			snapshot.FileSizeBytes = f.SizeBytes
		}
		if err := c.archived.CreateArchived(ctx, snapshot); err != nil {
			return fmt.Errorf("archive document %s: %w", d.ID, err)
		}
		return nil
	})
}

func (c *Checker) DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error {
	if err := c.archived.DeleteByArchive(ctx, archiveID); err != nil {
		return fmt.Errorf("delete archived documents: %w", err)
	}
	return nil
}

// scanLatestVersions visits the latest version of every document in every
// project of the organization. Documents without versions are skipped; a
// missing file record yields a nil *File.
func (c *Checker) scanLatestVersions(ctx context.Context, orgID id.OrganizationID, visit func(*Document, *Version, *File) error) error {
	projects, err := c.projects.ListByOrganization(ctx, orgID)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	for _, p := range projects {
		docs, err := c.store.ListByProject(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list documents for project %s: %w", p.ID, err)
		}
		for _, d := range docs {
			v, err := c.store.LatestVersion(ctx, d.ID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					continue
				}
				return fmt.Errorf("latest version of document %s: %w", d.ID, err)
			}

			f, err := c.store.GetFile(ctx, v.FileID)
			if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
				return fmt.Errorf("file for document %s: %w", d.ID, err)
			}

			if err := visit(d, v, f); err != nil {
				return err
			}
		}
	}
	return nil
}
