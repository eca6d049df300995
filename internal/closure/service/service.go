package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"workhive/internal/audit"
	"workhive/internal/closure"
	"workhive/internal/closure/metrics"
	"workhive/internal/organization"
	id "workhive/pkg/domain"
	dErrors "workhive/pkg/domain-errors"
	"workhive/pkg/platform/sentinel"
	"workhive/pkg/requestcontext"
)

// DefaultRetention is how long archived data survives after closure.
const DefaultRetention = 30 * 24 * time.Hour

// purgeConcurrency bounds the parallel expiry sweep. Archives are disjoint,
// so parallel purging is safe.
const purgeConcurrency = 4

type Registry interface {
	RunAllChecks(ctx context.Context, orgID id.OrganizationID) []closure.CheckResult
	ArchiveAll(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID)
	DeleteAllArchived(ctx context.Context, archiveID id.ArchiveID)
	RegisteredModules() []string
}

type OrganizationStore interface {
	GetByID(ctx context.Context, orgID id.OrganizationID) (*organization.Organization, error)
	MarkClosed(ctx context.Context, orgID id.OrganizationID, closedAt time.Time) error
}

type ArchiveStore interface {
	Create(ctx context.Context, archive *organization.Archive) error
	ListExpired(ctx context.Context, asOf time.Time) ([]*organization.Archive, error)
	Delete(ctx context.Context, archiveID id.ArchiveID) error
}

// LivePurger deletes one module's live data after closure is approved. The
// engine itself deletes nothing; each module's store does.
type LivePurger interface {
	ModuleID() string
	PurgeLive(ctx context.Context, orgID id.OrganizationID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// PreviewCache is a best-effort read-through cache for preview responses.
// Initiate never reads it.
type PreviewCache interface {
	Get(ctx context.Context, orgID id.OrganizationID) (*Preview, error)
	Set(ctx context.Context, orgID id.OrganizationID, preview *Preview) error
}

// Preview is the closure readiness report for one organization.
type Preview struct {
	CanClose       bool                     `json:"canClose"`
	Blockers       []closure.Blocker        `json:"blockers"`
	Warnings       []closure.Blocker        `json:"warnings"`
	ArchivableData []closure.ArchivableData `json:"archivableData"`
	Impact         closure.Impact           `json:"impact"`
}

// InitiateResult reports the outcome of a closure attempt. A refusal is a
// normal outcome, not an error: CanClose false with the blocking list.
type InitiateResult struct {
	CanClose bool                  `json:"canClose"`
	Blockers []closure.Blocker     `json:"blockers"`
	Archive  *organization.Archive `json:"-"`
}

// Service orchestrates organization closure: preview, the confirmed
// archive-then-purge sequence, and the retention expiry sweep.
type Service struct {
	registry  Registry
	orgs      OrganizationStore
	archives  ArchiveStore
	impact    *ImpactCounter
	purgers   []LivePurger
	retention time.Duration

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	previewCache   PreviewCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRetention(d time.Duration) Option {
	return func(s *Service) { s.retention = d }
}

func WithPreviewCache(cache PreviewCache) Option {
	return func(s *Service) { s.previewCache = cache }
}

// New constructs a Service. Purgers run in the given order on closure;
// project-scoped modules must come before the projects purger.
func New(registry Registry, orgs OrganizationStore, archives ArchiveStore, impact *ImpactCounter, purgers []LivePurger, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		orgs:      orgs,
		archives:  archives,
		impact:    impact,
		purgers:   purgers,
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Preview runs the full check pass and reports whether the organization can
// close, every blocker, everything salvageable, and the deletion impact.
func (s *Service) Preview(ctx context.Context, orgID id.OrganizationID) (*Preview, error) {
	org, err := s.loadActiveOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if s.previewCache != nil {
		cached, err := s.previewCache.Get(ctx, orgID)
		if err != nil {
			s.logger.WarnContext(ctx, "preview cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	results := s.registry.RunAllChecks(ctx, orgID)
	blocking, advisory := closure.SplitBlockers(results)

	impact, err := s.impact.Count(ctx, orgID)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		CanClose:       !closure.HasBlocking(results),
		Blockers:       blocking,
		Warnings:       advisory,
		ArchivableData: closure.CollectArchivable(results),
		Impact:         impact,
	}

	if s.previewCache != nil {
		if err := s.previewCache.Set(ctx, orgID, preview); err != nil {
			s.logger.WarnContext(ctx, "preview cache write failed", "error", err)
		}
	}
	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionClosurePreviewed,
		OrganizationID: org.ID.String(),
	})
	return preview, nil
}

// Initiate closes the organization after a fresh check pass. It never trusts
// a previous preview: blockers that appeared since are grounds for refusal.
func (s *Service) Initiate(ctx context.Context, orgID id.OrganizationID, confirmName string) (*InitiateResult, error) {
	org, err := s.loadActiveOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if confirmName != org.Name {
		return nil, dErrors.New(dErrors.CodeValidation, "organization name confirmation does not match")
	}

	results := s.registry.RunAllChecks(ctx, orgID)
	if closure.HasBlocking(results) {
		blocking, _ := closure.SplitBlockers(results)
		s.logger.InfoContext(ctx, "closure refused",
			"organization_id", orgID.String(),
			"blockers", len(blocking),
		)
		if s.metrics != nil {
			s.metrics.IncrementClosuresRefused()
		}
		s.emitAudit(ctx, audit.Event{
			Action:         audit.ActionClosureRefused,
			OrganizationID: org.ID.String(),
			Reason:         "blocking conditions exist",
		})
		return &InitiateResult{CanClose: false, Blockers: blocking}, nil
	}

	now := requestcontext.Now(ctx)
	archive := &organization.Archive{
		ID:               id.ArchiveID(uuid.New()),
		OrganizationID:   orgID,
		OrganizationName: org.Name,
		ClosedBy:         s.actor(ctx),
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.retention),
	}
	if err := s.archives.Create(ctx, archive); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create closure archive")
	}

	s.registry.ArchiveAll(ctx, orgID, archive.ID)
	s.purgeLiveData(ctx, orgID)

	if err := s.orgs.MarkClosed(ctx, orgID, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark organization closed")
	}

	s.logger.InfoContext(ctx, "organization closed",
		"organization_id", orgID.String(),
		"archive_id", archive.ID.String(),
		"expires_at", archive.ExpiresAt,
	)
	if s.metrics != nil {
		s.metrics.IncrementClosuresInitiated()
	}
	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionClosureInitiated,
		OrganizationID: org.ID.String(),
		ArchiveID:      archive.ID.String(),
	})
	return &InitiateResult{CanClose: true, Blockers: []closure.Blocker{}, Archive: archive}, nil
}

// PurgeExpired deletes every module's archived data for archives whose
// retention window has elapsed, then the archive records themselves. Safe to
// run repeatedly; per-archive failures are logged and retried on the next
// sweep. Returns the number of archives purged.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)
	expired, err := s.archives.ListExpired(ctx, now)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list expired archives")
	}

	var purged atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(purgeConcurrency)
	for _, archive := range expired {
		g.Go(func() error {
			s.registry.DeleteAllArchived(gctx, archive.ID)
			if err := s.archives.Delete(gctx, archive.ID); err != nil {
				s.logger.ErrorContext(gctx, "expired archive deletion failed, will retry next sweep",
					"archive_id", archive.ID.String(),
					"error", err,
				)
				return nil
			}
			purged.Add(1)
			if s.metrics != nil {
				s.metrics.IncrementArchivesPurged()
			}
			s.emitAudit(gctx, audit.Event{
				Action:         audit.ActionArchivePurged,
				OrganizationID: archive.OrganizationID.String(),
				ArchiveID:      archive.ID.String(),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(purged.Load()), dErrors.Wrap(err, dErrors.CodeInternal, "expiry sweep failed")
	}
	return int(purged.Load()), nil
}

// RegisteredModules lists checker module IDs in registration order.
func (s *Service) RegisteredModules() []string {
	return s.registry.RegisteredModules()
}

func (s *Service) loadActiveOrganization(ctx context.Context, orgID id.OrganizationID) (*organization.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}
	if !org.IsActive() {
		return nil, dErrors.New(dErrors.CodeConflict, "organization is already closed")
	}
	return org, nil
}

func (s *Service) purgeLiveData(ctx context.Context, orgID id.OrganizationID) {
	for _, purger := range s.purgers {
		if err := purger.PurgeLive(ctx, orgID); err != nil {
			s.logger.ErrorContext(ctx, "live data purge failed, continuing with remaining modules",
				"module", purger.ModuleID(),
				"organization_id", orgID.String(),
				"error", err,
			)
		}
	}
}

func (s *Service) actor(ctx context.Context) id.UserID {
	raw := requestcontext.UserID(ctx)
	if raw == "" {
		return id.UserID{}
	}
	userID, err := id.ParseUserID(raw)
	if err != nil {
		return id.UserID{}
	}
	return userID
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.ActorID = requestcontext.UserID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", string(event.Action),
			"error", err,
		)
	}
}
