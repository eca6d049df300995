package closure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"workhive/internal/closure/metrics"
	id "workhive/pkg/domain"
)

// Registry coordinates all registered closure checkers. It owns the
// moduleID -> checker mapping in registration order and executes checkers
// with per-module failure isolation: one broken module must never prevent
// visibility into every other module's blockers.
//
// Registration is expected to happen once at startup, before any check pass
// runs; Register is not safe to call concurrently with the run methods.
type Registry struct {
	order    []string
	checkers map[string]Checker

	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	checkTimeout time.Duration
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics sets the registry metrics. Nil disables recording.
func WithMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// WithCheckTimeout bounds every individual checker call. A timeout is treated
// exactly like any other checker failure: logged and collapsed to the empty
// result. Zero disables the bound.
func WithCheckTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.checkTimeout = d }
}

// NewRegistry creates an empty checker registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		checkers: make(map[string]Checker),
		tracer:   otel.Tracer("workhive/internal/closure"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Register inserts a checker keyed by its module ID. Registering the same
// module twice overwrites the previous registration with a logged warning;
// this is intentional, so tests and extensions can override a built-in
// checker. The module keeps its original position in registration order.
func (r *Registry) Register(c Checker) {
	moduleID := c.ModuleID()
	if _, exists := r.checkers[moduleID]; exists {
		r.logger.Warn("closure checker overwritten",
			"module", moduleID,
		)
	} else {
		r.order = append(r.order, moduleID)
	}
	r.checkers[moduleID] = c
}

// RegisteredModules lists module IDs in registration order.
func (r *Registry) RegisteredModules() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// checkOutcome is the explicit per-checker result of a check call: either a
// usable result or the error that prevented one. The isolation policy lives
// in collapse, not in scattered recovers.
type checkOutcome struct {
	result CheckResult
	err    error
}

// collapse applies the failure-isolation rule: a failed module degrades to
// the empty result while the error goes to logs and metrics only.
func (r *Registry) collapse(ctx context.Context, o checkOutcome, c Checker) CheckResult {
	if o.err == nil {
		return o.result
	}
	r.logger.ErrorContext(ctx, "closure check failed, substituting empty result",
		"module", c.ModuleID(),
		"error", o.err,
	)
	if r.metrics != nil {
		r.metrics.RecordCheckFailure(c.ModuleID())
	}
	return EmptyResult(c.ModuleID(), c.ModuleName())
}

// RunAllChecks calls Check on every registered checker in registration order
// and returns one result per module, in that same order. A checker failure
// (error, panic, or timeout) is collapsed to the empty result for that module;
// the pass itself never fails.
func (r *Registry) RunAllChecks(ctx context.Context, orgID id.OrganizationID) []CheckResult {
	ctx, span := r.tracer.Start(ctx, "closure.RunAllChecks",
		trace.WithAttributes(attribute.String("organization.id", orgID.String())),
	)
	defer span.End()

	results := make([]CheckResult, 0, len(r.order))
	for _, moduleID := range r.order {
		c := r.checkers[moduleID]
		results = append(results, r.collapse(ctx, r.runCheck(ctx, c, orgID), c))
	}
	return results
}

func (r *Registry) runCheck(ctx context.Context, c Checker, orgID id.OrganizationID) (out checkOutcome) {
	ctx, span := r.tracer.Start(ctx, "closure.Check",
		trace.WithAttributes(attribute.String("closure.module", c.ModuleID())),
	)
	defer span.End()

	if r.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.checkTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.ObserveCheck(c.ModuleID(), start)
		}
		if rec := recover(); rec != nil {
			out = checkOutcome{err: fmt.Errorf("checker panic: %v", rec)}
		}
		if out.err != nil {
			span.RecordError(out.err)
		}
	}()

	result, err := c.Check(ctx, orgID)
	if err != nil {
		return checkOutcome{err: err}
	}
	return checkOutcome{result: result}
}

// ArchiveAll calls Archive on every registered checker in registration order.
// A failing module is logged and skipped; archival is explicitly best-effort
// and non-transactional across modules, so earlier successes are not rolled
// back.
func (r *Registry) ArchiveAll(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) {
	ctx, span := r.tracer.Start(ctx, "closure.ArchiveAll",
		trace.WithAttributes(
			attribute.String("organization.id", orgID.String()),
			attribute.String("archive.id", archiveID.String()),
		),
	)
	defer span.End()

	for _, moduleID := range r.order {
		c := r.checkers[moduleID]
		if err := r.runSideEffect(ctx, func() error { return c.Archive(ctx, orgID, archiveID) }); err != nil {
			r.logger.ErrorContext(ctx, "closure archive failed, continuing with remaining modules",
				"module", moduleID,
				"archive_id", archiveID.String(),
				"error", err,
			)
			span.RecordError(err)
			if r.metrics != nil {
				r.metrics.RecordArchiveFailure(moduleID)
			}
		}
	}
}

// DeleteAllArchived calls DeleteArchived on every registered checker in
// registration order with the same isolation policy as ArchiveAll. Safe to
// call repeatedly for the same archive: checkers are required to treat an
// already-cleaned archive as a no-op.
func (r *Registry) DeleteAllArchived(ctx context.Context, archiveID id.ArchiveID) {
	ctx, span := r.tracer.Start(ctx, "closure.DeleteAllArchived",
		trace.WithAttributes(attribute.String("archive.id", archiveID.String())),
	)
	defer span.End()

	for _, moduleID := range r.order {
		c := r.checkers[moduleID]
		if err := r.runSideEffect(ctx, func() error { return c.DeleteArchived(ctx, archiveID) }); err != nil {
			r.logger.ErrorContext(ctx, "archived data deletion failed, continuing with remaining modules",
				"module", moduleID,
				"archive_id", archiveID.String(),
				"error", err,
			)
			span.RecordError(err)
			if r.metrics != nil {
				r.metrics.RecordDeleteFailure(moduleID)
			}
		}
	}
}

func (r *Registry) runSideEffect(ctx context.Context, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("checker panic: %v", rec)
		}
	}()
	return fn()
}
