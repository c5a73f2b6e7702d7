// Package lifecycle orchestrates every mutation of a process record through
// the validate -> apply -> commit -> notify pipeline. All cross-cutting rules
// (staging triggers, version convergence, backend migration) run here, in a
// documented order, before validation gates the commit.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wI2L/jsondiff"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/metrics"
	"github.com/halyard-cloud/halyard/internal/policy"
	"github.com/halyard-cloud/halyard/internal/reconcile"
	"github.com/halyard-cloud/halyard/internal/routes"
	"github.com/halyard-cloud/halyard/internal/staging"
)

const DefaultProcessType = "web"

// Orchestrator is the only writer of process records.
type Orchestrator struct {
	store      Store
	resolver   policy.Resolver
	buildpacks BuildpackResolver
	droplets   ArtifactStore
	notifier   Notifier
	usage      UsageEventSink
	audit      AuditSink
	bindings   ServiceBindingTerminator
	engine     *policy.Engine
	defaults   app.PlatformDefaults
	log        zerolog.Logger
}

// Config wires the orchestrator's collaborators. Store, Resolver and
// Notifier are required; the rest may be nil and are skipped.
type Config struct {
	Store      Store
	Resolver   policy.Resolver
	Buildpacks BuildpackResolver
	Droplets   ArtifactStore
	Notifier   Notifier
	Usage      UsageEventSink
	Audit      AuditSink
	Bindings   ServiceBindingTerminator
	Engine     *policy.Engine
	Defaults   app.PlatformDefaults
	Logger     zerolog.Logger
}

func New(cfg Config) (*Orchestrator, error) {
	if cfg.Store == nil {
		return nil, errors.New("lifecycle: store is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("lifecycle: policy resolver is required")
	}
	if cfg.Notifier == nil {
		return nil, errors.New("lifecycle: notifier is required")
	}
	engine := cfg.Engine
	if engine == nil {
		engine = policy.NewEngine()
	}
	return &Orchestrator{
		store:      cfg.Store,
		resolver:   cfg.Resolver,
		buildpacks: cfg.Buildpacks,
		droplets:   cfg.Droplets,
		notifier:   cfg.Notifier,
		usage:      cfg.Usage,
		audit:      cfg.Audit,
		bindings:   cfg.Bindings,
		engine:     engine,
		defaults:   cfg.Defaults,
		log:        cfg.Logger,
	}, nil
}

// Create builds a new process record. Unset attributes come from the platform
// defaults; the backend tri-state is resolved here, at creation time.
func (o *Orchestrator) Create(ctx context.Context, name, processType, spaceGUID string, cs *app.Changeset) (*app.Process, error) {
	if processType == "" {
		processType = DefaultProcessType
	}
	now := time.Now().UTC()
	p := &app.Process{
		GUID:            uuid.New().String(),
		Name:            name,
		Type:            processType,
		SpaceGUID:       spaceGUID,
		DesiredState:    app.DesiredStopped,
		MemoryMB:        o.defaults.MemoryMB,
		DiskQuotaMB:     o.defaults.DiskQuotaMB,
		Instances:       o.defaults.Instances,
		EnableSSH:       o.defaults.AllowSSH,
		HealthCheckType: app.HealthCheckPort,
		RouteMappings:   make([]*app.RouteMapping, 0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if cs != nil {
		cs.Apply(p)
	}
	if p.Backend == app.BackendUnset {
		p.Backend = o.defaults.Backend
	}
	reconcile.ApplyPortDefaults(p)
	p.Version = reconcile.NewVersion()
	staging.MarkPending(p)

	err := o.store.Mutate(ctx, func(tx Tx) error {
		in, err := o.policyInput(ctx, p, nil, cs)
		if err != nil {
			return err
		}
		if vs := o.evaluate(in); len(vs) > 0 {
			return vs
		}
		if err := tx.Save(p); err != nil {
			return err
		}

		snapshot := p.Clone()
		tx.AfterCommit(func() {
			o.recordUsage(snapshot, UsageCreated)
			o.recordAudit(nil, snapshot, "create")
			o.notifier.Updated(snapshot)
		})
		return nil
	})
	if err != nil {
		metrics.CountMutation("create", "error")
		return nil, err
	}
	metrics.CountMutation("create", "ok")
	return p, nil
}

// Update applies an attribute diff to an existing process. Staging, backend
// and version rules always re-run before validation.
func (o *Orchestrator) Update(ctx context.Context, guid string, cs *app.Changeset) (*app.Process, error) {
	if cs == nil {
		cs = &app.Changeset{}
	}
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		before, err := tx.Get(guid)
		if err != nil {
			return err
		}
		p := before.Clone()
		cs.Apply(p)

		if staging.NeedsRestage(before, cs) {
			staging.MarkPending(p)
		}
		reconcile.Backend(before, p, cs)
		if reconcile.NeedsNewVersion(before, p, cs.EditsPorts()) {
			p.Version = reconcile.NewVersion()
			metrics.CountVersionBump()
		}

		in, err := o.policyInput(ctx, p, before, cs)
		if err != nil {
			return err
		}
		if cs.SpaceGUID != nil && *cs.SpaceGUID != before.SpaceGUID {
			if err := routes.ValidateRehoming(p, *cs.SpaceGUID, in.AttachedRoutes); err != nil {
				return err
			}
		}
		if vs := o.evaluate(in); len(vs) > 0 {
			return vs
		}

		p.UpdatedAt = time.Now().UTC()
		if err := tx.Save(p); err != nil {
			return err
		}

		snapshot := p.Clone()
		stateFlip := before.DesiredState != p.DesiredState
		capacityWhileRunning := cs.ChangesCapacity(before) && p.DesiredState == app.DesiredStarted
		beforeSnapshot := before.Clone()
		tx.AfterCommit(func() {
			if stateFlip || capacityWhileRunning {
				o.recordUsage(snapshot, UsageUpdated)
			}
			o.recordAudit(beforeSnapshot, snapshot, "update")
			o.notifier.Updated(snapshot)
		})
		result = p
		return nil
	})
	if err != nil {
		metrics.CountMutation("update", "error")
		return nil, err
	}
	metrics.CountMutation("update", "ok")
	return result, nil
}

// Destroy removes a process. Bindings are severed first and the row is held
// under an explicit lock so a concurrent update cannot resurrect it. The
// deletion usage event fires only after the outer transaction commits.
func (o *Orchestrator) Destroy(ctx context.Context, guid string) error {
	err := o.store.Mutate(ctx, func(tx Tx) error {
		p, err := tx.GetForUpdate(guid)
		if err != nil {
			return err
		}
		if o.bindings != nil {
			if errs := o.bindings.DeleteAll(ctx, p); len(errs) > 0 {
				return fmt.Errorf("severing service bindings for process %s: %w", guid, errors.Join(errs...))
			}
		}
		p.DesiredState = app.DesiredStopped
		if err := tx.Delete(p); err != nil {
			return err
		}

		snapshot := p.Clone()
		tx.AfterCommit(func() {
			o.recordUsage(snapshot, UsageDeleted)
			o.recordAudit(snapshot, nil, "destroy")
			o.notifier.Deleted(snapshot)
		})
		return nil
	})
	if err != nil {
		metrics.CountMutation("destroy", "error")
		return err
	}
	metrics.CountMutation("destroy", "ok")
	return nil
}

// MarkForRestaging returns the process to PENDING. Idempotent: re-marking an
// already pending process only refreshes the pending-since timestamp.
func (o *Orchestrator) MarkForRestaging(ctx context.Context, guid string) (*app.Process, error) {
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		p, err := tx.Get(guid)
		if err != nil {
			return err
		}
		staging.MarkPending(p)
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Save(p); err != nil {
			return err
		}
		snapshot := p.Clone()
		tx.AfterCommit(func() {
			o.notifier.Updated(snapshot)
		})
		result = p
		return nil
	})
	return result, err
}

func (o *Orchestrator) policyInput(ctx context.Context, p, before *app.Process, cs *app.Changeset) (policy.Input, error) {
	pctx, err := o.resolver.Resolve(ctx, p)
	if err != nil {
		return policy.Input{}, fmt.Errorf("resolving policy context for process %s: %w", p.GUID, err)
	}
	buildpack := app.AutoBuildpack()
	if o.buildpacks != nil {
		buildpack, err = o.buildpacks.Resolve(ctx, p)
		if err != nil {
			return policy.Input{}, fmt.Errorf("resolving buildpack for process %s: %w", p.GUID, err)
		}
	}
	return policy.Input{
		Process:   p,
		Previous:  before,
		Changeset: cs,
		Context:   pctx,
		Buildpack: buildpack,
		Defaults:  o.defaults,
	}, nil
}

func (o *Orchestrator) evaluate(in policy.Input) policy.ViolationSet {
	vs := o.engine.Evaluate(in)
	for _, name := range vs.Policies() {
		metrics.CountViolation(name)
	}
	return vs
}

func (o *Orchestrator) recordUsage(p *app.Process, kind UsageEventKind) {
	if o.usage != nil {
		o.usage.RecordFromProcess(p, kind)
	}
}

// recordAudit emits an audit entry whose payload is the JSON patch between
// the before and after records. Nil before/after mark create/destroy.
func (o *Orchestrator) recordAudit(before, after *app.Process, operation string) {
	if o.audit == nil {
		return
	}
	entry := AuditEntry{Operation: operation}
	var beforeBytes, afterBytes = []byte("{}"), []byte("{}")
	if before != nil {
		entry.ProcessGUID = before.GUID
		b, err := before.Bytes()
		if err != nil {
			o.log.Warn().Err(err).Msg("serializing audit before-record")
			return
		}
		beforeBytes = b
	}
	if after != nil {
		entry.ProcessGUID = after.GUID
		b, err := after.Bytes()
		if err != nil {
			o.log.Warn().Err(err).Msg("serializing audit after-record")
			return
		}
		afterBytes = b
	}
	patch, err := jsondiff.CompareJSON(beforeBytes, afterBytes)
	if err != nil {
		o.log.Warn().Err(err).Msg("computing audit diff")
		return
	}
	if raw, err := json.Marshal(patch); err == nil {
		entry.Diff = raw
	}
	o.audit.RecordAudit(entry)
}
