package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/metrics"
	"github.com/halyard-cloud/halyard/internal/staging"
)

// CompleteStaging attaches a freshly staged droplet, moving the process to
// STAGED. The droplet must match the process's current package hash; a stale
// artifact aborts the transaction.
func (o *Orchestrator) CompleteStaging(ctx context.Context, guid string, droplet DropletRef) (*app.Process, error) {
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		p, err := tx.Get(guid)
		if err != nil {
			return err
		}
		if droplet.PackageHash != p.PackageHash {
			return fmt.Errorf("droplet %s was staged from package %q but process %s now has package %q",
				droplet.GUID, droplet.PackageHash, guid, p.PackageHash)
		}
		if err := staging.Complete(p, droplet.GUID); err != nil {
			return err
		}
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
	if err != nil {
		metrics.CountMutation("complete_staging", "error")
		return nil, err
	}
	metrics.CountMutation("complete_staging", "ok")
	return result, nil
}

// SyncStaging reconciles a process stuck in PENDING against the artifact
// store: when a droplet staged from the process's current package already
// exists, the lost completion callback is replayed. Any other state is
// returned untouched.
func (o *Orchestrator) SyncStaging(ctx context.Context, guid string) (*app.Process, error) {
	if o.droplets == nil {
		return nil, errors.New("lifecycle: no artifact store configured")
	}
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		p, err := tx.Get(guid)
		if err != nil {
			return err
		}
		if p.PackageState != app.PackagePending {
			result = p
			return nil
		}
		droplet, ok, err := o.droplets.CurrentDroplet(ctx, p)
		if err != nil {
			return fmt.Errorf("looking up current droplet for process %s: %w", guid, err)
		}
		if !ok || droplet.PackageHash != p.PackageHash {
			result = p
			return nil
		}
		if err := staging.Complete(p, droplet.GUID); err != nil {
			return err
		}
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
	if err != nil {
		metrics.CountMutation("sync_staging", "error")
		return nil, err
	}
	metrics.CountMutation("sync_staging", "ok")
	return result, nil
}

// ReportStagingFailure records an external staging failure report. Reports
// are always accepted; unknown reasons are normalized, never rejected.
func (o *Orchestrator) ReportStagingFailure(ctx context.Context, guid string, reason, description string) (*app.Process, error) {
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		p, err := tx.Get(guid)
		if err != nil {
			return err
		}
		wasStarted := p.DesiredState == app.DesiredStarted
		staging.Fail(p, app.StagingFailedReason(reason), description)
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Save(p); err != nil {
			return err
		}
		snapshot := p.Clone()
		stopped := wasStarted && p.DesiredState == app.DesiredStopped
		tx.AfterCommit(func() {
			if stopped {
				o.recordUsage(snapshot, UsageUpdated)
			}
			o.notifier.Updated(snapshot)
		})
		result = p
		return nil
	})
	if err != nil {
		metrics.CountMutation("staging_failure", "error")
		return nil, err
	}
	metrics.CountMutation("staging_failure", "ok")
	return result, nil
}
