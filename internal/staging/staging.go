// Package staging governs the package_state machine for a process:
// PENDING -> STAGED | FAILED, with "mark for restaging" returning either
// terminal state to PENDING.
package staging

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// Complete moves a PENDING process to STAGED once a build artifact is
// attached. The droplet reference must be present; STAGED implies a droplet.
func Complete(p *app.Process, dropletGUID string) error {
	if dropletGUID == "" {
		return fmt.Errorf("cannot mark process %s staged without a droplet reference", p.GUID)
	}
	p.PackageState = app.PackageStaged
	p.DropletGUID = dropletGUID
	p.StagingFailedReason = ""
	p.StagingFailedDescription = ""
	p.PackagePendingSince = nil
	return nil
}

// Fail records an externally reported staging failure. Failure reports are
// always accepted: an unrecognized reason is coerced to StagingError with a
// warning rather than rejected. On the next-gen backend a staging failure
// also stops the process.
func Fail(p *app.Process, reason app.StagingFailedReason, description string) {
	if !app.KnownStagingFailedReason(reason) {
		log.Warn().
			Str("process", p.GUID).
			Str("reported_reason", string(reason)).
			Msgf("unrecognized staging failure reason, coercing to %s", app.StagingError)
		reason = app.StagingError
	}
	p.PackageState = app.PackageFailed
	p.StagingFailedReason = reason
	p.StagingFailedDescription = description
	p.PackagePendingSince = nil

	if p.Backend == app.BackendNextGen {
		p.DesiredState = app.DesiredStopped
	}
}

// MarkPending marks the process for (re)staging. Re-marking an already
// PENDING process only refreshes the pending-since timestamp.
func MarkPending(p *app.Process) {
	now := time.Now().UTC()
	p.PackageState = app.PackagePending
	p.StagingFailedReason = ""
	p.StagingFailedDescription = ""
	p.PackagePendingSince = &now
}

// NeedsRestage reports whether a mutation invalidates the staged artifact:
// a new package hash, a different buildpack, or a different stack.
func NeedsRestage(before *app.Process, cs *app.Changeset) bool {
	if cs == nil {
		return false
	}
	if cs.PackageHash != nil && *cs.PackageHash != before.PackageHash {
		return true
	}
	if cs.Buildpack != nil && *cs.Buildpack != before.Buildpack {
		return true
	}
	if cs.StackName != nil && *cs.StackName != before.StackName {
		return true
	}
	return false
}
