// Package reconcile holds the two deterministic rule sets run on every
// mutation before validation: the version convergence rule and the backend
// migration reconciler.
package reconcile

import (
	"slices"

	"github.com/google/uuid"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// NewVersion mints a fresh opaque version token. Consumers only ever compare
// tokens for inequality.
func NewVersion() string {
	return uuid.New().String()
}

// NeedsNewVersion decides whether the mutation from before to after must
// regenerate the process version. The token is the "redeploy me" signal, so
// only changes observable by running infrastructure count, and only while the
// process is (or is becoming) desired-STARTED. portsEdited distinguishes a
// direct user port edit from an automatic backend-driven rewrite; only the
// former signals.
func NeedsNewVersion(before, after *app.Process, portsEdited bool) bool {
	if after.DesiredState != app.DesiredStarted {
		return false
	}
	if before.DesiredState != app.DesiredStarted {
		return true
	}
	if before.MemoryMB != after.MemoryMB {
		return true
	}
	if before.HealthCheckType != after.HealthCheckType {
		return true
	}
	if before.EnableSSH != after.EnableSSH {
		return true
	}
	if portsEdited && !slices.Equal(before.Ports, after.Ports) {
		return true
	}
	return false
}
