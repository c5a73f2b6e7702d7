package staging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halyard-cloud/halyard/core/state/app"
)

func pendingProcess() *app.Process {
	now := time.Now().UTC()
	return &app.Process{
		GUID:                "proc-1",
		Backend:             app.BackendNextGen,
		DesiredState:        app.DesiredStarted,
		PackageState:        app.PackagePending,
		PackagePendingSince: &now,
	}
}

func TestComplete(t *testing.T) {
	p := pendingProcess()

	err := Complete(p, "droplet-1")
	require.NoError(t, err)

	assert.Equal(t, app.PackageStaged, p.PackageState)
	assert.Equal(t, "droplet-1", p.DropletGUID)
	assert.Empty(t, p.StagingFailedReason)
	assert.Nil(t, p.PackagePendingSince)
}

func TestCompleteRequiresDroplet(t *testing.T) {
	p := pendingProcess()

	err := Complete(p, "")
	require.Error(t, err)
	assert.Equal(t, app.PackagePending, p.PackageState)
}

func TestFail(t *testing.T) {
	p := pendingProcess()

	Fail(p, app.NoAppDetectedError, "no start command detected")

	assert.Equal(t, app.PackageFailed, p.PackageState)
	assert.Equal(t, app.NoAppDetectedError, p.StagingFailedReason)
	assert.Equal(t, "no start command detected", p.StagingFailedDescription)
	assert.Nil(t, p.PackagePendingSince)
}

func TestFailCoercesUnknownReason(t *testing.T) {
	p := pendingProcess()

	Fail(p, "TotallyUnknownReason", "something odd")

	assert.Equal(t, app.PackageFailed, p.PackageState)
	assert.Equal(t, app.StagingError, p.StagingFailedReason)
	assert.Equal(t, "something odd", p.StagingFailedDescription)
}

func TestFailStopsNextGenProcess(t *testing.T) {
	p := pendingProcess()
	require.Equal(t, app.DesiredStarted, p.DesiredState)

	Fail(p, app.StagerError, "stager crashed")

	assert.Equal(t, app.DesiredStopped, p.DesiredState)
}

func TestFailLeavesLegacyProcessRunning(t *testing.T) {
	p := pendingProcess()
	p.Backend = app.BackendLegacy

	Fail(p, app.StagerError, "stager crashed")

	assert.Equal(t, app.DesiredStarted, p.DesiredState)
}

func TestMarkPending(t *testing.T) {
	p := pendingProcess()
	p.PackageState = app.PackageFailed
	p.StagingFailedReason = app.StagingTimeExpired
	p.StagingFailedDescription = "took too long"
	p.PackagePendingSince = nil

	MarkPending(p)

	assert.Equal(t, app.PackagePending, p.PackageState)
	assert.Empty(t, p.StagingFailedReason)
	assert.Empty(t, p.StagingFailedDescription)
	require.NotNil(t, p.PackagePendingSince)
}

func TestMarkPendingIsIdempotent(t *testing.T) {
	p := pendingProcess()

	MarkPending(p)
	first := *p.PackagePendingSince

	time.Sleep(10 * time.Millisecond)
	MarkPending(p)

	assert.Equal(t, app.PackagePending, p.PackageState)
	// Re-marking only refreshes the timestamp.
	assert.True(t, p.PackagePendingSince.After(first))
}

func TestNeedsRestage(t *testing.T) {
	before := &app.Process{
		PackageHash: "sha-1",
		Buildpack:   "go_buildpack",
		StackName:   "cflinuxfs4",
	}

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name string
		cs   *app.Changeset
		want bool
	}{
		{name: "nil changeset", cs: nil, want: false},
		{name: "empty changeset", cs: &app.Changeset{}, want: false},
		{name: "new package hash", cs: &app.Changeset{PackageHash: strPtr("sha-2")}, want: true},
		{name: "same package hash", cs: &app.Changeset{PackageHash: strPtr("sha-1")}, want: false},
		{name: "new buildpack", cs: &app.Changeset{Buildpack: strPtr("java_buildpack")}, want: true},
		{name: "new stack", cs: &app.Changeset{StackName: strPtr("cflinuxfs3")}, want: true},
		{name: "memory only", cs: &app.Changeset{MemoryMB: intPtr(512)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRestage(before, tt.cs))
		})
	}
}

func intPtr(v int) *int { return &v }
