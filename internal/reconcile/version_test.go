package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halyard-cloud/halyard/core/state/app"
)

func startedProcess() *app.Process {
	return &app.Process{
		GUID:            "proc-1",
		DesiredState:    app.DesiredStarted,
		MemoryMB:        256,
		HealthCheckType: app.HealthCheckPort,
		EnableSSH:       true,
		Ports:           []int{8080},
	}
}

func TestNeedsNewVersion(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(before, after *app.Process)
		portsEdited bool
		want        bool
	}{
		{
			name:   "no change",
			mutate: func(before, after *app.Process) {},
			want:   false,
		},
		{
			name: "transition into started",
			mutate: func(before, after *app.Process) {
				before.DesiredState = app.DesiredStopped
			},
			want: true,
		},
		{
			name: "memory change while started",
			mutate: func(before, after *app.Process) {
				after.MemoryMB = 512
			},
			want: true,
		},
		{
			name: "memory change while stopped",
			mutate: func(before, after *app.Process) {
				before.DesiredState = app.DesiredStopped
				after.DesiredState = app.DesiredStopped
				after.MemoryMB = 512
			},
			want: false,
		},
		{
			name: "health check type change",
			mutate: func(before, after *app.Process) {
				after.HealthCheckType = app.HealthCheckNone
			},
			want: true,
		},
		{
			name: "ssh toggle",
			mutate: func(before, after *app.Process) {
				after.EnableSSH = false
			},
			want: true,
		},
		{
			name: "user port edit",
			mutate: func(before, after *app.Process) {
				after.Ports = []int{9000}
			},
			portsEdited: true,
			want:        true,
		},
		{
			name: "backend-driven port rewrite does not count",
			mutate: func(before, after *app.Process) {
				after.Ports = []int{9000}
			},
			portsEdited: false,
			want:        false,
		},
		{
			name: "user port edit to identical ports",
			mutate: func(before, after *app.Process) {
			},
			portsEdited: true,
			want:        false,
		},
		{
			name: "transition to stopped never bumps",
			mutate: func(before, after *app.Process) {
				after.DesiredState = app.DesiredStopped
				after.MemoryMB = 512
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := startedProcess()
			after := startedProcess()
			tt.mutate(before, after)
			assert.Equal(t, tt.want, NeedsNewVersion(before, after, tt.portsEdited))
		})
	}
}

func TestNewVersionIsDistinct(t *testing.T) {
	a := NewVersion()
	b := NewVersion()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
