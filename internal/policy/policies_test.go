package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halyard-cloud/halyard/core/state/app"
)

func intPtr(v int) *int { return &v }

func defaults() app.PlatformDefaults {
	return app.PlatformDefaults{
		Backend:                 app.BackendNextGen,
		MemoryMB:                1024,
		DiskQuotaMB:             1024,
		Instances:               1,
		MinMemoryMB:             64,
		MinDiskQuotaMB:          1,
		MaxDiskQuotaMB:          2048,
		MaxHealthCheckTimeout:   180,
		AllowSSH:                true,
		CustomBuildpacksEnabled: true,
		StackName:               "cflinuxfs4",
	}
}

func validInput() Input {
	return Input{
		Process: &app.Process{
			GUID:            "proc-1",
			Name:            "web-app",
			Type:            "web",
			SpaceGUID:       "space-1",
			DesiredState:    app.DesiredStarted,
			Backend:         app.BackendNextGen,
			Ports:           []int{8080},
			MemoryMB:        256,
			DiskQuotaMB:     1024,
			Instances:       2,
			HealthCheckType: app.HealthCheckPort,
		},
		Buildpack: app.AutoBuildpack(),
		Defaults:  defaults(),
	}
}

func TestEngineAcceptsValidInput(t *testing.T) {
	engine := NewEngine()
	vs := engine.Evaluate(validInput())
	assert.Empty(t, vs)
}

func TestEngineAggregatesAllViolations(t *testing.T) {
	in := validInput()
	in.Process.Name = ""
	in.Process.MemoryMB = 8
	in.Process.Instances = -1

	vs := NewEngine().Evaluate(in)

	assert.True(t, vs.Has(NameMissing))
	assert.True(t, vs.Has(MemoryBelowMinimum))
	assert.True(t, vs.Has(InstancesNegative))
	assert.Len(t, vs.Policies(), 3)
}

func TestViolationSetError(t *testing.T) {
	vs := ViolationSet{
		{Policy: NameMissing, Message: "process name must be present"},
	}
	var err error = vs
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), NameMissing)
}

func TestNamePolicy(t *testing.T) {
	in := validInput()
	in.NamesInSpace = []string{"other-app", "web-app"}
	vs := NamePolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, NameTaken, vs[0].Policy)
}

func TestProcessTypePolicy(t *testing.T) {
	in := validInput()
	in.Siblings = []*app.Process{
		{GUID: "proc-2", Type: "WEB"},
	}
	vs := ProcessTypePolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, DuplicateProcessType, vs[0].Policy)

	// The process never conflicts with itself.
	in.Siblings = []*app.Process{{GUID: "proc-1", Type: "web"}}
	assert.Empty(t, ProcessTypePolicy(in))
}

func TestDiskQuotaPolicy(t *testing.T) {
	in := validInput()
	in.Process.DiskQuotaMB = 4096
	vs := DiskQuotaPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, DiskQuotaExceedsMaximum, vs[0].Policy)

	in.Process.DiskQuotaMB = 0
	vs = DiskQuotaPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, DiskQuotaBelowMinimum, vs[0].Policy)
}

func TestMemoryPolicyQuota(t *testing.T) {
	in := validInput()
	in.SpaceQuota = &app.QuotaDefinition{
		MemoryLimitMB:         512,
		InstanceMemoryLimitMB: app.QuotaUnlimited,
		AppInstanceLimit:      app.QuotaUnlimited,
	}
	in.SpaceUsage = app.QuotaUsage{MemoryInUseMB: 256}

	// 256MB x 2 instances + 256MB in use > 512MB limit.
	vs := MemoryPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, QuotaExceeded, vs[0].Policy)

	// A stopped process consumes no quota.
	in.Process.DesiredState = app.DesiredStopped
	assert.Empty(t, MemoryPolicy(in))
}

func TestMemoryPolicyInstanceLimit(t *testing.T) {
	in := validInput()
	in.OrgQuota = &app.QuotaDefinition{
		MemoryLimitMB:         app.QuotaUnlimited,
		InstanceMemoryLimitMB: 128,
		AppInstanceLimit:      app.QuotaUnlimited,
	}

	vs := MemoryPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, InstanceMemoryLimitExceeded, vs[0].Policy)

	// The per-instance limit applies regardless of desired state.
	in.Process.DesiredState = app.DesiredStopped
	vs = MemoryPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, InstanceMemoryLimitExceeded, vs[0].Policy)
}

func TestInstancesPolicy(t *testing.T) {
	in := validInput()
	in.Process.Instances = -1
	vs := InstancesPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, InstancesNegative, vs[0].Policy)

	in = validInput()
	in.SpaceQuota = &app.QuotaDefinition{
		MemoryLimitMB:         app.QuotaUnlimited,
		InstanceMemoryLimitMB: app.QuotaUnlimited,
		AppInstanceLimit:      3,
	}
	in.SpaceUsage = app.QuotaUsage{InstancesInUse: 2}
	vs = InstancesPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, AppInstanceLimitExceeded, vs[0].Policy)
}

func TestHealthCheckTimeoutPolicy(t *testing.T) {
	in := validInput()
	in.Process.HealthCheckTimeout = 600
	vs := HealthCheckTimeoutPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, HealthCheckTimeoutExceeded, vs[0].Policy)
}

func TestPortsHealthCheckPolicy(t *testing.T) {
	in := validInput()
	in.Process.Ports = []int{}
	vs := PortsHealthCheckPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, PortsEmptyForPortHealthcheck, vs[0].Policy)

	// A non-port health check does not need ports.
	in.Process.HealthCheckType = app.HealthCheckProcess
	assert.Empty(t, PortsHealthCheckPolicy(in))
}

func TestPortsHealthCheckPolicySkipsLegacy(t *testing.T) {
	// The legacy backend always carries an empty port list; a port health
	// check there must not block, or no migration onto legacy could commit.
	in := validInput()
	in.Process.Backend = app.BackendLegacy
	in.Process.Ports = []int{}
	assert.Empty(t, PortsHealthCheckPolicy(in))
}

func TestSSHPolicy(t *testing.T) {
	in := validInput()
	in.Process.EnableSSH = true
	in.Space = &app.Space{GUID: "space-1", AllowSSH: true}
	assert.Empty(t, SSHPolicy(in))

	in.Space.AllowSSH = false
	vs := SSHPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, SSHNotAllowed, vs[0].Policy)

	in.Space.AllowSSH = true
	in.Defaults.AllowSSH = false
	vs = SSHPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, SSHNotAllowed, vs[0].Policy)

	// A process that leaves SSH off is never blocked.
	in.Process.EnableSSH = false
	assert.Empty(t, SSHPolicy(in))
}

func TestBuildpackPolicy(t *testing.T) {
	in := validInput()
	in.Process.Buildpack = "no_such_buildpack"
	in.Buildpack = app.BuildpackRef{Kind: app.BuildpackAdmin, Name: "no_such_buildpack"}
	vs := BuildpackPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, BuildpackInvalid, vs[0].Policy)

	in = validInput()
	in.Buildpack = app.CustomBuildpack("https://example.com/buildpack.git")
	in.Defaults.CustomBuildpacksEnabled = false
	vs = BuildpackPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, CustomBuildpacksDisabled, vs[0].Policy)
}

func TestDockerImagePolicy(t *testing.T) {
	in := validInput()
	in.Process.DockerImage = "registry.example.com/team/app:latest"
	assert.Empty(t, DockerImagePolicy(in))

	in.Process.DockerImage = "REGISTRY/No Spaces Allowed"
	vs := DockerImagePolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, DockerImageInvalid, vs[0].Policy)
}

func TestLegacyPortsPolicy(t *testing.T) {
	ports := []int{9000}
	in := validInput()
	in.Process.Backend = app.BackendLegacy
	in.Changeset = &app.Changeset{Ports: &ports}

	vs := LegacyPortsPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, PortsNotSupportedOnLegacy, vs[0].Policy)

	// Clearing ports on the legacy backend is fine.
	empty := []int{}
	in.Changeset = &app.Changeset{Ports: &empty}
	assert.Empty(t, LegacyPortsPolicy(in))
}

func TestLegacyTransitionPolicy(t *testing.T) {
	previous := &app.Process{
		GUID:    "proc-1",
		Backend: app.BackendNextGen,
		RouteMappings: []*app.RouteMapping{
			{GUID: "rm-1", RouteGUID: "route-1", BoundPort: intPtr(8080)},
			{GUID: "rm-2", RouteGUID: "route-2", BoundPort: intPtr(9090)},
		},
	}

	in := validInput()
	in.Previous = previous
	in.Process.Backend = app.BackendLegacy
	// The reconciler has already nulled the bound ports on the post-apply
	// record; the policy inspects the pre-apply snapshot.
	in.Process.RouteMappings = []*app.RouteMapping{
		{GUID: "rm-1", RouteGUID: "route-1"},
		{GUID: "rm-2", RouteGUID: "route-2"},
	}

	vs := LegacyTransitionPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, MultiplePortsMappedToLegacy, vs[0].Policy)
}

func TestLegacyTransitionPolicyCountsMappingsNotPorts(t *testing.T) {
	// Two mappings bound to the same port are still two ambiguous mappings.
	previous := &app.Process{
		GUID:    "proc-1",
		Backend: app.BackendNextGen,
		Ports:   []int{9000},
		RouteMappings: []*app.RouteMapping{
			{GUID: "rm-1", RouteGUID: "route-1", BoundPort: intPtr(9000)},
			{GUID: "rm-2", RouteGUID: "route-2", BoundPort: intPtr(9000)},
		},
	}

	in := validInput()
	in.Previous = previous
	in.Process.Backend = app.BackendLegacy

	vs := LegacyTransitionPolicy(in)
	require.Len(t, vs, 1)
	assert.Equal(t, MultiplePortsMappedToLegacy, vs[0].Policy)
}

func TestLegacyTransitionPolicyAllowsSingleMappedPort(t *testing.T) {
	previous := &app.Process{
		GUID:    "proc-1",
		Backend: app.BackendNextGen,
		RouteMappings: []*app.RouteMapping{
			{GUID: "rm-1", RouteGUID: "route-1", BoundPort: intPtr(8080)},
			{GUID: "rm-2", RouteGUID: "route-2"},
		},
	}

	in := validInput()
	in.Previous = previous
	in.Process.Backend = app.BackendLegacy

	assert.Empty(t, LegacyTransitionPolicy(in))
}

func TestLegacyTransitionPolicyIgnoresCreate(t *testing.T) {
	in := validInput()
	in.Process.Backend = app.BackendLegacy
	in.Previous = nil
	assert.Empty(t, LegacyTransitionPolicy(in))
}
