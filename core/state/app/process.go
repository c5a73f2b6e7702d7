package app

import (
	"time"
)

type DesiredState string

const (
	DesiredStopped DesiredState = "STOPPED"
	DesiredStarted DesiredState = "STARTED"
)

type PackageState string

const (
	PackagePending PackageState = "PENDING"
	PackageStaged  PackageState = "STAGED"
	PackageFailed  PackageState = "FAILED"
)

// Backend identifies the execution substrate a process runs on. It is a
// tri-state: unset at creation time means "default from platform config".
type Backend string

const (
	BackendUnset   Backend = ""
	BackendLegacy  Backend = "legacy"
	BackendNextGen Backend = "next-gen"
)

type HealthCheckType string

const (
	HealthCheckPort    HealthCheckType = "port"
	HealthCheckNone    HealthCheckType = "none"
	HealthCheckProcess HealthCheckType = "process"
)

// StagingFailedReason is the fixed vocabulary accepted from staging failure
// reports. Anything outside this set is coerced to StagingError.
type StagingFailedReason string

const (
	StagerError            StagingFailedReason = "StagerError"
	StagingError           StagingFailedReason = "StagingError"
	StagingTimeExpired     StagingFailedReason = "StagingTimeExpired"
	NoAppDetectedError     StagingFailedReason = "NoAppDetectedError"
	BuildpackCompileFailed StagingFailedReason = "BuildpackCompileFailed"
	BuildpackReleaseFailed StagingFailedReason = "BuildpackReleaseFailed"
	InsufficientResources  StagingFailedReason = "InsufficientResources"
	NoCompatibleCell       StagingFailedReason = "NoCompatibleCell"
)

// KnownStagingFailedReason reports whether reason is one of the fixed enum
// values.
func KnownStagingFailedReason(reason StagingFailedReason) bool {
	switch reason {
	case StagerError, StagingError, StagingTimeExpired, NoAppDetectedError,
		BuildpackCompileFailed, BuildpackReleaseFailed, InsufficientResources,
		NoCompatibleCell:
		return true
	}
	return false
}

// DefaultPort is bound when a next-gen process declares no ports of its own.
const DefaultPort = 8080

// Process is the authoritative lifecycle record for a deployable application
// process. All mutation goes through the lifecycle orchestrator; nothing else
// writes these fields.
type Process struct {
	GUID      string `json:"guid"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	SpaceGUID string `json:"space_guid"`

	DesiredState DesiredState `json:"desired_state"`

	PackageState             PackageState        `json:"package_state"`
	StagingFailedReason      StagingFailedReason `json:"staging_failed_reason,omitempty"`
	StagingFailedDescription string              `json:"staging_failed_description,omitempty"`
	PackagePendingSince      *time.Time          `json:"package_pending_since,omitempty"`

	// Version is an opaque token regenerated whenever the declared
	// desired-runtime-state changes. Execution infrastructure polls it to
	// detect "reconverge".
	Version string `json:"version"`

	Backend Backend `json:"backend"`
	Ports   []int   `json:"ports"`

	MemoryMB           int             `json:"memory_mb"`
	DiskQuotaMB        int             `json:"disk_quota_mb"`
	Instances          int             `json:"instances"`
	EnableSSH          bool            `json:"enable_ssh"`
	HealthCheckType    HealthCheckType `json:"health_check_type"`
	HealthCheckTimeout int             `json:"health_check_timeout,omitempty"`

	PackageHash string `json:"package_hash,omitempty"`
	// DropletGUID is a weak reference to the most recent successfully staged
	// artifact. It is a lookup key, not ownership.
	DropletGUID string `json:"droplet_guid,omitempty"`

	Command     string `json:"command,omitempty"`
	DockerImage string `json:"docker_image,omitempty"`
	Buildpack   string `json:"buildpack,omitempty"`
	StackName   string `json:"stack_name,omitempty"`

	RouteMappings []*RouteMapping `json:"route_mappings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RouteMapping binds a process to a route. BoundPort nil means "unspecified,
// route layer infers"; on the legacy backend it is always nil.
type RouteMapping struct {
	GUID      string `json:"guid"`
	RouteGUID string `json:"route_guid"`
	BoundPort *int   `json:"bound_port"`
}

// Route is externally owned; the lifecycle core only reads the fields needed
// for relation validation.
type Route struct {
	GUID            string `json:"guid"`
	SpaceGUID       string `json:"space_guid"`
	Host            string `json:"host"`
	Path            string `json:"path"`
	RouteServiceURL string `json:"route_service_url,omitempty"`
	Domain          Domain `json:"domain"`
}

type Domain struct {
	GUID                   string `json:"guid"`
	Name                   string `json:"name"`
	OwningOrganizationGUID string `json:"owning_organization_guid,omitempty"`
	Shared                 bool   `json:"shared"`
}

// UsableBy reports whether the domain may carry routes for the given
// organization.
func (d Domain) UsableBy(orgGUID string) bool {
	return d.Shared || d.OwningOrganizationGUID == orgGUID
}

// IsDocker reports whether the process runs a docker image rather than a
// staged droplet.
func (p *Process) IsDocker() bool {
	return p.DockerImage != ""
}

// Clone returns a deep copy. Reconcilers and the orchestrator work on clones
// so an aborted mutation leaves the loaded record untouched.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	out := *p
	if p.Ports != nil {
		out.Ports = make([]int, len(p.Ports))
		copy(out.Ports, p.Ports)
	}
	if p.PackagePendingSince != nil {
		t := *p.PackagePendingSince
		out.PackagePendingSince = &t
	}
	out.RouteMappings = make([]*RouteMapping, len(p.RouteMappings))
	for i, m := range p.RouteMappings {
		cp := *m
		if m.BoundPort != nil {
			port := *m.BoundPort
			cp.BoundPort = &port
		}
		out.RouteMappings[i] = &cp
	}
	return &out
}

// MappedPorts returns the distinct non-nil bound ports across all route
// mappings, in first-seen order.
func (p *Process) MappedPorts() []int {
	seen := make(map[int]bool)
	ports := make([]int, 0)
	for _, m := range p.RouteMappings {
		if m.BoundPort == nil {
			continue
		}
		if !seen[*m.BoundPort] {
			seen[*m.BoundPort] = true
			ports = append(ports, *m.BoundPort)
		}
	}
	return ports
}
