package app

import "slices"

// Changeset is a desired mutation over a process: nil fields are untouched.
// Constructed by the request layer, interpreted by the lifecycle orchestrator.
type Changeset struct {
	Name         *string       `json:"name,omitempty"`
	DesiredState *DesiredState `json:"desired_state,omitempty"`

	// SpaceGUID re-homes the process into a different space; gated by the
	// route binding validator.
	SpaceGUID *string `json:"space_guid,omitempty"`

	MemoryMB           *int             `json:"memory_mb,omitempty"`
	DiskQuotaMB        *int             `json:"disk_quota_mb,omitempty"`
	Instances          *int             `json:"instances,omitempty"`
	EnableSSH          *bool            `json:"enable_ssh,omitempty"`
	HealthCheckType    *HealthCheckType `json:"health_check_type,omitempty"`
	HealthCheckTimeout *int             `json:"health_check_timeout,omitempty"`

	// Ports non-nil is a direct user edit, as distinct from a backend-driven
	// port rewrite. The version convergence rule relies on the distinction.
	Ports *[]int `json:"ports,omitempty"`

	Backend *Backend `json:"backend,omitempty"`

	PackageHash *string `json:"package_hash,omitempty"`
	Command     *string `json:"command,omitempty"`
	DockerImage *string `json:"docker_image,omitempty"`
	Buildpack   *string `json:"buildpack,omitempty"`
	StackName   *string `json:"stack_name,omitempty"`
}

// Apply writes the set fields onto p. Cross-cutting consequences (staging,
// version, backend reconciliation) are not applied here; the orchestrator
// runs those rules around this call.
func (c *Changeset) Apply(p *Process) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.DesiredState != nil {
		p.DesiredState = *c.DesiredState
	}
	if c.SpaceGUID != nil {
		p.SpaceGUID = *c.SpaceGUID
	}
	if c.MemoryMB != nil {
		p.MemoryMB = *c.MemoryMB
	}
	if c.DiskQuotaMB != nil {
		p.DiskQuotaMB = *c.DiskQuotaMB
	}
	if c.Instances != nil {
		p.Instances = *c.Instances
	}
	if c.EnableSSH != nil {
		p.EnableSSH = *c.EnableSSH
	}
	if c.HealthCheckType != nil {
		p.HealthCheckType = *c.HealthCheckType
	}
	if c.HealthCheckTimeout != nil {
		p.HealthCheckTimeout = *c.HealthCheckTimeout
	}
	if c.Ports != nil {
		p.Ports = slices.Clone(*c.Ports)
	}
	if c.Backend != nil {
		p.Backend = *c.Backend
	}
	if c.PackageHash != nil {
		p.PackageHash = *c.PackageHash
	}
	if c.Command != nil {
		p.Command = *c.Command
	}
	if c.DockerImage != nil {
		p.DockerImage = *c.DockerImage
	}
	if c.Buildpack != nil {
		p.Buildpack = *c.Buildpack
	}
	if c.StackName != nil {
		p.StackName = *c.StackName
	}
}

// EditsPorts reports whether the changeset carries a direct user port edit.
func (c *Changeset) EditsPorts() bool {
	return c.Ports != nil
}

// ChangesBackend reports whether the changeset moves the process to a
// different backend than before.
func (c *Changeset) ChangesBackend(before *Process) bool {
	return c.Backend != nil && *c.Backend != before.Backend
}

// ChangesCapacity reports whether a capacity attribute (memory, disk,
// instance count) changes relative to before. Drives usage-event emission.
func (c *Changeset) ChangesCapacity(before *Process) bool {
	if c.MemoryMB != nil && *c.MemoryMB != before.MemoryMB {
		return true
	}
	if c.DiskQuotaMB != nil && *c.DiskQuotaMB != before.DiskQuotaMB {
		return true
	}
	if c.Instances != nil && *c.Instances != before.Instances {
		return true
	}
	return false
}
