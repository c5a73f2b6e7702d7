package policy

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// Stable policy names. Callers key user-facing messages off these.
const (
	NameMissing                  = "name_missing"
	NameTaken                    = "name_not_unique_in_space"
	DuplicateProcessType         = "duplicate_process_type"
	DiskQuotaBelowMinimum        = "disk_quota_below_minimum"
	DiskQuotaExceedsMaximum      = "disk_quota_exceeds_maximum"
	MemoryBelowMinimum           = "memory_below_minimum"
	QuotaExceeded                = "quota_exceeded"
	InstanceMemoryLimitExceeded  = "instance_memory_limit_exceeded"
	InstancesNegative            = "instances_negative"
	AppInstanceLimitExceeded     = "app_instance_limit_exceeded"
	HealthCheckTimeoutExceeded   = "health_check_timeout_exceeded"
	PortsEmptyForPortHealthcheck = "ports_empty_for_port_healthcheck"
	CustomBuildpacksDisabled     = "custom_buildpacks_disabled"
	BuildpackInvalid             = "buildpack_invalid"
	DockerImageInvalid           = "docker_image_invalid"
	PortsNotSupportedOnLegacy    = "ports_not_supported_on_legacy"
	MultiplePortsMappedToLegacy  = "multiple_ports_mapped_transitioning_to_legacy"
	SSHNotAllowed                = "ssh_not_allowed"
)

// DefaultPolicies is the complete policy list gating every mutation.
func DefaultPolicies() []Policy {
	return []Policy{
		NamePolicy,
		ProcessTypePolicy,
		DiskQuotaPolicy,
		MemoryPolicy,
		InstancesPolicy,
		HealthCheckTimeoutPolicy,
		PortsHealthCheckPolicy,
		SSHPolicy,
		BuildpackPolicy,
		DockerImagePolicy,
		LegacyPortsPolicy,
		LegacyTransitionPolicy,
	}
}

func violation(policy, format string, args ...interface{}) []Violation {
	return []Violation{{Policy: policy, Message: fmt.Sprintf(format, args...)}}
}

// NamePolicy requires a name and rejects a name already used by another
// process in the same space.
func NamePolicy(in Input) []Violation {
	if in.Process.Name == "" {
		return violation(NameMissing, "process name must be present")
	}
	for _, name := range in.NamesInSpace {
		if name == in.Process.Name {
			return violation(NameTaken, "name %q is already taken in space %s", in.Process.Name, in.Process.SpaceGUID)
		}
	}
	return nil
}

// ProcessTypePolicy enforces per-(space, app) uniqueness of the process type,
// case-insensitively.
func ProcessTypePolicy(in Input) []Violation {
	for _, sibling := range in.Siblings {
		if sibling.GUID == in.Process.GUID {
			continue
		}
		if strings.EqualFold(sibling.Type, in.Process.Type) {
			return violation(DuplicateProcessType, "process type %q already exists for this app", in.Process.Type)
		}
	}
	return nil
}

// DiskQuotaPolicy bounds the per-instance disk quota.
func DiskQuotaPolicy(in Input) []Violation {
	var out []Violation
	if in.Defaults.MinDiskQuotaMB > 0 && in.Process.DiskQuotaMB < in.Defaults.MinDiskQuotaMB {
		out = append(out, violation(DiskQuotaBelowMinimum, "disk quota %dMB is below the %dMB minimum", in.Process.DiskQuotaMB, in.Defaults.MinDiskQuotaMB)...)
	}
	if in.Defaults.MaxDiskQuotaMB > 0 && in.Process.DiskQuotaMB > in.Defaults.MaxDiskQuotaMB {
		out = append(out, violation(DiskQuotaExceedsMaximum, "disk quota %dMB exceeds the %dMB maximum", in.Process.DiskQuotaMB, in.Defaults.MaxDiskQuotaMB)...)
	}
	return out
}

// MemoryPolicy checks the platform minimum, per-instance quota limits, and
// total memory against the space and organization quotas. Quota consumption
// only counts for a desired-STARTED process.
func MemoryPolicy(in Input) []Violation {
	var out []Violation
	if in.Defaults.MinMemoryMB > 0 && in.Process.MemoryMB < in.Defaults.MinMemoryMB {
		out = append(out, violation(MemoryBelowMinimum, "memory %dMB is below the %dMB minimum", in.Process.MemoryMB, in.Defaults.MinMemoryMB)...)
	}

	out = append(out, instanceMemoryCheck(in.Process, in.SpaceQuota, "space")...)
	out = append(out, instanceMemoryCheck(in.Process, in.OrgQuota, "organization")...)

	if in.Process.DesiredState != app.DesiredStarted {
		return out
	}
	requested := in.Process.MemoryMB * in.Process.Instances
	out = append(out, totalMemoryCheck(requested, in.SpaceQuota, in.SpaceUsage, "space")...)
	out = append(out, totalMemoryCheck(requested, in.OrgQuota, in.OrgUsage, "organization")...)
	return out
}

func instanceMemoryCheck(p *app.Process, quota *app.QuotaDefinition, scope string) []Violation {
	if quota == nil || quota.InstanceMemoryLimitMB == app.QuotaUnlimited {
		return nil
	}
	if p.MemoryMB > quota.InstanceMemoryLimitMB {
		return violation(InstanceMemoryLimitExceeded, "memory %dMB exceeds the %s per-instance limit of %dMB", p.MemoryMB, scope, quota.InstanceMemoryLimitMB)
	}
	return nil
}

func totalMemoryCheck(requested int, quota *app.QuotaDefinition, usage app.QuotaUsage, scope string) []Violation {
	if quota == nil || quota.MemoryLimitMB == app.QuotaUnlimited {
		return nil
	}
	if usage.MemoryInUseMB+requested > quota.MemoryLimitMB {
		return violation(QuotaExceeded, "%s memory quota of %dMB exceeded: %dMB in use, %dMB requested", scope, quota.MemoryLimitMB, usage.MemoryInUseMB, requested)
	}
	return nil
}

// InstancesPolicy rejects negative instance counts and enforces the space and
// organization app-instance quotas for a desired-STARTED process.
func InstancesPolicy(in Input) []Violation {
	if in.Process.Instances < 0 {
		return violation(InstancesNegative, "instance count must not be negative")
	}
	if in.Process.DesiredState != app.DesiredStarted {
		return nil
	}
	var out []Violation
	out = append(out, instanceLimitCheck(in.Process, in.SpaceQuota, in.SpaceUsage, "space")...)
	out = append(out, instanceLimitCheck(in.Process, in.OrgQuota, in.OrgUsage, "organization")...)
	return out
}

func instanceLimitCheck(p *app.Process, quota *app.QuotaDefinition, usage app.QuotaUsage, scope string) []Violation {
	if quota == nil || quota.AppInstanceLimit == app.QuotaUnlimited {
		return nil
	}
	if usage.InstancesInUse+p.Instances > quota.AppInstanceLimit {
		return violation(AppInstanceLimitExceeded, "%s app instance limit of %d exceeded", scope, quota.AppInstanceLimit)
	}
	return nil
}

// HealthCheckTimeoutPolicy bounds the health-check timeout.
func HealthCheckTimeoutPolicy(in Input) []Violation {
	if in.Process.HealthCheckTimeout < 0 {
		return violation(HealthCheckTimeoutExceeded, "health check timeout must not be negative")
	}
	if in.Defaults.MaxHealthCheckTimeout > 0 && in.Process.HealthCheckTimeout > in.Defaults.MaxHealthCheckTimeout {
		return violation(HealthCheckTimeoutExceeded, "health check timeout %ds exceeds the %ds maximum", in.Process.HealthCheckTimeout, in.Defaults.MaxHealthCheckTimeout)
	}
	return nil
}

// PortsHealthCheckPolicy requires a non-empty port list for a port-type health
// check. Next-gen only: the legacy backend has no per-process port concept, and
// a migration onto it legitimately clears the list.
func PortsHealthCheckPolicy(in Input) []Violation {
	if in.Process.Backend == app.BackendLegacy {
		return nil
	}
	if in.Process.HealthCheckType == app.HealthCheckPort && len(in.Process.Ports) == 0 {
		return violation(PortsEmptyForPortHealthcheck, "health check type %q requires at least one port", app.HealthCheckPort)
	}
	return nil
}

// SSHPolicy rejects enabling SSH when the platform or the owning space
// disallows it.
func SSHPolicy(in Input) []Violation {
	if !in.Process.EnableSSH {
		return nil
	}
	if !in.Defaults.AllowSSH {
		return violation(SSHNotAllowed, "ssh is disabled on this platform")
	}
	if in.Space != nil && !in.Space.AllowSSH {
		return violation(SSHNotAllowed, "ssh is disabled in space %s", in.Process.SpaceGUID)
	}
	return nil
}

// BuildpackPolicy rejects unresolvable buildpacks and custom buildpacks when
// the platform disallows them.
func BuildpackPolicy(in Input) []Violation {
	var out []Violation
	if !in.Buildpack.Valid {
		out = append(out, violation(BuildpackInvalid, "buildpack %q could not be resolved", in.Process.Buildpack)...)
	}
	if in.Buildpack.IsCustom() && !in.Defaults.CustomBuildpacksEnabled {
		out = append(out, violation(CustomBuildpacksDisabled, "custom buildpacks are disabled on this platform")...)
	}
	return out
}

// DockerImagePolicy checks docker image references for well-formedness.
func DockerImagePolicy(in Input) []Violation {
	if !in.Process.IsDocker() {
		return nil
	}
	if _, err := reference.ParseNormalizedNamed(in.Process.DockerImage); err != nil {
		return violation(DockerImageInvalid, "docker image %q is malformed: %s", in.Process.DockerImage, err)
	}
	return nil
}

// LegacyPortsPolicy rejects user-specified ports on the legacy backend, which
// has no per-process port concept.
func LegacyPortsPolicy(in Input) []Violation {
	if in.Process.Backend != app.BackendLegacy {
		return nil
	}
	if in.Changeset != nil && in.Changeset.EditsPorts() && len(*in.Changeset.Ports) > 0 {
		return violation(PortsNotSupportedOnLegacy, "ports cannot be specified on the legacy backend")
	}
	return nil
}

// LegacyTransitionPolicy refuses a next-gen to legacy migration that would
// leave more than one route mapping's port ambiguous. The operator resolves
// the ambiguity explicitly; it is never silently collapsed.
func LegacyTransitionPolicy(in Input) []Violation {
	if in.Previous == nil || in.Previous.Backend != app.BackendNextGen || in.Process.Backend != app.BackendLegacy {
		return nil
	}
	mapped := 0
	for _, m := range in.Previous.RouteMappings {
		if m.BoundPort != nil {
			mapped++
		}
	}
	if mapped > 1 {
		return violation(MultiplePortsMappedToLegacy, "%d route mappings bind ports %v; unmap before migrating to the legacy backend", mapped, in.Previous.MappedPorts())
	}
	return nil
}
