package app

// Read-only views of the entities surrounding a process. These are resolved by
// an external collaborator and handed to the policy engine; the lifecycle core
// never writes them.

type Space struct {
	GUID             string `json:"guid"`
	Name             string `json:"name"`
	OrganizationGUID string `json:"organization_guid"`
	AllowSSH         bool   `json:"allow_ssh"`
}

type Organization struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// QuotaUnlimited marks a quota dimension with no limit.
const QuotaUnlimited = -1

// QuotaDefinition bounds resource consumption for a space or organization.
type QuotaDefinition struct {
	MemoryLimitMB         int `json:"memory_limit_mb"`
	InstanceMemoryLimitMB int `json:"instance_memory_limit_mb"`
	AppInstanceLimit      int `json:"app_instance_limit"`
}

// QuotaUsage is current consumption within the quota's scope, excluding the
// process under mutation.
type QuotaUsage struct {
	MemoryInUseMB  int `json:"memory_in_use_mb"`
	InstancesInUse int `json:"instances_in_use"`
}
