package app

// PlatformDefaults carries platform-wide configuration applied to processes at
// creation and validation time. It is passed explicitly into every entry point
// rather than read from ambient state.
type PlatformDefaults struct {
	Backend Backend `json:"backend" mapstructure:"backend"`

	MemoryMB    int `json:"memory_mb" mapstructure:"memory_mb"`
	DiskQuotaMB int `json:"disk_quota_mb" mapstructure:"disk_quota_mb"`
	Instances   int `json:"instances" mapstructure:"instances"`

	MinMemoryMB    int `json:"min_memory_mb" mapstructure:"min_memory_mb"`
	MinDiskQuotaMB int `json:"min_disk_quota_mb" mapstructure:"min_disk_quota_mb"`
	MaxDiskQuotaMB int `json:"max_disk_quota_mb" mapstructure:"max_disk_quota_mb"`

	MaxHealthCheckTimeout int `json:"max_health_check_timeout" mapstructure:"max_health_check_timeout"`

	AllowSSH                bool `json:"allow_ssh" mapstructure:"allow_ssh"`
	CustomBuildpacksEnabled bool `json:"custom_buildpacks_enabled" mapstructure:"custom_buildpacks_enabled"`

	StackName string `json:"stack_name" mapstructure:"stack_name"`
}
