package app

// ParentApp is the companion record a process may hang off. Some fields of a
// process are resolved against it rather than stored on the process row.
type ParentApp struct {
	GUID      string `json:"guid"`
	Name      string `json:"name"`
	Buildpack string `json:"buildpack,omitempty"`
	StackName string `json:"stack_name,omitempty"`
}

// EffectiveConfig is the resolved view of fields that can come from the
// process itself, its parent app, or platform defaults. The stored fields and
// this derived view are kept as distinct types on purpose: accessors resolve,
// storage stays dumb.
type EffectiveConfig struct {
	Name      string
	Buildpack string
	StackName string
}

// Effective resolves the parent-vs-own fields for a process. Own values win,
// then the parent's, then platform defaults (for the stack).
func Effective(p *Process, parent *ParentApp, defaults PlatformDefaults) EffectiveConfig {
	cfg := EffectiveConfig{
		Name:      p.Name,
		Buildpack: p.Buildpack,
		StackName: p.StackName,
	}
	if parent != nil {
		if cfg.Name == "" {
			cfg.Name = parent.Name
		}
		if cfg.Buildpack == "" {
			cfg.Buildpack = parent.Buildpack
		}
		if cfg.StackName == "" {
			cfg.StackName = parent.StackName
		}
	}
	if cfg.StackName == "" {
		cfg.StackName = defaults.StackName
	}
	return cfg
}
