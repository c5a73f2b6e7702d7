package app

// BuildpackKind tags the variant of a resolved buildpack reference.
type BuildpackKind string

const (
	BuildpackAdmin  BuildpackKind = "admin"
	BuildpackCustom BuildpackKind = "custom"
	BuildpackAuto   BuildpackKind = "auto"
)

// BuildpackRef is the resolved buildpack for a process: an admin-registered
// buildpack, a custom URL, or auto-detection. The zero value is the auto
// variant.
type BuildpackRef struct {
	Kind BuildpackKind `json:"kind"`
	Name string        `json:"name,omitempty"`
	URL  string        `json:"url,omitempty"`
	// Valid is false when the resolver could not match the requested
	// buildpack to anything usable; the policy engine reports it.
	Valid bool `json:"valid"`
}

func (b BuildpackRef) IsCustom() bool {
	return b.Kind == BuildpackCustom
}

func (b BuildpackRef) ResolvedURL() string {
	if b.Kind == BuildpackCustom {
		return b.URL
	}
	return ""
}

func (b BuildpackRef) DisplayName() string {
	switch b.Kind {
	case BuildpackAdmin:
		return b.Name
	case BuildpackCustom:
		return b.URL
	}
	return ""
}

func AutoBuildpack() BuildpackRef {
	return BuildpackRef{Kind: BuildpackAuto, Valid: true}
}

func AdminBuildpack(name string) BuildpackRef {
	return BuildpackRef{Kind: BuildpackAdmin, Name: name, Valid: true}
}

func CustomBuildpack(url string) BuildpackRef {
	return BuildpackRef{Kind: BuildpackCustom, URL: url, Valid: true}
}
