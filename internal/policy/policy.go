package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// Violation is one named policy failure. The name is stable and machine
// readable so callers can map it to a user-facing message.
type Violation struct {
	Policy  string `json:"policy"`
	Message string `json:"message"`
}

// ViolationSet aggregates every violation found in one evaluation. A non-empty
// set is the caller-visible validation error: it is never retried, the caller
// must resubmit a corrected mutation.
type ViolationSet []Violation

func (vs ViolationSet) Error() string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Policy, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether the set contains a violation of the named policy.
func (vs ViolationSet) Has(policy string) bool {
	for _, v := range vs {
		if v.Policy == policy {
			return true
		}
	}
	return false
}

// Policies returns the distinct policy names present in the set.
func (vs ViolationSet) Policies() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(vs))
	for _, v := range vs {
		if !seen[v.Policy] {
			seen[v.Policy] = true
			names = append(names, v.Policy)
		}
	}
	return names
}

// Context is everything the resolver collaborator looks up around a process.
// All of it is read-only.
type Context struct {
	Space        *app.Space
	Organization *app.Organization

	SpaceQuota *app.QuotaDefinition
	OrgQuota   *app.QuotaDefinition
	SpaceUsage app.QuotaUsage
	OrgUsage   app.QuotaUsage

	// Siblings are the other processes sharing the process's parent app and
	// space; NamesInSpace are the names of all other processes in the space.
	Siblings     []*app.Process
	NamesInSpace []string

	// AttachedRoutes are the resolved routes currently mapped to the
	// process, used to gate re-homing into another space.
	AttachedRoutes []app.Route
}

// Resolver looks up the owning space, organization and quota state for a
// process. Implemented outside this subsystem.
type Resolver interface {
	Resolve(ctx context.Context, p *app.Process) (Context, error)
}

// Input is the full read-only view a policy evaluates over.
type Input struct {
	// Process is the post-apply, pre-commit record under validation.
	Process *app.Process
	// Previous is the record before the mutation was applied; nil on create.
	Previous *app.Process
	// Changeset is the requested mutation; nil on create.
	Changeset *app.Changeset

	Context

	Buildpack app.BuildpackRef
	Defaults  app.PlatformDefaults
}

// Policy is a pure predicate over the input. It returns zero or more named
// violations and must not mutate anything it is given.
type Policy func(in Input) []Violation

// Engine runs the full policy list unconditionally so callers see every
// simultaneous violation, not just the first.
type Engine struct {
	policies []Policy
}

func NewEngine(policies ...Policy) *Engine {
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}
	return &Engine{policies: policies}
}

// Evaluate runs every policy and aggregates the violations. An empty set
// means the mutation passes validation.
func (e *Engine) Evaluate(in Input) ViolationSet {
	var out ViolationSet
	for _, p := range e.policies {
		out = append(out, p(in)...)
	}
	return out
}
