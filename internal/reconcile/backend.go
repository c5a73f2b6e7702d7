package reconcile

import (
	"slices"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// Backend recomputes the port list and route-mapping bound ports when a
// mutation moves the process between backends, then applies per-backend port
// defaults. It runs after the changeset is applied and before validation, so
// a validation failure aborts the whole rewrite.
func Backend(before, p *app.Process, cs *app.Changeset) {
	switch {
	case cs != nil && cs.ChangesBackend(before) && before.Backend == app.BackendNextGen && p.Backend == app.BackendLegacy:
		// The legacy backend ignores explicit ports and has no per-route
		// port concept.
		p.Ports = []int{}
		for _, m := range p.RouteMappings {
			m.BoundPort = nil
		}

	case cs != nil && cs.ChangesBackend(before) && before.Backend == app.BackendLegacy && p.Backend == app.BackendNextGen:
		if !cs.EditsPorts() {
			// Leave unset; the per-backend default below fills it in.
			p.Ports = nil
		} else if len(*cs.Ports) == 1 {
			port := (*cs.Ports)[0]
			for _, m := range p.RouteMappings {
				boundPort := port
				m.BoundPort = &boundPort
			}
		}

	case cs != nil && cs.EditsPorts():
		propagateDefaultPort(before, p)
	}

	ApplyPortDefaults(p)
}

// propagateDefaultPort pins the implicit default port onto unannotated route
// mappings when a user replaces a still-default port list with an explicit
// one. Narrow on purpose: only when mappings exist and the process is not a
// docker-image process.
func propagateDefaultPort(before, p *app.Process) {
	if p.IsDocker() || len(p.RouteMappings) == 0 {
		return
	}
	if !slices.Equal(before.Ports, []int{app.DefaultPort}) {
		return
	}
	if slices.Equal(p.Ports, []int{app.DefaultPort}) {
		return
	}
	for _, m := range p.RouteMappings {
		if m.BoundPort == nil {
			port := app.DefaultPort
			m.BoundPort = &port
		}
	}
}

// ApplyPortDefaults establishes the invariant that ports are never nil
// internally: a next-gen process with no configured ports listens on the
// default port, a legacy process carries an empty list.
func ApplyPortDefaults(p *app.Process) {
	if p.Ports == nil {
		if p.Backend == app.BackendNextGen {
			p.Ports = []int{app.DefaultPort}
		} else {
			p.Ports = []int{}
		}
	}
}
