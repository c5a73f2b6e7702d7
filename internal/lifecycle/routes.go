package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/metrics"
	"github.com/halyard-cloud/halyard/internal/reconcile"
	"github.com/halyard-cloud/halyard/internal/routes"
)

// RouteEditor batches route attach/detach calls inside one transaction. The
// routes-changed flag is transaction-scoped: however many edits happen, the
// downstream signal fires exactly once after commit, then the flag is gone
// with the transaction.
type RouteEditor struct {
	org           *app.Organization
	p             *app.Process
	routesChanged bool
}

// Attach binds route to the process, optionally on a specific port.
func (e *RouteEditor) Attach(route app.Route, boundPort *int) (*app.RouteMapping, error) {
	if err := routes.ValidateBinding(e.p, e.org, route); err != nil {
		return nil, err
	}
	if boundPort != nil {
		if e.p.Backend == app.BackendLegacy {
			return nil, &routes.InvalidRouteRelationError{
				ProcessGUID: e.p.GUID,
				RouteGUID:   route.GUID,
				Reason:      "bound ports require the next-gen backend",
			}
		}
		if !slices.Contains(e.p.Ports, *boundPort) {
			return nil, &routes.InvalidRouteRelationError{
				ProcessGUID: e.p.GUID,
				RouteGUID:   route.GUID,
				Reason:      fmt.Sprintf("port %d is not one of the process's ports", *boundPort),
			}
		}
	}
	m := &app.RouteMapping{
		GUID:      uuid.New().String(),
		RouteGUID: route.GUID,
		BoundPort: boundPort,
	}
	e.p.RouteMappings = append(e.p.RouteMappings, m)
	e.routesChanged = true
	return m, nil
}

// Detach removes every mapping to the given route. Structurally it always
// succeeds; detaching an unmapped route is a no-op.
func (e *RouteEditor) Detach(routeGUID string) {
	kept := e.p.RouteMappings[:0]
	for _, m := range e.p.RouteMappings {
		if m.RouteGUID == routeGUID {
			e.routesChanged = true
			continue
		}
		kept = append(kept, m)
	}
	e.p.RouteMappings = kept
}

// EditRoutes runs fn against a route editor inside one transaction. On the
// next-gen backend a change defers to a single post-commit routes-changed
// notification plus a durable timestamp bump; on the legacy backend it
// instead forces a fresh version immediately, since that backend has no
// separate routes-changed channel.
func (o *Orchestrator) EditRoutes(ctx context.Context, guid string, fn func(e *RouteEditor) error) (*app.Process, error) {
	var result *app.Process
	err := o.store.Mutate(ctx, func(tx Tx) error {
		before, err := tx.Get(guid)
		if err != nil {
			return err
		}
		p := before.Clone()

		pctx, err := o.resolver.Resolve(ctx, p)
		if err != nil {
			return fmt.Errorf("resolving policy context for process %s: %w", guid, err)
		}

		editor := &RouteEditor{org: pctx.Organization, p: p}
		if err := fn(editor); err != nil {
			return err
		}
		result = p
		if !editor.routesChanged {
			return nil
		}

		if p.Backend == app.BackendLegacy {
			p.Version = reconcile.NewVersion()
			metrics.CountVersionBump()
		}
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Save(p); err != nil {
			return err
		}

		snapshot := p.Clone()
		tx.AfterCommit(func() {
			if snapshot.Backend == app.BackendNextGen {
				o.notifier.RoutesChanged(snapshot)
			} else {
				o.notifier.Updated(snapshot)
			}
		})
		return nil
	})
	if err != nil {
		metrics.CountMutation("edit_routes", "error")
		return nil, err
	}
	metrics.CountMutation("edit_routes", "ok")
	return result, nil
}

// AttachRoute binds a single route in its own transaction.
func (o *Orchestrator) AttachRoute(ctx context.Context, guid string, route app.Route, boundPort *int) (*app.Process, error) {
	return o.EditRoutes(ctx, guid, func(e *RouteEditor) error {
		_, err := e.Attach(route, boundPort)
		return err
	})
}

// DetachRoute unbinds a single route in its own transaction.
func (o *Orchestrator) DetachRoute(ctx context.Context, guid string, routeGUID string) (*app.Process, error) {
	return o.EditRoutes(ctx, guid, func(e *RouteEditor) error {
		e.Detach(routeGUID)
		return nil
	})
}

// HandleRouteDestroyed reacts to a route being destroyed by its external
// owner: mappings to it are nullified, not deleted.
func (o *Orchestrator) HandleRouteDestroyed(ctx context.Context, routeGUID string) error {
	return o.store.Mutate(ctx, func(tx Tx) error {
		return tx.NullifyRouteReferences(routeGUID)
	})
}
