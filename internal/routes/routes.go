// Package routes gates route attach/detach and process re-homing against
// space, domain and backend compatibility rules.
package routes

import (
	"github.com/halyard-cloud/halyard/core/state/app"
)

// InvalidRouteRelationError is raised when a route cannot be bound to a
// process. It is a relation conflict, not a validation violation: surfaced
// directly, never aggregated, never retried.
type InvalidRouteRelationError struct {
	ProcessGUID string
	RouteGUID   string
	Reason      string
}

func (e *InvalidRouteRelationError) Error() string {
	return "invalid relation between process " + e.ProcessGUID + " and route " + e.RouteGUID + ": " + e.Reason
}

// ValidateBinding checks that route may be attached to p within org.
func ValidateBinding(p *app.Process, org *app.Organization, route app.Route) error {
	if route.SpaceGUID != p.SpaceGUID {
		return &InvalidRouteRelationError{
			ProcessGUID: p.GUID,
			RouteGUID:   route.GUID,
			Reason:      "route belongs to a different space",
		}
	}
	if !route.Domain.UsableBy(org.GUID) {
		return &InvalidRouteRelationError{
			ProcessGUID: p.GUID,
			RouteGUID:   route.GUID,
			Reason:      "domain " + route.Domain.Name + " is not usable by the process's organization",
		}
	}
	if route.RouteServiceURL != "" && p.Backend == app.BackendLegacy {
		return &InvalidRouteRelationError{
			ProcessGUID: p.GUID,
			RouteGUID:   route.GUID,
			Reason:      "route services require the next-gen backend",
		}
	}
	return nil
}

// ValidateRehoming checks a post-creation space move: every currently
// attached route must already belong to the target space.
func ValidateRehoming(p *app.Process, newSpaceGUID string, attached []app.Route) error {
	for _, route := range attached {
		if route.SpaceGUID != newSpaceGUID {
			return &InvalidRouteRelationError{
				ProcessGUID: p.GUID,
				RouteGUID:   route.GUID,
				Reason:      "route does not belong to the target space",
			}
		}
	}
	return nil
}
