package lifecycle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/lifecycle"
	"github.com/halyard-cloud/halyard/internal/routes"
)

func sharedRoute(guid string) app.Route {
	return app.Route{
		GUID:      guid,
		SpaceGUID: "space-1",
		Host:      "web-app",
		Domain:    app.Domain{GUID: "domain-1", Name: "apps.example.com", Shared: true},
	}
}

func TestAttachRoute(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, notifier, _ := newTestOrchestrator(t, store)
	notifier.EXPECT().RoutesChanged(gomock.Any())

	p, err := o.AttachRoute(context.Background(), "proc-1", sharedRoute("route-1"), nil)
	require.NoError(t, err)

	require.Len(t, p.RouteMappings, 1)
	assert.Equal(t, "route-1", p.RouteMappings[0].RouteGUID)
	assert.Nil(t, p.RouteMappings[0].BoundPort)
	// A route edit on the next-gen backend never touches the version.
	assert.Equal(t, "version-before", p.Version)

	persisted := store.committed("proc-1")
	require.Len(t, persisted.RouteMappings, 1)
}

func TestAttachRouteWithBoundPort(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, notifier, _ := newTestOrchestrator(t, store)
	notifier.EXPECT().RoutesChanged(gomock.Any())

	p, err := o.AttachRoute(context.Background(), "proc-1", sharedRoute("route-1"), intPtr(app.DefaultPort))
	require.NoError(t, err)

	require.Len(t, p.RouteMappings, 1)
	require.NotNil(t, p.RouteMappings[0].BoundPort)
	assert.Equal(t, app.DefaultPort, *p.RouteMappings[0].BoundPort)
}

func TestAttachRouteRejectsUnknownPort(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, _, _ := newTestOrchestrator(t, store)

	_, err := o.AttachRoute(context.Background(), "proc-1", sharedRoute("route-1"), intPtr(9999))
	require.Error(t, err)

	var relErr *routes.InvalidRouteRelationError
	require.True(t, errors.As(err, &relErr))
	assert.Empty(t, store.committed("proc-1").RouteMappings)
}

func TestAttachRouteRejectsForeignSpace(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, _, _ := newTestOrchestrator(t, store)

	route := sharedRoute("route-1")
	route.SpaceGUID = "space-2"

	_, err := o.AttachRoute(context.Background(), "proc-1", route, nil)
	require.Error(t, err)

	var relErr *routes.InvalidRouteRelationError
	require.True(t, errors.As(err, &relErr))
	assert.Empty(t, store.committed("proc-1").RouteMappings)
}

func TestAttachRouteRejectsBoundPortOnLegacy(t *testing.T) {
	store := newMemStore()
	seed := seedProcess(store)
	seed.Backend = app.BackendLegacy
	seed.Ports = []int{}
	store.seed(seed)
	o, _, _ := newTestOrchestrator(t, store)

	_, err := o.AttachRoute(context.Background(), "proc-1", sharedRoute("route-1"), intPtr(app.DefaultPort))
	require.Error(t, err)

	var relErr *routes.InvalidRouteRelationError
	require.True(t, errors.As(err, &relErr))
	assert.Contains(t, relErr.Reason, "next-gen")
}

func TestAttachRouteOnLegacyBumpsVersion(t *testing.T) {
	store := newMemStore()
	seed := seedProcess(store)
	seed.Backend = app.BackendLegacy
	seed.Ports = []int{}
	store.seed(seed)
	o, notifier, _ := newTestOrchestrator(t, store)
	// The legacy backend has no routes-changed channel; the version bump plus
	// an updated event carries the signal instead.
	notifier.EXPECT().Updated(gomock.Any())

	p, err := o.AttachRoute(context.Background(), "proc-1", sharedRoute("route-1"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, "version-before", p.Version)
}

func TestEditRoutesCoalescesNotifications(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, notifier, _ := newTestOrchestrator(t, store)
	// Three edits in one transaction, exactly one signal.
	notifier.EXPECT().RoutesChanged(gomock.Any()).Times(1)

	p, err := o.EditRoutes(context.Background(), "proc-1", func(e *lifecycle.RouteEditor) error {
		if _, err := e.Attach(sharedRoute("route-1"), nil); err != nil {
			return err
		}
		if _, err := e.Attach(sharedRoute("route-2"), nil); err != nil {
			return err
		}
		e.Detach("route-1")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, p.RouteMappings, 1)
	assert.Equal(t, "route-2", p.RouteMappings[0].RouteGUID)
}

func TestEditRoutesFailureAbortsWholeBatch(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, _, _ := newTestOrchestrator(t, store)

	route := sharedRoute("route-2")
	route.SpaceGUID = "space-2"

	_, err := o.EditRoutes(context.Background(), "proc-1", func(e *lifecycle.RouteEditor) error {
		if _, err := e.Attach(sharedRoute("route-1"), nil); err != nil {
			return err
		}
		_, err := e.Attach(route, nil)
		return err
	})
	require.Error(t, err)

	// The first attach is rolled back with the rest of the transaction.
	assert.Empty(t, store.committed("proc-1").RouteMappings)
}

func TestDetachRoute(t *testing.T) {
	store := newMemStore()
	seed := seedProcess(store)
	seed.RouteMappings = []*app.RouteMapping{
		{GUID: "rm-1", RouteGUID: "route-1", BoundPort: intPtr(app.DefaultPort)},
	}
	store.seed(seed)
	o, notifier, _ := newTestOrchestrator(t, store)
	notifier.EXPECT().RoutesChanged(gomock.Any())

	p, err := o.DetachRoute(context.Background(), "proc-1", "route-1")
	require.NoError(t, err)
	assert.Empty(t, p.RouteMappings)
	assert.Empty(t, store.committed("proc-1").RouteMappings)
}

func TestDetachUnmappedRouteIsQuiet(t *testing.T) {
	store := newMemStore()
	seedProcess(store)
	o, _, _ := newTestOrchestrator(t, store)

	// No mapping, no change, no notification.
	p, err := o.DetachRoute(context.Background(), "proc-1", "route-1")
	require.NoError(t, err)
	assert.Empty(t, p.RouteMappings)
}

func TestHandleRouteDestroyed(t *testing.T) {
	store := newMemStore()
	seed := seedProcess(store)
	seed.RouteMappings = []*app.RouteMapping{
		{GUID: "rm-1", RouteGUID: "route-1", BoundPort: intPtr(app.DefaultPort)},
		{GUID: "rm-2", RouteGUID: "route-2"},
	}
	store.seed(seed)
	o, _, _ := newTestOrchestrator(t, store)

	require.NoError(t, o.HandleRouteDestroyed(context.Background(), "route-1"))

	persisted := store.committed("proc-1")
	require.Len(t, persisted.RouteMappings, 2)
	// The mapping survives with its route reference cleared.
	assert.Empty(t, persisted.RouteMappings[0].RouteGUID)
	require.NotNil(t, persisted.RouteMappings[0].BoundPort)
	assert.Equal(t, "route-2", persisted.RouteMappings[1].RouteGUID)
}
