package lifecycle_test

import (
	"context"
	"errors"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/lifecycle"
	"github.com/halyard-cloud/halyard/internal/policy"
)

var errNotFound = errors.New("process not found")

// memStore is an in-memory stand-in for the sqlite store with the same
// transactional contract: writes stage inside the transaction and only land
// on commit, post-commit hooks run after that, and an error discards both.
type memStore struct {
	procs map[string]*app.Process
}

func newMemStore() *memStore {
	return &memStore{procs: make(map[string]*app.Process)}
}

func (s *memStore) seed(p *app.Process) {
	s.procs[p.GUID] = p.Clone()
}

func (s *memStore) committed(guid string) *app.Process {
	return s.procs[guid].Clone()
}

func (s *memStore) has(guid string) bool {
	_, ok := s.procs[guid]
	return ok
}

func (s *memStore) Mutate(_ context.Context, fn func(tx lifecycle.Tx) error) error {
	tx := &memTx{
		store:   s,
		staged:  make(map[string]*app.Process),
		deleted: make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for guid := range tx.deleted {
		delete(s.procs, guid)
	}
	for guid, p := range tx.staged {
		s.procs[guid] = p
	}
	for _, hook := range tx.hooks {
		hook()
	}
	return nil
}

type memTx struct {
	store   *memStore
	staged  map[string]*app.Process
	deleted map[string]bool
	hooks   []func()
}

func (t *memTx) Get(guid string) (*app.Process, error) {
	if t.deleted[guid] {
		return nil, errNotFound
	}
	if p, ok := t.staged[guid]; ok {
		return p.Clone(), nil
	}
	if p, ok := t.store.procs[guid]; ok {
		return p.Clone(), nil
	}
	return nil, errNotFound
}

func (t *memTx) GetForUpdate(guid string) (*app.Process, error) {
	return t.Get(guid)
}

func (t *memTx) Save(p *app.Process) error {
	delete(t.deleted, p.GUID)
	t.staged[p.GUID] = p.Clone()
	return nil
}

func (t *memTx) Delete(p *app.Process) error {
	delete(t.staged, p.GUID)
	t.deleted[p.GUID] = true
	return nil
}

func (t *memTx) NullifyRouteReferences(routeGUID string) error {
	for guid, p := range t.store.procs {
		if _, ok := t.staged[guid]; !ok && !t.deleted[guid] {
			t.staged[guid] = p.Clone()
		}
	}
	for _, p := range t.staged {
		for _, m := range p.RouteMappings {
			if m.RouteGUID == routeGUID {
				m.RouteGUID = ""
			}
		}
	}
	return nil
}

func (t *memTx) AfterCommit(fn func()) {
	t.hooks = append(t.hooks, fn)
}

// stubResolver hands back a fixed policy context.
type stubResolver struct {
	ctx policy.Context
	err error
}

func (r *stubResolver) Resolve(context.Context, *app.Process) (policy.Context, error) {
	return r.ctx, r.err
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		ctx: policy.Context{
			Space:        &app.Space{GUID: "space-1", OrganizationGUID: "org-1", AllowSSH: true},
			Organization: &app.Organization{GUID: "org-1", Name: "acme"},
		},
	}
}

func platformDefaults() app.PlatformDefaults {
	return app.PlatformDefaults{
		Backend:                 app.BackendNextGen,
		MemoryMB:                1024,
		DiskQuotaMB:             1024,
		Instances:               1,
		MinMemoryMB:             64,
		MinDiskQuotaMB:          1,
		MaxDiskQuotaMB:          2048,
		MaxHealthCheckTimeout:   180,
		AllowSSH:                true,
		CustomBuildpacksEnabled: true,
		StackName:               "cflinuxfs4",
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func statePtr(s app.DesiredState) *app.DesiredState { return &s }

func backendPtr(b app.Backend) *app.Backend { return &b }
