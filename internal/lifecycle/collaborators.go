package lifecycle

import (
	"context"

	"github.com/halyard-cloud/halyard/core/state/app"
)

// Tx is one mutation's transactional view of the process store. Everything
// written through it becomes durable atomically, or not at all.
type Tx interface {
	Get(guid string) (*app.Process, error)
	// GetForUpdate takes a row lock so a concurrent mutation cannot
	// resurrect a process mid-deletion.
	GetForUpdate(guid string) (*app.Process, error)
	Save(p *app.Process) error
	Delete(p *app.Process) error
	NullifyRouteReferences(routeGUID string) error
	// AfterCommit queues fn to run once the transaction commits; fn is
	// dropped on rollback.
	AfterCommit(fn func())
}

// Store runs one mutation per transaction. An error from fn aborts the
// transaction and leaves no partial state.
type Store interface {
	Mutate(ctx context.Context, fn func(tx Tx) error) error
}

// DropletRef identifies a successfully staged artifact.
type DropletRef struct {
	GUID        string
	PackageHash string
}

// BuildpackResolver resolves the effective buildpack for a process against
// the platform registry.
type BuildpackResolver interface {
	Resolve(ctx context.Context, p *app.Process) (app.BuildpackRef, error)
}

// ArtifactStore looks up the most recent staged droplet for a process.
type ArtifactStore interface {
	CurrentDroplet(ctx context.Context, p *app.Process) (DropletRef, bool, error)
}

// Notifier tells execution infrastructure to reconverge. Fire-and-forget:
// implementations must not block on delivery and failures are theirs to log.
type Notifier interface {
	Updated(p *app.Process)
	Deleted(p *app.Process)
	RoutesChanged(p *app.Process)
}

// UsageEventKind labels a billing/usage event.
type UsageEventKind string

const (
	UsageCreated UsageEventKind = "created"
	UsageUpdated UsageEventKind = "updated"
	UsageDeleted UsageEventKind = "deleted"
)

// UsageEventSink records usage events. Called only after the mutation is
// durably committed.
type UsageEventSink interface {
	RecordFromProcess(p *app.Process, kind UsageEventKind)
}

// AuditEntry describes one committed mutation as a JSON patch between the
// before and after serialized records.
type AuditEntry struct {
	ProcessGUID string `json:"process_guid"`
	Operation   string `json:"operation"`
	Diff        []byte `json:"diff,omitempty"`
}

// AuditSink records audit entries post-commit.
type AuditSink interface {
	RecordAudit(entry AuditEntry)
}

// ServiceBindingTerminator severs all service bindings for a process as part
// of destroy. Any returned error aborts the destroy transaction.
type ServiceBindingTerminator interface {
	DeleteAll(ctx context.Context, p *app.Process) []error
}
