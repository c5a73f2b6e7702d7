// Package store persists process records with gorm. Every mutation runs in a
// single transaction; effects that must wait for durability register
// post-commit hooks that fire only after the transaction commits.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/lifecycle"
)

// ErrNotFound is returned when no process exists for a guid.
var ErrNotFound = errors.New("process not found")

var (
	_ lifecycle.Store = (*Store)(nil)
	_ lifecycle.Tx    = (*Tx)(nil)
)

type processRecord struct {
	GUID      string `gorm:"primaryKey"`
	Name      string
	Type      string
	SpaceGUID string `gorm:"index"`

	DesiredState string

	PackageState             string
	StagingFailedReason      string
	StagingFailedDescription string
	PackagePendingSince      *time.Time

	Version string
	Backend string
	Ports   []int `gorm:"serializer:json"`

	MemoryMB           int
	DiskQuotaMB        int
	Instances          int
	EnableSSH          bool
	HealthCheckType    string
	HealthCheckTimeout int

	PackageHash string
	DropletGUID string

	Command     string
	DockerImage string
	Buildpack   string
	StackName   string

	RouteMappings []routeMappingRecord `gorm:"foreignKey:ProcessGUID;references:GUID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (processRecord) TableName() string { return "processes" }

type routeMappingRecord struct {
	GUID        string `gorm:"primaryKey"`
	ProcessGUID string `gorm:"index"`
	RouteGUID   string `gorm:"index"`
	BoundPort   *int
	// Position preserves the mapping order of the owning process.
	Position int
}

func (routeMappingRecord) TableName() string { return "route_mappings" }

// Store is the durable home of process records.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) a sqlite-backed store at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return New(db)
}

// New wraps an existing gorm connection, migrating the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&processRecord{}, &routeMappingRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Tx is one mutation's view of the store. All reads and writes inside
// Store.Mutate go through it.
type Tx struct {
	db         *gorm.DB
	postCommit []func()
}

// AfterCommit registers fn to run once the enclosing transaction has
// committed. Hooks never run on rollback.
func (t *Tx) AfterCommit(fn func()) {
	t.postCommit = append(t.postCommit, fn)
}

// Mutate runs fn inside a transaction. Any error aborts the transaction,
// discards all intermediate state, and drops the queued post-commit hooks.
func (s *Store) Mutate(ctx context.Context, fn func(tx lifecycle.Tx) error) error {
	var hooks []func()
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx := &Tx{db: db}
		if err := fn(tx); err != nil {
			return err
		}
		hooks = tx.postCommit
		return nil
	})
	if err != nil {
		return err
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// Get loads a process record.
func (t *Tx) Get(guid string) (*app.Process, error) {
	return t.get(guid, false)
}

// GetForUpdate loads a process record under a row lock, blocking concurrent
// mutators until the transaction ends.
func (t *Tx) GetForUpdate(guid string) (*app.Process, error) {
	return t.get(guid, true)
}

func (t *Tx) get(guid string, lock bool) (*app.Process, error) {
	db := t.db
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rec processRecord
	err := db.Preload("RouteMappings", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&rec, "guid = ?", guid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(&rec), nil
}

// Save upserts the process and replaces its owned route mappings.
func (t *Tx) Save(p *app.Process) error {
	rec := toRecord(p)
	if err := t.db.Where("process_guid = ?", p.GUID).Delete(&routeMappingRecord{}).Error; err != nil {
		return err
	}
	if err := t.db.Clauses(clause.OnConflict{UpdateAll: true}).Omit("RouteMappings").Save(&rec).Error; err != nil {
		return err
	}
	if len(rec.RouteMappings) > 0 {
		if err := t.db.Create(&rec.RouteMappings).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the process row and its owned route mappings.
func (t *Tx) Delete(p *app.Process) error {
	if err := t.db.Where("process_guid = ?", p.GUID).Delete(&routeMappingRecord{}).Error; err != nil {
		return err
	}
	return t.db.Delete(&processRecord{}, "guid = ?", p.GUID).Error
}

// NullifyRouteReferences clears the route reference on every mapping bound to
// routeGUID. Mappings are owned by their process, so the rows stay.
func (t *Tx) NullifyRouteReferences(routeGUID string) error {
	return t.db.Model(&routeMappingRecord{}).
		Where("route_guid = ?", routeGUID).
		Update("route_guid", "").Error
}

func toRecord(p *app.Process) processRecord {
	rec := processRecord{
		GUID:                     p.GUID,
		Name:                     p.Name,
		Type:                     p.Type,
		SpaceGUID:                p.SpaceGUID,
		DesiredState:             string(p.DesiredState),
		PackageState:             string(p.PackageState),
		StagingFailedReason:      string(p.StagingFailedReason),
		StagingFailedDescription: p.StagingFailedDescription,
		PackagePendingSince:      p.PackagePendingSince,
		Version:                  p.Version,
		Backend:                  string(p.Backend),
		Ports:                    p.Ports,
		MemoryMB:                 p.MemoryMB,
		DiskQuotaMB:              p.DiskQuotaMB,
		Instances:                p.Instances,
		EnableSSH:                p.EnableSSH,
		HealthCheckType:          string(p.HealthCheckType),
		HealthCheckTimeout:       p.HealthCheckTimeout,
		PackageHash:              p.PackageHash,
		DropletGUID:              p.DropletGUID,
		Command:                  p.Command,
		DockerImage:              p.DockerImage,
		Buildpack:                p.Buildpack,
		StackName:                p.StackName,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
	for i, m := range p.RouteMappings {
		rec.RouteMappings = append(rec.RouteMappings, routeMappingRecord{
			GUID:        m.GUID,
			ProcessGUID: p.GUID,
			RouteGUID:   m.RouteGUID,
			BoundPort:   m.BoundPort,
			Position:    i,
		})
	}
	return rec
}

func fromRecord(rec *processRecord) *app.Process {
	p := &app.Process{
		GUID:                     rec.GUID,
		Name:                     rec.Name,
		Type:                     rec.Type,
		SpaceGUID:                rec.SpaceGUID,
		DesiredState:             app.DesiredState(rec.DesiredState),
		PackageState:             app.PackageState(rec.PackageState),
		StagingFailedReason:      app.StagingFailedReason(rec.StagingFailedReason),
		StagingFailedDescription: rec.StagingFailedDescription,
		PackagePendingSince:      rec.PackagePendingSince,
		Version:                  rec.Version,
		Backend:                  app.Backend(rec.Backend),
		Ports:                    rec.Ports,
		MemoryMB:                 rec.MemoryMB,
		DiskQuotaMB:              rec.DiskQuotaMB,
		Instances:                rec.Instances,
		EnableSSH:                rec.EnableSSH,
		HealthCheckType:          app.HealthCheckType(rec.HealthCheckType),
		HealthCheckTimeout:       rec.HealthCheckTimeout,
		PackageHash:              rec.PackageHash,
		DropletGUID:              rec.DropletGUID,
		Command:                  rec.Command,
		DockerImage:              rec.DockerImage,
		Buildpack:                rec.Buildpack,
		StackName:                rec.StackName,
		RouteMappings:            make([]*app.RouteMapping, 0, len(rec.RouteMappings)),
		CreatedAt:                rec.CreatedAt,
		UpdatedAt:                rec.UpdatedAt,
	}
	if p.Ports == nil {
		p.Ports = []int{}
	}
	for _, m := range rec.RouteMappings {
		p.RouteMappings = append(p.RouteMappings, &app.RouteMapping{
			GUID:      m.GUID,
			RouteGUID: m.RouteGUID,
			BoundPort: m.BoundPort,
		})
	}
	return p
}
