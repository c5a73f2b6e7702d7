package app

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/wI2L/jsondiff"
)

//go:embed migrations/*
var migrationsDir embed.FS

// RecordPatch is one operation of a record-schema migration.
type RecordPatch struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// Migration moves the serialized record schema one step forward (Up) or back
// (Down). Migrations are shipped as embedded JSON files, ordered by filename.
type Migration struct {
	Name string        `json:"-"`
	Up   []RecordPatch `json:"up"`
	Down []RecordPatch `json:"down"`
}

func loadMigrations() ([]*Migration, error) {
	entries, err := migrationsDir.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	migrations := make([]*Migration, 0, len(names))
	for _, name := range names {
		data, err := migrationsDir.ReadFile("migrations/" + name)
		if err != nil {
			return nil, err
		}
		var m Migration
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		m.Name = name
		migrations = append(migrations, &m)
	}
	return migrations, nil
}

func applyPatches(doc []byte, patches []RecordPatch) ([]byte, error) {
	raw, err := json.Marshal(patches)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, err
	}
	return patch.Apply(doc)
}

// ValidateMigrations applies every up migration to an empty document and
// checks the result equals the current record schema, then walks the down
// migrations back to an empty document.
func ValidateMigrations() error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	cur := []byte("{}")
	for _, m := range migrations {
		cur, err = applyPatches(cur, m.Up)
		if err != nil {
			return fmt.Errorf("up migration %s: %w", m.Name, err)
		}
	}

	if err := equalJSON(processSchemaRaw, string(cur)); err != nil {
		return err
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		cur, err = applyPatches(cur, m.Down)
		if err != nil {
			return fmt.Errorf("down migration %s: %w", m.Name, err)
		}
	}

	if string(cur) != "{}" {
		return fmt.Errorf("down migrations do not result in an empty document")
	}
	return nil
}

func equalJSON(expected, actual string) error {
	var expectedMap, actualMap map[string]interface{}
	if err := json.Unmarshal([]byte(expected), &expectedMap); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(actual), &actualMap); err != nil {
		return err
	}

	patch, err := jsondiff.Compare(expectedMap, actualMap)
	if err != nil {
		return err
	}
	if len(patch) > 0 {
		return fmt.Errorf("schemas are not equal: %s", patch)
	}
	return nil
}
