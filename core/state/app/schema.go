package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

const SchemaName = "process"

var processSchemaRaw = `
{
	"$defs": {
		"route_mapping": {
			"type": "object",
			"properties": {
				"guid": { "type": "string" },
				"route_guid": { "type": "string" },
				"bound_port": { "type": ["integer", "null"] }
			},
			"required": [ "guid", "route_guid", "bound_port" ]
		}
	},
	"title": "Halyard Process Record",
	"type": "object",
	"properties": {
		"guid": { "type": "string" },
		"name": { "type": "string" },
		"type": { "type": "string" },
		"space_guid": { "type": "string" },
		"desired_state": {
			"type": "string",
			"enum": [ "STOPPED", "STARTED" ]
		},
		"package_state": {
			"type": "string",
			"enum": [ "PENDING", "STAGED", "FAILED" ]
		},
		"staging_failed_reason": { "type": "string" },
		"staging_failed_description": { "type": "string" },
		"package_pending_since": { "type": "string" },
		"version": { "type": "string" },
		"backend": {
			"type": "string",
			"enum": [ "", "legacy", "next-gen" ]
		},
		"ports": {
			"type": "array",
			"items": { "type": "integer" }
		},
		"memory_mb": { "type": "integer" },
		"disk_quota_mb": { "type": "integer" },
		"instances": { "type": "integer" },
		"enable_ssh": { "type": "boolean" },
		"health_check_type": {
			"type": "string",
			"enum": [ "port", "none", "process" ]
		},
		"health_check_timeout": { "type": "integer" },
		"package_hash": { "type": "string" },
		"droplet_guid": { "type": "string" },
		"command": { "type": "string" },
		"docker_image": { "type": "string" },
		"buildpack": { "type": "string" },
		"stack_name": { "type": "string" },
		"route_mappings": {
			"type": "array",
			"items": {
				"$ref": "#/$defs/route_mapping"
			}
		},
		"created_at": { "type": "string" },
		"updated_at": { "type": "string" }
	},
	"required": [ "guid", "name", "type", "space_guid", "desired_state", "package_state", "version", "backend", "route_mappings" ]
}`

// Schema returns the JSON schema for serialized process records.
func Schema() []byte {
	return []byte(processSchemaRaw)
}

// Bytes serializes the process record.
func (p *Process) Bytes() ([]byte, error) {
	marshaled, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return marshaled, nil
}

// FromBytes deserializes a process record without validating it. Use
// ValidateRecord first when the bytes come from outside the store.
func FromBytes(data []byte) (*Process, error) {
	var p Process
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.RouteMappings == nil {
		p.RouteMappings = make([]*RouteMapping, 0)
	}
	return &p, nil
}

func keyError(errs []jsonschema.KeyError) error {
	s := strings.Builder{}
	for _, e := range errs {
		s.WriteString(fmt.Sprintf("%s\n", e.Error()))
	}
	return errors.New(s.String())
}

// ValidateRecord checks a serialized process record against the schema.
func ValidateRecord(ctx context.Context, data []byte) error {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(processSchemaRaw), rs); err != nil {
		return fmt.Errorf("invalid process schema: %s", err)
	}
	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("error validating process record: %s", err)
	}
	if len(keyErrs) != 0 {
		return keyError(keyErrs)
	}
	return nil
}
