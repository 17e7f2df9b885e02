package snapshot

import (
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"
)

// Schema returns the JSON schema of the settings document, for editors and the debug panel.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:      true, // Don't add $id based on package path
		ExpandedStruct: true, // Inline the struct fields directly
	}
	schema := reflector.Reflect(&Snapshot{})
	schema.Title = "logevents settings"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal json schema")
	}
	return data, nil
}

// Diff returns the JSON patch turning before into after. A nil snapshot is treated as empty.
func Diff(before, after *Snapshot) (jsondiff.Patch, error) {
	if before == nil {
		before = New()
	}
	if after == nil {
		after = New()
	}
	beforeBz, err := json.Marshal(before)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal previous snapshot")
	}
	afterBz, err := json.Marshal(after)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal current snapshot")
	}
	patch, err := jsondiff.CompareJSON(beforeBz, afterBz)
	if err != nil {
		return nil, eris.Wrap(err, "failed to compare snapshots")
	}
	return patch, nil
}
