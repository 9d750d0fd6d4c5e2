package llm

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
)

// SchemaFor reflects a Schema from a Go struct using its json and
// jsonschema tags. Used for request bodies, where the Go type is the
// source of truth. Unknown fields are allowed so browser forms may send
// extra keys. Panics if T cannot be reflected, which only happens for
// programming errors at package init.
func SchemaFor[T any](name, description string) *Schema {
	r := &invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}

	var zero T
	b, err := json.Marshal(r.Reflect(&zero))
	if err != nil {
		panic(fmt.Sprintf("reflect schema %q: %v", name, err))
	}

	var def map[string]any
	if err := json.Unmarshal(b, &def); err != nil {
		panic(fmt.Sprintf("decode reflected schema %q: %v", name, err))
	}
	delete(def, "$schema")
	delete(def, "$id")

	return &Schema{Name: name, Description: description, Definition: def}
}
