package gds

import (
	"encoding/json"
	"io"
)

// JSONBackend is the name of the JSON backend.
const JSONBackend = "json"

func init() {
	Register(jsonBackend{})
}

// jsonBackend dumps the logical database as indented JSON. It is useful for
// inspecting geometry without a GDS viewer.
type jsonBackend struct{}

func (jsonBackend) Name() string      { return JSONBackend }
func (jsonBackend) Extension() string { return ".gds.json" }

func (jsonBackend) Write(w io.Writer, lib *Library) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lib)
}
