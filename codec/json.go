package codec

import "encoding/json"

// JSON is the standard-library JSON codec. It covers the snapshot
// phase section (plain structs and maps); custom codecs can be set
// where snapshots are written.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the stable codec name recorded in snapshot headers.
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written snapshots. Existing
// snapshots record their codec name and are decoded with that codec.
var Default Codec = JSON{}
