package render

import (
	"encoding/json"
	"io"
)

// JSON writes a result as indented JSON. Undefined metrics serialize as
// null, never zero.
func JSON(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
