package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/etnz/gplocal"
)

// JSON writes doc as indented JSON, the format read back by import.
func JSON(w io.Writer, doc gplocal.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// JSONFilename returns the name of a JSON backup made at now, like
// "gplocal-save-2025-06-15T08:30:00.json".
func JSONFilename(now time.Time) string {
	return "gplocal-save-" + now.UTC().Format("2006-01-02T15:04:05") + ".json"
}
