package wallpaper

import (
	"fmt"

	"github.com/matzehuels/wallfeed/pkg/errors"
)

// Record is one normalized wallpaper.
//
// JSON field names match the response shape clients already consume.
// Date is empty when the provider has no date concept; it is never omitted.
type Record struct {
	Title string `json:"title"` // Display title, provider default when upstream has none
	Date  string `json:"date"`  // YYYY-MM-DD or ""
	Thumb string `json:"thumb"` // Preview URL (absolute)
	Full  string `json:"full"`  // Full resolution URL (absolute, may equal Thumb)
}

// Validate reports whether r satisfies the record invariants.
func (r Record) Validate() error {
	if err := errors.ValidateImageURL(r.Thumb); err != nil {
		return fmt.Errorf("thumb: %w", err)
	}
	if err := errors.ValidateImageURL(r.Full); err != nil {
		return fmt.Errorf("full: %w", err)
	}
	return nil
}

// FormatDate converts an 8-digit YYYYMMDD code into YYYY-MM-DD.
// Any input that is not exactly 8 bytes long yields "".
func FormatDate(s string) string {
	if len(s) != 8 {
		return ""
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}

// Filter returns the records of rs that pass Validate, preserving order,
// along with the number dropped.
func Filter(rs []Record) ([]Record, int) {
	out := make([]Record, 0, len(rs))
	for _, r := range rs {
		if r.Validate() == nil {
			out = append(out, r)
		}
	}
	return out, len(rs) - len(out)
}
