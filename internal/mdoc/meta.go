package mdoc

import (
	"time"

	strftime "github.com/ncruces/go-strftime"
)

// FormatDate renders a Meta.Date epoch value the way a diagnostic or
// rendered document header would, using the classic strftime layout
// rather than Go's reference-time format string.
func (m *Meta) FormatDate(layout string) string {
	if m.Date == 0 {
		return ""
	}
	if layout == "" {
		layout = "%B %e, %Y"
	}
	return strftime.Format(layout, time.Unix(m.Date, 0).UTC())
}
