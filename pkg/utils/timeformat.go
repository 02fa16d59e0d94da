package utils

import (
	"fmt"
	"time"
)

// Abbreviated month names following es-ES conventions.
var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// FormatTimestamp renders a message timestamp relative to a reference
// instant, the way chat panes label messages:
//
//	same day       -> "15:04"
//	previous day   -> "Ayer 15:04"
//	same year      -> "2 ene 15:04"
//	older          -> "2 ene 2023 15:04"
//
// Day boundaries are calendar days in the reference's location, with a
// 24-hour clock and day-month-year ordering.
func FormatTimestamp(ts, now time.Time) string {
	ts = ts.In(now.Location())
	clock := ts.Format("15:04")

	ty, tm, td := ts.Date()
	ny, nm, nd := now.Date()

	if ty == ny && tm == nm && td == nd {
		return clock
	}

	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "Ayer " + clock
	}

	month := spanishMonths[ts.Month()-1]
	if ty == ny {
		return fmt.Sprintf("%d %s %s", td, month, clock)
	}
	return fmt.Sprintf("%d %s %d %s", td, month, ty, clock)
}
