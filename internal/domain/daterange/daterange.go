// Package daterange resolves the reporting window for analytics
// queries. Callers may supply explicit bounds; otherwise the window is
// derived from the current date using the fixed trimester calendar.
package daterange

import (
	"net/http"
	"time"

	"activityservice/internal/domain"
)

const Layout = "2006-01-02"

type Range struct {
	Start string
	End   string
}

// ErrOutOfRange is returned for dates between trimesters (Mar 15 to
// Apr 14), where no default window is defined.
var ErrOutOfRange = &domain.DomainError{
	Code:       domain.ErrorCodeDateOutOfRange,
	Message:    "date is out of the defined trimesters",
	HTTPStatus: http.StatusBadRequest,
}

// Resolve returns the explicit bounds verbatim when both are set.
// Otherwise it picks the trimester window containing today:
//
//	Jun 15 - Nov 14  ->  Jun 1 .. Nov 14
//	Nov 15 - Mar 14  ->  Sep 1 .. Mar 14 of the following year
//	Apr 15 - Jun 14  ->  Apr 1 .. Jun 14
//
// All window bounds are inclusive. Explicit inputs are not validated
// or reformatted here; malformed values are rejected upstream.
func Resolve(explicitStart, explicitEnd string, today time.Time) (Range, error) {
	if explicitStart != "" && explicitEnd != "" {
		return Range{Start: explicitStart, End: explicitEnd}, nil
	}

	year := today.Year()
	loc := today.Location()

	var start, end time.Time
	switch {
	case within(today, date(year, time.June, 15, loc), date(year, time.November, 14, loc)):
		start = date(year, time.June, 1, loc)
		end = date(year, time.November, 14, loc)

	case within(today, date(year, time.November, 15, loc), date(year+1, time.March, 14, loc)):
		// Nov 15 - Dec 31 of the trimester's start year.
		start = date(year, time.September, 1, loc)
		end = date(year+1, time.March, 14, loc)

	case within(today, date(year-1, time.November, 15, loc), date(year, time.March, 14, loc)):
		// Jan 1 - Mar 14: the trimester started the previous year.
		start = date(year-1, time.September, 1, loc)
		end = date(year, time.March, 14, loc)

	case within(today, date(year, time.April, 15, loc), date(year, time.June, 14, loc)):
		start = date(year, time.April, 1, loc)
		end = date(year, time.June, 14, loc)

	default:
		return Range{}, ErrOutOfRange
	}

	return Range{Start: start.Format(Layout), End: end.Format(Layout)}, nil
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

func date(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
