package catalog

import (
	"fmt"
	"time"

	"github.com/ClassroomPrayers/calendar"
)

// Selection is the content the board shows for a given moment.
type Selection struct {
	Weekday   calendar.Weekday   `json:"weekday"`
	TimeOfDay calendar.TimeOfDay `json:"timeOfDay"`
	Prayer    PrayerEntry        `json:"prayer"`
	Saint     string             `json:"saint"`
}

// Prayer looks up the catalogued entry for a bucket pair. The resolver never
// produces a day outside the catalog, but an unknown bucket still yields the
// Monday morning entry rather than a zero value.
func Prayer(day calendar.Weekday, tod calendar.TimeOfDay) PrayerEntry {
	if byTod, ok := prayers[day]; ok {
		if entry, ok := byTod[tod]; ok {
			return entry
		}
	}
	return prayers[calendar.Monday][calendar.Morning]
}

// Saint returns the commemorated figure for a calendar date, or DefaultSaint
// when the date has no entry. Total over all (month, day) pairs.
func Saint(month time.Month, day int) string {
	if name, ok := saints[fmt.Sprintf("%d-%d", int(month), day)]; ok {
		return name
	}
	return DefaultSaint
}

// Select derives the full board content for a moment. Pure re-derivation:
// the result only changes at the noon and midnight bucket boundaries.
func Select(t time.Time) Selection {
	day, tod := calendar.Resolve(t)
	return Selection{
		Weekday:   day,
		TimeOfDay: tod,
		Prayer:    Prayer(day, tod),
		Saint:     Saint(t.Month(), t.Day()),
	}
}
