package calendar

import "time"

// Weekday is the display bucket a moment falls into. Weekend days collapse
// to Monday so the board always shows a school-day prayer.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
)

func (w Weekday) String() string   { return string(w) }
func (t TimeOfDay) String() string { return string(t) }

// NoonHour splits the day into the two display windows.
const NoonHour = 12

// Resolve maps a moment to its display buckets using the caller's local
// wall clock. Total over all moments: Saturday and Sunday map to Monday,
// and every hour falls in exactly one of the two windows.
func Resolve(t time.Time) (Weekday, TimeOfDay) {
	var day Weekday
	switch t.Weekday() {
	case time.Tuesday:
		day = Tuesday
	case time.Wednesday:
		day = Wednesday
	case time.Thursday:
		day = Thursday
	case time.Friday:
		day = Friday
	default:
		// Monday, Saturday, Sunday
		day = Monday
	}

	tod := Morning
	if t.Hour() >= NoonHour {
		tod = Afternoon
	}
	return day, tod
}
