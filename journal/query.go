package journal

import "time"

// Between returns the entries of t logged within [start, end).
func Between(t Table, start, end time.Time) ([]Entry, error) {
	all, err := t.Entries()
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range all {
		if !e.Time.Before(start) && e.Time.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

// DayBounds returns the local-day interval of a YYYY-MM-DD string.
func DayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}
