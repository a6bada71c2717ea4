// Package birthday computes which contacts have a birthday coming up within a
// window of days, moving weekend celebrations to the following Monday.
package birthday

import (
	"time"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// DefaultWindow is the number of days looked ahead when none is given.
const DefaultWindow = 7

// Greeting is one contact to congratulate and the date to do it on.
type Greeting struct {
	Name contact.Name
	Date time.Time
}

// DateString formats the celebration date as DD.MM.YYYY.
func (g Greeting) DateString() string {
	return g.Date.Format(contact.DateLayout)
}

// Upcoming returns a greeting for every record whose next birthday falls
// within days of today, inclusive, in book order.
//
// The window is checked against the actual occurrence; a Saturday or Sunday
// occurrence is then moved to Monday. A 29 February birthday is celebrated on
// 28 February in non-leap years.
func Upcoming(b *book.AddressBook, today time.Time, days int) ([]Greeting, error) {
	if days < 1 {
		return nil, contact.InvalidArgument("Number of days must be positive, got %d.", days)
	}
	today = dateOnly(today)
	limit := today.AddDate(0, 0, days)

	var out []Greeting
	for _, r := range b.All() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		occ := Occurrence(bd.Date(), today.Year())
		if occ.Before(today) {
			occ = Occurrence(bd.Date(), today.Year()+1)
		}
		if occ.After(limit) {
			continue
		}
		out = append(out, Greeting{Name: r.Name(), Date: ShiftWeekend(occ)})
	}
	return out, nil
}

// Occurrence returns the date birth falls on in year.
func Occurrence(birth time.Time, year int) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ShiftWeekend moves a Saturday or Sunday to the following Monday.
func ShiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
