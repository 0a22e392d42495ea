package wp

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of stored post dates.
const DateLayout = "2006-01-02 15:04:05"

// ZeroDate is stored for dates that were never set, such as the GMT date of
// an unpublished draft.
const ZeroDate = "0000-00-00 00:00:00"

// ParseDate parses a stored post date as UTC wall-clock time. It reports
// false for empty, zero and malformed values.
func ParseDate(raw string) (time.Time, bool) {
	if raw == "" || raw == ZeroDate {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t with a PHP date() pattern. A backslash escapes the
// following character; characters without a meaning are copied through.
func FormatDate(pattern string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' {
			if i+1 < len(pattern) {
				i++
				b.WriteByte(pattern[i])
			}
			continue
		}
		if !writeDateChar(&b, c, t) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func writeDateChar(b *strings.Builder, c byte, t time.Time) bool {
	switch c {
	// Day
	case 'd':
		b.WriteString(t.Format("02"))
	case 'D':
		b.WriteString(t.Format("Mon"))
	case 'j':
		b.WriteString(strconv.Itoa(t.Day()))
	case 'l':
		b.WriteString(t.Weekday().String())
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		b.WriteString(strconv.Itoa(wd))
	case 'S':
		b.WriteString(ordinalSuffix(t.Day()))
	case 'w':
		b.WriteString(strconv.Itoa(int(t.Weekday())))
	case 'z':
		b.WriteString(strconv.Itoa(t.YearDay() - 1))

	// Week
	case 'W':
		_, week := t.ISOWeek()
		b.WriteString(pad2(week))

	// Month
	case 'F':
		b.WriteString(t.Month().String())
	case 'm':
		b.WriteString(t.Format("01"))
	case 'M':
		b.WriteString(t.Format("Jan"))
	case 'n':
		b.WriteString(strconv.Itoa(int(t.Month())))
	case 't':
		b.WriteString(strconv.Itoa(daysIn(t)))

	// Year
	case 'L':
		if daysInYear(t.Year()) == 366 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'o':
		year, _ := t.ISOWeek()
		b.WriteString(strconv.Itoa(year))
	case 'Y':
		b.WriteString(strconv.Itoa(t.Year()))
	case 'y':
		b.WriteString(t.Format("06"))

	// Time
	case 'a':
		b.WriteString(t.Format("pm"))
	case 'A':
		b.WriteString(t.Format("PM"))
	case 'B':
		u := t.UTC()
		secs := (u.Hour()*3600 + u.Minute()*60 + u.Second() + 3600) % 86400
		beat := int(float64(secs) / 86.4)
		b.WriteString(pad3(beat))
	case 'g':
		b.WriteString(t.Format("3"))
	case 'G':
		b.WriteString(strconv.Itoa(t.Hour()))
	case 'h':
		b.WriteString(t.Format("03"))
	case 'H':
		b.WriteString(t.Format("15"))
	case 'i':
		b.WriteString(t.Format("04"))
	case 's':
		b.WriteString(t.Format("05"))
	case 'u':
		b.WriteString(t.Format(".000000")[1:])
	case 'v':
		b.WriteString(t.Format(".000")[1:])

	// Timezone
	case 'e':
		b.WriteString(t.Location().String())
	case 'I':
		if t.IsDST() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'O':
		b.WriteString(t.Format("-0700"))
	case 'P':
		b.WriteString(t.Format("-07:00"))
	case 'p':
		if _, off := t.Zone(); off == 0 {
			b.WriteByte('Z')
		} else {
			b.WriteString(t.Format("-07:00"))
		}
	case 'T':
		b.WriteString(t.Format("MST"))
	case 'Z':
		_, off := t.Zone()
		b.WriteString(strconv.Itoa(off))

	// Full date/time
	case 'c':
		b.WriteString(t.Format("2006-01-02T15:04:05-07:00"))
	case 'r':
		b.WriteString(t.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	case 'U':
		b.WriteString(strconv.FormatInt(t.Unix(), 10))
	default:
		return false
	}
	return true
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
