package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Block is one "<Day>[-<Day>]:<HH:MM>-<HH:MM>" clause of a schedule text.
// From and To are clock values HH*100+MM, both inclusive. The digits are kept as written, so
// out-of-range times such as 25:00 or 07:60 still order like their zero-padded text.
type Block struct {
	StartDay time.Weekday `json:"start_day"`
	EndDay   time.Weekday `json:"end_day"`
	From     int          `json:"from"`
	To       int          `json:"to"`
}

// Schedule is the structured form of a schedule text.
type Schedule struct {
	AlwaysOpen bool    `json:"always_open"`
	Blocks     []Block `json:"blocks"`
}

const (
	alwaysOpenMarker = "24H"

	hourBase = 100
)

var (
	blockRe = regexp.MustCompile(`([LMXJVSD])(?:-([LMXJVSD]))?\s*:\s*(\d{2}):(\d{2})\s*-\s*(\d{2}):(\d{2})`)

	blockSeparators = func(r rune) bool {
		return r == ';' || r == '\n' || r == '|'
	}

	// Spanish initials: Lunes, Martes, miércoles (X), Jueves, Viernes, Sábado, Domingo.
	dayCodes = map[byte]time.Weekday{
		'L': time.Monday,
		'M': time.Tuesday,
		'X': time.Wednesday,
		'J': time.Thursday,
		'V': time.Friday,
		'S': time.Saturday,
		'D': time.Sunday,
	}
	dayLetters = map[time.Weekday]string{
		time.Monday:    "L",
		time.Tuesday:   "M",
		time.Wednesday: "X",
		time.Thursday:  "J",
		time.Friday:    "V",
		time.Saturday:  "S",
		time.Sunday:    "D",
	}
)

// ParseBlock extracts the first day-range/time-range clause found in s.
// s is expected to be upper-cased already. The second result is false when s holds no
// recognizable clause.
func ParseBlock(s string) (Block, bool) {
	m := blockRe.FindStringSubmatch(s)
	if m == nil {
		return Block{}, false
	}

	start := dayCodes[m[1][0]]
	end := start
	if m[2] != "" {
		end = dayCodes[m[2][0]]
	}

	return Block{
		StartDay: start,
		EndDay:   end,
		From:     clockValue(m[3], m[4]),
		To:       clockValue(m[5], m[6]),
	}, true
}

// Parse splits text into blocks. Clauses that do not parse are dropped.
func Parse(text string) Schedule {
	h := strings.ToUpper(text)
	if strings.Contains(h, alwaysOpenMarker) {
		return Schedule{AlwaysOpen: true}
	}

	var res Schedule
	for _, b := range strings.FieldsFunc(h, blockSeparators) {
		block, ok := ParseBlock(strings.TrimSpace(b))
		if !ok {
			continue
		}
		res.Blocks = append(res.Blocks, block)
	}
	return res
}

// CoversDay reports whether day falls into the block's day range, wrapping across Sunday
// when the start day comes after the end day (e.g. V-L is Friday through Monday).
func (b Block) CoversDay(day time.Weekday) bool {
	if b.StartDay <= b.EndDay {
		return day >= b.StartDay && day <= b.EndDay
	}
	return day >= b.StartDay || day <= b.EndDay
}

func (b Block) CoversTime(hh, mm int) bool {
	v := hh*hourBase + mm
	return b.From <= v && v <= b.To
}

func (b Block) String() string {
	days := dayLetters[b.StartDay]
	if b.EndDay != b.StartDay {
		days += "-" + dayLetters[b.EndDay]
	}
	return fmt.Sprintf("%s:%s-%s", days, FormatClock(b.From), FormatClock(b.To))
}

// FormatClock renders a HH*100+MM clock value as HH:MM.
func FormatClock(v int) string {
	return fmt.Sprintf("%02d:%02d", v/hourBase, v%hourBase)
}

// clockValue packs two-digit hour and minute groups. Both are matched as \d{2}, so the
// conversion cannot fail.
func clockValue(hh, mm string) int {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*hourBase + m
}
