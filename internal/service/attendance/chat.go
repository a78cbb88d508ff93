package attendance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

// Chat export lines look like "[17/02/2026, 9:02:11 AM] Jane Doe: in".
var (
	messagePattern = regexp.MustCompile(`^\[?(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:[\s\p{Zs}]*[AaPp][Mm])?)\]?\s*-?\s*([^:]+):\s*(.*)$`)

	inPattern  = regexp.MustCompile(`(?i)\b(in|check.?in|arrived|good\s*morning|gm|login|log.?in|logg.?in|present|punch.?in)\b`)
	outPattern = regexp.MustCompile(`(?i)\b(out|check.?out|leaving|good\s*night|gn|logout|log.?out|logg.?out|punch.?out|bye|signing.?off|log.?off|logg.?off)\b`)
	wfhPattern = regexp.MustCompile(`(?i)\b(wfh|work\s*from\s*home|remote|working\s*from\s*home)\b`)

	// A time typed inside the message overrides the message timestamp.
	manualTimePattern = regexp.MustCompile(`(\d{1,2}[:.]\d{2}(?::\d{2})?(?:[\s\p{Zs}]*[AaPp][Mm])?)`)

	nonNameChars  = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	nonDigitChars = regexp.MustCompile(`\D`)
	nonClockChars = regexp.MustCompile(`[^0-9A-Z:.]+`)
)

var systemSenderMarkers = []string{"added", "left", "changed", "created", "security code"}

// chatEntry is one sender's check-in and check-out on one day.
type chatEntry struct {
	sender string
	in     string // HH:MM, empty when no check-in was seen
	out    string
	wfh    bool
}

// chatDay maps sender to entry for one date.
type chatDay map[string]*chatEntry

// parseChat groups chat messages by date (YYYY-MM-DD) and sender. The first
// check-in of the day wins; the last check-out wins.
func parseChat(text string) map[string]chatDay {
	days := make(map[string]chatDay)

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := messagePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sender := strings.TrimSpace(m[3])
		message := strings.TrimSpace(m[4])
		if isSystemSender(sender) {
			continue
		}

		date, ok := parseChatDate(m[1])
		if !ok {
			continue
		}
		stamp, ok := parseClock(m[2])
		if !ok {
			continue
		}

		day, ok := days[date]
		if !ok {
			day = make(chatDay)
			days[date] = day
		}
		entry, ok := day[sender]
		if !ok {
			entry = &chatEntry{sender: sender}
			day[sender] = entry
		}

		at := stamp
		if manual, ok := extractManualTime(message); ok {
			at = manual
		}
		isIn := inPattern.MatchString(message)
		isOut := outPattern.MatchString(message)
		isWFH := wfhPattern.MatchString(message)

		if isIn && entry.in == "" {
			entry.in = at
			entry.wfh = isWFH
		}
		if isOut {
			entry.out = at
		}
		// A bare "wfh" counts as a remote check-in.
		if isWFH && !isIn && !isOut && entry.in == "" {
			entry.in = stamp
			entry.wfh = true
		}
	}

	return days
}

func isSystemSender(sender string) bool {
	for _, marker := range systemSenderMarkers {
		if strings.Contains(sender, marker) {
			return true
		}
	}
	return false
}

// parseChatDate reads d/m/yy or d/m/yyyy.
func parseChatDate(s string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return "", false
	}
	d, errD := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return "", false
	}
	if y < 100 {
		y += 2000
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return "", false
	}
	return t.Format(validator.DateLayout), true
}

// parseClock reads 24-hour or AM/PM times with ':' or '.' separators and
// returns HH:MM.
func parseClock(s string) (string, bool) {
	cleaned := strings.TrimSpace(nonClockChars.ReplaceAllString(strings.ToUpper(s), " "))
	isPM := strings.Contains(cleaned, "PM")
	isAM := strings.Contains(cleaned, "AM")
	cleaned = strings.NewReplacer("AM", "", "PM", "", ".", ":", " ", "").Replace(cleaned)

	parts := strings.Split(cleaned, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h > 23 || m > 59 {
		return "", false
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec > 59 {
			return "", false
		}
	}
	if isPM && h < 12 {
		h += 12
	}
	if isAM && h == 12 {
		h = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func extractManualTime(message string) (string, bool) {
	for _, candidate := range manualTimePattern.FindAllString(message, -1) {
		if at, ok := parseClock(candidate); ok {
			return at, true
		}
	}
	return "", false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(nonNameChars.ReplaceAllString(name, "")))
}

func normalizePhone(s string) string {
	return nonDigitChars.ReplaceAllString(s, "")
}

// match finds e's entry by WhatsApp name, then name, then phone number, and
// returns the sender key it matched.
func (d chatDay) match(e employee.Employee) (*chatEntry, bool) {
	for _, name := range []string{e.WhatsappName, e.Name} {
		if name == "" {
			continue
		}
		if entry, ok := d[name]; ok {
			return entry, true
		}
		want := normalizeName(name)
		for sender, entry := range d {
			if normalizeName(sender) == want {
				return entry, true
			}
		}
	}

	phone := normalizePhone(e.Phone)
	if len(phone) < 5 {
		return nil, false
	}
	for sender, entry := range d {
		got := normalizePhone(sender)
		if len(got) >= 5 && (strings.Contains(got, phone) || strings.Contains(phone, got)) {
			return entry, true
		}
	}
	return nil, false
}
