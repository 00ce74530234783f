package availability

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockDuration = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	hoursPart     = regexp.MustCompile(`(\d+)\s*h`)
	minutesPart   = regexp.MustCompile(`(\d+)\s*m`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// ParseDurationMinutes разбирает длительность услуги: "30 min", "1:30", "1h 30min", "45".
// Для пустой или нераспознанной строки возвращает fallback.
func ParseDurationMinutes(s string, fallback int) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}

	if m := clockDuration.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if total := h*60 + min; total > 0 {
			return total
		}
		return fallback
	}

	total := 0
	if m := hoursPart.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
		if mm := minutesPart.FindStringSubmatch(s[strings.Index(s, m[0])+len(m[0]):]); mm != nil {
			min, _ := strconv.Atoi(mm[1])
			total += min
		}
		if total > 0 {
			return total
		}
	}

	digits := nonDigits.ReplaceAllString(s, "")
	if v, err := strconv.Atoi(digits); err == nil && v > 0 {
		return v
	}
	return fallback
}
