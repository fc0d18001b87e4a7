package availability

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ToMinutes converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are accepted and ignored.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &ParseError{Value: hhmm, Reason: "ожидается формат HH:MM"}
	}

	hour, err := parseClockPart(parts[0], 23)
	if err != nil {
		return 0, &ParseError{Value: hhmm, Reason: "час " + err.Error()}
	}

	minute, err := parseClockPart(parts[1], 59)
	if err != nil {
		return 0, &ParseError{Value: hhmm, Reason: "минуты " + err.Error()}
	}

	if len(parts) == 3 {
		if _, err := parseClockPart(parts[2], 59); err != nil {
			return 0, &ParseError{Value: hhmm, Reason: "секунды " + err.Error()}
		}
	}

	return hour*60 + minute, nil
}

func parseClockPart(s string, upper int) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("должны состоять из двух цифр")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("содержат нецифровые символы")
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v > upper {
		return 0, fmt.Errorf("вне диапазона 0-%d", upper)
	}
	return v, nil
}

// FormatMinutes renders minutes since midnight as "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IntervalsOverlap reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap, so back-to-back windows are allowed.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
