package booking

// Facility opening hours. A session may start exactly at open and end
// exactly at close.
const (
	BusinessOpen  ClockTime = 6 * 60  // 06:00
	BusinessClose ClockTime = 18 * 60 // 18:00
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict:
// 10:00–11:00 and 11:00–12:00 are compatible.
func Overlaps(aStart, aEnd, bStart, bEnd ClockTime) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidateInterval rejects empty or inverted intervals.
func ValidateInterval(start, end ClockTime) error {
	if end <= start {
		return Validationf("end time %s must be after start time %s", end, start)
	}
	return nil
}

// CheckBusinessHours enforces the 06:00–18:00 facility window,
// inclusive at both edges.
func CheckBusinessHours(start, end ClockTime) error {
	if start < BusinessOpen || end > BusinessClose {
		return OutsideBusinessHours(
			"reservations are only allowed between " + BusinessOpen.String() + " and " + BusinessClose.String())
	}
	return nil
}
