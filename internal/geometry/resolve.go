package geometry

// ResolveCoordinate converts a declared position along one axis into a pixel
// offset. A percentage centers an element of elementSize on that point of the
// axis; anything else is read as a literal pixel value. Malformed input yields
// NaN, which callers treat as "leave unchanged".
func ResolveCoordinate(value string, axisLength, elementSize float64) float64 {
	if IsPercent(value) {
		percent := ParseFloat(value) / 100
		return percent*axisLength - elementSize/2
	}
	return ParseFloat(value)
}

// ResolveSize converts a declared size into pixels. An empty value returns
// fallback, a percentage scales maxAxis, anything else is a literal. The
// result is not clamped.
func ResolveSize(value string, fallback, maxAxis float64) float64 {
	if value == "" {
		return fallback
	}
	if IsPercent(value) {
		return ParseFloat(value) / 100 * maxAxis
	}
	return ParseFloat(value)
}

// CenterPercent converts an absolute top-left offset of an element of size
// elementSize back into the percentage of axisLength its center sits on.
// It is the inverse of ResolveCoordinate for percentage input.
func CenterPercent(offset, axisLength, elementSize float64) float64 {
	return (offset + elementSize/2) / axisLength * 100
}

// Percent formats v as a percentage declaration ("37.5%").
func Percent(v float64) string {
	return FormatFloat(v) + "%"
}
