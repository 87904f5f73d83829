// Package bounds holds the saturating increment used for every cursor in the
// app: form fields, calendar days, grade modules, money pagination.
package bounds

// Increment moves value by amount, clamped to [lower, upper]. Movement
// saturates at both ends rather than wrapping. When upper < lower the value
// is returned unchanged.
func Increment(value, lower, upper, amount int) int {
	if upper < lower {
		return value
	}
	value += amount
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
