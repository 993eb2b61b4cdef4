// internal/classify/classify.go
package classify

// Remarks maps a fill-rate percentage to its performance label.
func Remarks(fillRate int) string {
	switch {
	case fillRate >= 95:
		return "Excellent"
	case fillRate >= 85:
		return "Good"
	case fillRate >= 70:
		return "Fair"
	case fillRate > 0:
		return "Needs Attention"
	default:
		return ""
	}
}

// DisplayClass maps a fill-rate percentage to a three-level presentation class.
// The cutoffs are deliberately different from the Remarks thresholds; the two
// scales are independent.
func DisplayClass(fillRate int) string {
	switch {
	case fillRate >= 90:
		return "high"
	case fillRate >= 70:
		return "medium"
	default:
		return "low"
	}
}
