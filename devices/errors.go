package devices

import "strings"

// ErrorSet collects one or more errors and is itself an error.
// Map lifecycle calls use it to report every failing device instead
// of stopping at the first.
type ErrorSet []error

func (e ErrorSet) Len() int {
	return len(e)
}

func (e *ErrorSet) Append(args ...error) {
	*e = append(*e, args...)
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	for _, err := range e {
		sb.WriteString(err.Error() + "\n")
	}
	return sb.String()
}
