package aggregator

import "fmt"

// ValidationError is returned when a window boundary is not a valid date
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s date %q, use YYYY-MM-DD or RFC3339", e.Field, e.Value)
}

// AggregationError reports that one statistics section could not be computed.
// It is contained to that section; siblings are unaffected.
type AggregationError struct {
	Section string
	Err     error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s: %v", e.Section, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
