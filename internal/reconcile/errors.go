package reconcile

import (
	"fmt"
	"slices"

	"github.com/amsterdam/sensorregister/internal/registration"
)

// DuplicateReferenceError reports a reference that occurs more than once
// in one submission.
type DuplicateReferenceError struct {
	Reference string
	Count     int
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("Referenties moeten uniek zijn: %s komt %d keer voor", e.Reference, e.Count)
}

// Duplicates returns an error for every reference occurring more than
// once, most frequent first and in order of first occurrence otherwise.
func Duplicates(records []registration.SensorData) []error {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if counts[r.Reference] == 0 {
			order = append(order, r.Reference)
		}
		counts[r.Reference]++
	}

	order = slices.DeleteFunc(order, func(ref string) bool { return counts[ref] < 2 })
	slices.SortStableFunc(order, func(a, b string) int { return counts[b] - counts[a] })

	errs := make([]error, 0, len(order))
	for _, ref := range order {
		errs = append(errs, &DuplicateReferenceError{Reference: ref, Count: counts[ref]})
	}
	return errs
}
