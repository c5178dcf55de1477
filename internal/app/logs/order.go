package logs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// OrderBy is the ordering requested from a source
type OrderBy int

// Supported orderings. None keeps the backend-native order.
const (
	None OrderBy = iota
	Asc
	Desc
)

// ErrUnsupportedOrder matches any UnsupportedOrderError
var ErrUnsupportedOrder = errors.New("unsupported order")

// UnsupportedOrderError is returned when a source is asked for an ordering it does not know
type UnsupportedOrderError struct {
	Order OrderBy
}

func (e *UnsupportedOrderError) Error() string {
	return fmt.Sprintf("the clause 'OrderBy.%s' is not supported", e.Order)
}

// Is lets errors.Is match ErrUnsupportedOrder
func (e *UnsupportedOrderError) Is(target error) bool {
	return target == ErrUnsupportedOrder
}

// String returns the name of the ordering
func (o OrderBy) String() string {
	switch o {
	case None:
		return "None"
	case Asc:
		return "Asc"
	case Desc:
		return "Desc"
	default:
		return fmt.Sprintf("%d", int(o))
	}
}

// Valid reports whether the ordering is one of None, Asc or Desc
func (o OrderBy) Valid() bool {
	return o == None || o == Asc || o == Desc
}

// ParseOrder parses "asc", "desc" or "none"
func ParseOrder(s string) (OrderBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc", "":
		return Desc, nil
	case "none":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnsupportedOrder, s)
	}
}

// OrderOf maps a sort direction flag to an ordering
func OrderOf(ascending bool) OrderBy {
	if ascending {
		return Asc
	}

	return Desc
}

// SortDays returns days ordered as requested
func SortDays(days []Day, order OrderBy) ([]Day, error) {
	if !order.Valid() {
		return nil, &UnsupportedOrderError{Order: order}
	}

	sorted := make([]Day, len(days))
	copy(sorted, days)

	switch order {
	case Asc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	case Desc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[j].Before(sorted[i]) })
	}

	return sorted, nil
}

// SortRows returns rows ordered by timestamp; rows with equal timestamps keep their input order
func SortRows(rows []Row, order OrderBy) ([]Row, error) {
	if !order.Valid() {
		return nil, &UnsupportedOrderError{Order: order}
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)

	switch order {
	case Asc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	case Desc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[j].Time.Before(sorted[i].Time) })
	}

	return sorted, nil
}

// UniqueDays returns the distinct days of rows in first-seen order
func UniqueDays(rows []Row) []Day {
	seen := make(map[Day]struct{})
	days := make([]Day, 0)

	for _, row := range rows {
		day := DayOf(row.Time)
		if _, ok := seen[day]; ok {
			continue
		}

		seen[day] = struct{}{}
		days = append(days, day)
	}

	return days
}
