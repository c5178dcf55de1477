package dayindex

import (
	"fmt"

	"logreader/internal/app/logs"
)

// NodeLevel is the depth of a node in the day tree
type NodeLevel int

const (
	YearNode NodeLevel = iota
	MonthNode
	DayNode
)

// Node is a year, month or day entry of the tree
type Node struct {
	Key      string
	Level    NodeLevel
	Day      logs.Day
	Children []*Node
	Expanded bool
}

// Tree is the year → month → day hierarchy of a source's days
type Tree []*Node

// IsEmpty reports whether the tree has no days
func (t Tree) IsEmpty() bool {
	return len(t) == 0
}

// Days returns the leaves in tree order
func (t Tree) Days() []logs.Day {
	var days []logs.Day

	for _, year := range t {
		for _, month := range year.Children {
			for _, day := range month.Children {
				days = append(days, day.Day)
			}
		}
	}

	return days
}

// Find returns the leaf for day, if present
func (t Tree) Find(day logs.Day) (*Node, bool) {
	for _, year := range t {
		if year.Day.Year != day.Year {
			continue
		}

		for _, month := range year.Children {
			if month.Day.Month != day.Month {
				continue
			}

			for _, leaf := range month.Children {
				if leaf.Day == day {
					return leaf, true
				}
			}
		}
	}

	return nil, false
}

// BuildTree groups days by year and month. Desc and Asc sort the days first;
// None keeps the arrival order. Only the first year and its first month start expanded.
func BuildTree(days []logs.Day, order logs.OrderBy) (Tree, error) {
	sorted, err := logs.SortDays(days, order)
	if err != nil {
		return nil, err
	}

	tree := Tree{}
	years := make(map[int]*Node)
	months := make(map[[2]int]*Node)
	seen := make(map[logs.Day]struct{}, len(sorted))

	for _, day := range sorted {
		if _, dup := seen[day]; dup {
			continue
		}

		seen[day] = struct{}{}

		year, ok := years[day.Year]
		if !ok {
			year = &Node{
				Key:   fmt.Sprintf("%04d", day.Year),
				Level: YearNode,
				Day:   logs.Day{Year: day.Year},
			}
			years[day.Year] = year
			tree = append(tree, year)
		}

		monthKey := [2]int{day.Year, int(day.Month)}

		month, ok := months[monthKey]
		if !ok {
			month = &Node{
				Key:   fmt.Sprintf("%02d", int(day.Month)),
				Level: MonthNode,
				Day:   logs.Day{Year: day.Year, Month: day.Month},
			}
			months[monthKey] = month
			year.Children = append(year.Children, month)
		}

		month.Children = append(month.Children, &Node{
			Key:   fmt.Sprintf("%02d", day.Date),
			Level: DayNode,
			Day:   day,
		})
	}

	if len(tree) > 0 {
		tree[0].Expanded = true

		if len(tree[0].Children) > 0 {
			tree[0].Children[0].Expanded = true
		}
	}

	return tree, nil
}
