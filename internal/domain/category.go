package domain

import "strings"

// Uncategorized is the category of tasks that have none.
const Uncategorized = "Uncategorized"

// CategoryKey normalizes a free-text category into a grouping key: the
// string is trimmed, lowercased and every whitespace run becomes one hyphen.
// Blank categories map to the key of Uncategorized.
//
//	"To Do"             -> "to-do"
//	"  Urgent  Tasks "  -> "urgent-tasks"
//	""                  -> "uncategorized"
func CategoryKey(category string) string {
	words := strings.Fields(category)
	if len(words) == 0 {
		words = []string{Uncategorized}
	}
	return strings.ToLower(strings.Join(words, "-"))
}

// GroupByCategory buckets tasks by CategoryKey, keeping their input order
// within each bucket. Tasks are not modified.
func GroupByCategory(tasks []*Task) map[string][]*Task {
	groups := make(map[string][]*Task)
	for _, t := range tasks {
		if t == nil {
			continue
		}
		key := CategoryKey(t.Category)
		groups[key] = append(groups[key], t)
	}
	return groups
}
