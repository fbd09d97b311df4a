// Package analytics computes the breakdowns behind the analytics view.
package analytics

import "github.com/agalitsyn/taskdash/internal/model"

// Unspecified names the bucket of tasks with an empty key.
const Unspecified = "Unspecified"

type Bucket struct {
	Name  string
	Count int
}

func ByStatus(tasks []model.Task) []Bucket {
	return groupBy(tasks, func(t model.Task) string { return string(t.Status) })
}

func ByCategory(tasks []model.Task) []Bucket {
	return groupBy(tasks, func(t model.Task) string { return t.Category })
}

func ByPriority(tasks []model.Task) []Bucket {
	return groupBy(tasks, func(t model.Task) string { return string(t.Priority) })
}

// Total sums bucket counts.
func Total(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}

// Percent returns the share of b in total, rounded down.
func Percent(b Bucket, total int) int {
	if total == 0 {
		return 0
	}
	return b.Count * 100 / total
}

// Completion is the mean progress over tasks, 0 for an empty collection.
func Completion(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return sum / len(tasks)
}

func groupBy(tasks []model.Task, key func(model.Task) string) []Bucket {
	var buckets []Bucket
	index := make(map[string]int)
	for _, t := range tasks {
		k := key(t)
		if k == "" {
			k = Unspecified
		}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Name: k})
		}
		buckets[i].Count++
	}
	return buckets
}
