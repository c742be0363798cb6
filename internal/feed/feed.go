// Package feed holds the viewer-side filtering applied after full retrieval.
// Search and sorting are not pushed to the store.
package feed

import (
	"sort"
	"strings"

	"github.com/rajput-vishal01/videovault/internal/models"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// Search returns the items whose title or description contains the query,
// case-insensitively. An empty query returns everything.
func Search(items []models.FeedItem, query string) []models.FeedItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]models.FeedItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out
}

// Sort orders items by the given option. Unknown options fall back to newest.
func Sort(items []models.FeedItem, option string) []models.FeedItem {
	out := make([]models.FeedItem, len(items))
	copy(out, items)
	switch option {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
