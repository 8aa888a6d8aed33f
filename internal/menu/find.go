package menu

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Find resolves a "/"-separated path of submenu titles starting below root.
// Each segment is matched case-insensitively: exact titles first, then
// prefixes, then fuzzy matches ranked by distance. The cursor of every menu
// along the way is moved onto the matched child.
func Find(root *Menu, path string) (*Menu, bool) {
	if root == nil {
		return nil, false
	}
	current := root
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		idx := bestSubmenu(current, segment)
		if idx < 0 {
			return nil, false
		}
		current.selected = idx
		current = current.children[idx].(*Menu)
	}
	return current, true
}

// bestSubmenu returns the index of the child menu best matching query, or -1.
func bestSubmenu(m *Menu, query string) int {
	indexes := make([]int, 0, len(m.children))
	titles := make([]string, 0, len(m.children))
	for i, child := range m.children {
		if _, ok := child.(*Menu); ok {
			indexes = append(indexes, i)
			titles = append(titles, child.Title())
		}
	}
	if len(titles) == 0 {
		return -1
	}
	lower := strings.ToLower(query)
	for i, title := range titles {
		if strings.EqualFold(title, query) {
			return indexes[i]
		}
	}
	for i, title := range titles {
		if strings.HasPrefix(strings.ToLower(title), lower) {
			return indexes[i]
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return indexes[best.OriginalIndex]
}
