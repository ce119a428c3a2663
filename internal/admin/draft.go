package admin

import (
	"strings"
)

// List names one of the ordered string lists on a draft.
type List string

const (
	ListTags       List = "tags"
	ListDetails    List = "details"
	ListHighlights List = "highlights"
)

// Key is the key press that submits a list input.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyCtrlEnter Key = "Ctrl+Enter"
)

// ParseList maps a route segment to a List.
func ParseList(s string) (List, bool) {
	switch l := List(s); l {
	case ListTags, ListDetails, ListHighlights:
		return l, true
	}
	return "", false
}

// AddKey is the key that appends to l. Details are multi-line, so a bare
// Enter adds a newline there instead.
func (l List) AddKey() Key {
	if l == ListDetails {
		return KeyCtrlEnter
	}
	return KeyEnter
}

// AddOnKey appends the trimmed input when key is l's add key and the input
// is not blank. It never modifies items in place.
func AddOnKey(l List, items []string, input string, key Key) ([]string, bool) {
	if key != l.AddKey() {
		return items, false
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return items, false
	}
	out := make([]string, 0, len(items)+1)
	out = append(out, items...)
	return append(out, input), true
}

// Remove drops the item at i. Out of range indexes leave items unchanged.
func Remove(items []string, i int) []string {
	if i < 0 || i >= len(items) {
		return items
	}
	out := make([]string, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
