package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddThenRemoveIsIdentity(t *testing.T) {
	tags := []string{}

	tags, added := AddOnKey(ListTags, tags, "Design", KeyEnter)
	assert.True(t, added)
	assert.Equal(t, []string{"Design"}, tags)

	tags = Remove(tags, 0)
	assert.Empty(t, tags)
}

func TestAddOnKey(t *testing.T) {
	tests := []struct {
		name  string
		list  List
		items []string
		input string
		key   Key
		want  []string
		added bool
	}{
		{name: "tag on enter", list: ListTags, items: []string{"Go"}, input: "  SQL ", key: KeyEnter, want: []string{"Go", "SQL"}, added: true},
		{name: "highlight on enter", list: ListHighlights, items: nil, input: "Shipped", key: KeyEnter, want: []string{"Shipped"}, added: true},
		{name: "detail needs ctrl", list: ListDetails, items: []string{}, input: "line", key: KeyEnter, want: []string{}, added: false},
		{name: "detail on ctrl enter", list: ListDetails, items: []string{}, input: "line", key: KeyCtrlEnter, want: []string{"line"}, added: true},
		{name: "blank input ignored", list: ListTags, items: []string{"Go"}, input: "   ", key: KeyEnter, want: []string{"Go"}, added: false},
		{name: "other key ignored", list: ListTags, items: []string{"Go"}, input: "x", key: Key("Tab"), want: []string{"Go"}, added: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added := AddOnKey(tt.list, tt.items, tt.input, tt.key)
			assert.Equal(t, tt.added, added)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddOnKeyDoesNotAlias(t *testing.T) {
	backing := make([]string, 1, 4)
	backing[0] = "a"

	got, _ := AddOnKey(ListTags, backing, "b", KeyEnter)
	got[0] = "changed"

	assert.Equal(t, "a", backing[0])
}

func TestRemove(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, Remove(items, 1))
	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, items, Remove(items, 3))
	assert.Equal(t, items, Remove(items, -1))
}

func TestParseList(t *testing.T) {
	l, ok := ParseList("highlights")
	assert.True(t, ok)
	assert.Equal(t, ListHighlights, l)

	_, ok = ParseList("summary")
	assert.False(t, ok)
}
