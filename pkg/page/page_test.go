package page

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	got, err := String(context.Background(), Render(View{
		Markup:  `<ul style="list-style: disc; padding-left: 0rem"><li>Jan</li></ul>`,
		Indexes: []int{0, 2, 5},
		Outputs: [][]string{
			{"Event type: debug, payload: Random data: 1.000"},
			{"Event type: debug, payload: <script>"},
		},
	}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<title>lineage</title>")
	assert.Contains(t, got, `<section id="members"><h2>Members</h2><ul style="list-style: disc; padding-left: 0rem"><li>Jan</li></ul></section>`)
	assert.Contains(t, got, `<h2>Found indexes</h2><p>[0, 2, 5]</p>`)
	assert.Contains(t, got, `<section id="subscriber-1"><h2>Subscriber 1</h2><ol><li>Event type: debug, payload: Random data: 1.000</li></ol></section>`)
	assert.Contains(t, got, `payload: &lt;script&gt;`)
	assert.True(t, strings.HasSuffix(got, "</body></html>"))
}

func TestRender_Title(t *testing.T) {
	got, err := String(context.Background(), Render(View{Title: "Family & friends"}))
	require.NoError(t, err)
	assert.Contains(t, got, "<title>Family &amp; friends</title>")
	assert.Contains(t, got, "<p>[]</p>")
	assert.NotContains(t, got, "subscriber-1")
}
