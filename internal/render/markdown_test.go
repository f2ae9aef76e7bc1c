// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/keep-export/pkg/types"
)

var created = time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		note types.Note
		want string
	}{
		{
			name: "title only",
			note: types.Note{Title: "Empty", CreatedAt: created},
			want: "# Empty\n",
		},
		{
			name: "timestamp heading for untitled note",
			note: types.Note{CreatedAt: created, Text: "body"},
			want: "# 2023-11-14 22:13:20\n\nbody\n",
		},
		{
			name: "all sections",
			note: types.Note{
				Title:       "[PINNED] Trip",
				CreatedAt:   created,
				Text:        "\nPack bags\n\nBook hotel\n\n",
				Attachments: []string{"img/photo.jpg", "notes.pdf"},
				Labels:      []string{"travel", "2023"},
			},
			want: "# [PINNED] Trip\n\n" +
				"Pack bags\n\nBook hotel\n\n" +
				"![photo.jpg](attachments/img/photo.jpg)\n![notes.pdf](attachments/notes.pdf)\n\n" +
				"Labels: travel, 2023\n",
		},
		{
			name: "whitespace body is dropped",
			note: types.Note{Title: "T", CreatedAt: created, Text: " \n\t\n", Labels: []string{"x"}},
			want: "# T\n\nLabels: x\n",
		},
		{
			name: "checklist body",
			note: types.Note{Title: "Todo", CreatedAt: created, Text: "* [x] Buy milk\n* [ ] Call mom\n"},
			want: "# Todo\n\n* [x] Buy milk\n* [ ] Call mom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown(tt.note))
		})
	}
}

func TestMarkdown_Pure(t *testing.T) {
	note := types.Note{
		Title:       "Same",
		CreatedAt:   created,
		Text:        "line",
		Attachments: []string{"a.png"},
		Labels:      []string{"l"},
	}
	first := Markdown(note)
	second := Markdown(note)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.png"}, note.Attachments)
}

func TestMarkdown_SingleTrailingNewline(t *testing.T) {
	note := types.Note{Title: "T", CreatedAt: created, Text: "trailing\n\n\n"}
	out := Markdown(note)
	assert.True(t, strings.HasSuffix(out, "trailing\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestMarkdown_ParsesAsTaskList(t *testing.T) {
	note := types.Note{
		Title:       "Todo",
		CreatedAt:   created,
		Text:        "* [x] Buy milk\n* [ ] Call mom\n",
		Attachments: []string{"img/photo.jpg"},
	}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	var html bytes.Buffer
	require.NoError(t, md.Convert([]byte(Markdown(note)), &html))

	out := html.String()
	assert.Contains(t, out, "<h1>Todo</h1>")
	assert.Equal(t, 2, strings.Count(out, `type="checkbox"`))
	assert.Equal(t, 1, strings.Count(out, `checked=""`))
	assert.Contains(t, out, `src="attachments/img/photo.jpg"`)
}

func TestMarkdownRenderer(t *testing.T) {
	var r Renderer = MarkdownRenderer{}
	assert.Equal(t, "markdown", r.Name())
	assert.Equal(t, ".md", r.Ext())

	note := types.Note{Title: "T", CreatedAt: created, Text: "x"}
	var buf bytes.Buffer
	require.NoError(t, r.Render(note, &buf))
	assert.Equal(t, Markdown(note), buf.String())
}
