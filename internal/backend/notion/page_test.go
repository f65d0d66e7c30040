package notion_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notionhabit/internal/backend/notion"
	"notionhabit/internal/service"
)

const pageJSON = `{
  "object": "page",
  "id": "59833787-2cf9-4fdf-8782-e53db20768a5",
  "properties": {
    "Name": {"id": "title", "type": "title", "title": [{"type": "text", "text": {"content": "Read"}, "plain_text": "Read"}]},
    "Date": {"type": "date", "date": {"start": "2024-03-13", "end": null}},
    "Tags": {"type": "multi_select", "multi_select": [{"name": "Habit"}, {"name": "Morning"}]},
    "Status": {"type": "select", "select": {"name": "To-Do"}}
  }
}`

func TestParsePage(t *testing.T) {
	rec, err := notion.ParsePage(json.RawMessage(pageJSON))
	require.NoError(t, err)

	assert.Equal(t, service.Record{
		ID:     "59833787-2cf9-4fdf-8782-e53db20768a5",
		Name:   "Read",
		Date:   "2024-03-13",
		Tag:    "Habit",
		Status: service.StatusToDo,
	}, rec)
}

func TestParsePage_DateTimeStart(t *testing.T) {
	raw := `{"id":"p1","properties":{
		"Name":{"title":[{"text":{"content":"Run"}}]},
		"Date":{"date":{"start":"2024-03-13T07:00:00.000+08:00"}},
		"Tags":{"multi_select":[{"name":"Habit"}]},
		"Status":{"select":{"name":"Done"}}}}`

	rec, err := notion.ParsePage(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", rec.Date)
}

func TestParsePage_UnknownStatusTolerated(t *testing.T) {
	raw := `{"id":"p1","properties":{
		"Name":{"title":[{"text":{"content":"Run"}}]},
		"Date":{"date":{"start":"2024-03-13"}},
		"Tags":{"multi_select":[{"name":"Habit"}]},
		"Status":{"select":{"name":"Skipped"}}}}`

	rec, err := notion.ParsePage(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, service.Status("Skipped"), rec.Status)
	assert.False(t, rec.Status.Known())
}

func TestParsePage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{
			name: "missing id",
			raw:  `{"properties":{}}`,
			path: "id",
		},
		{
			name: "empty title",
			raw: `{"id":"p1","properties":{"Name":{"title":[]},"Date":{"date":{"start":"2024-03-13"}},
				"Tags":{"multi_select":[{"name":"Habit"}]},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Name.title[0].text.content",
		},
		{
			name: "missing date",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":"Run"}}]},"Date":{"date":null},
				"Tags":{"multi_select":[{"name":"Habit"}]},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Date.date.start",
		},
		{
			name: "empty tag set",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":"Run"}}]},"Date":{"date":{"start":"2024-03-13"}},
				"Tags":{"multi_select":[]},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Tags.multi_select[0].name",
		},
		{
			name: "status unset",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":"Run"}}]},"Date":{"date":{"start":"2024-03-13"}},
				"Tags":{"multi_select":[{"name":"Habit"}]},"Status":{"select":null}}}`,
			path: "properties.Status.select.name",
		},
		{
			name: "bad date",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":"Run"}}]},"Date":{"date":{"start":"yesterday"}},
				"Tags":{"multi_select":[{"name":"Habit"}]},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Date.date.start (YYYY-MM-DD)",
		},
		{
			name: "numeric title content",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":42}}]},"Date":{"date":{"start":"2024-03-13"}},
				"Tags":{"multi_select":[{"name":"Habit"}]},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Name.title.text.content",
		},
		{
			name: "multi_select object",
			raw: `{"id":"p1","properties":{"Name":{"title":[{"text":{"content":"Run"}}]},"Date":{"date":{"start":"2024-03-13"}},
				"Tags":{"multi_select":{"name":"Habit"}},"Status":{"select":{"name":"Done"}}}}`,
			path: "properties.Tags.multi_select",
		},
		{
			name: "not an object",
			raw:  `["p1"]`,
			path: "page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notion.ParsePage(json.RawMessage(tt.raw))

			var malformed *service.MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.path, malformed.Path)
		})
	}
}
