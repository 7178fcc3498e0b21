package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/entities"
	"sparc/pkg/task"
)

func sample() []entities.TimeEntry {
	created := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
	three := 3
	return []entities.TimeEntry{
		{
			ID:           "a",
			Task:         task.ProspectiveAudit,
			Minutes:      45,
			PatientCount: &three,
			IsTypicalDay: true,
			OccurredOn:   entities.DateOf(2026, 10, 19),
			Comment:      `Entry with "quotes" and, commas`,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		{
			ID:         "b",
			Task:       task.Other,
			OtherTask:  "Antibiogram",
			Minutes:    20,
			OccurredOn: entities.At(time.Date(2026, 10, 20, 23, 30, 0, 0, time.UTC)),
			Comment:    "line one\nline two",
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}
}

func TestRow(t *testing.T) {
	got := Row(sample()[0], time.UTC)
	want := []string{
		"2026-10-19",
		task.ProspectiveAudit,
		"",
		"45",
		"3",
		"Yes",
		`Entry with "quotes" and, commas`,
		"2026-10-19T14:30:00Z",
		"2026-10-19T14:30:00Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestRowDateUsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	row := Row(sample()[1], ny)
	assert.Equal(t, "2026-10-20", row[0])
	assert.Equal(t, "", row[4])
	assert.Equal(t, "No", row[5])
}

func TestCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), time.UTC))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Date,Task,Other Task,Minutes,Patient Count,Typical Day,Comment,Created At,Updated At\n"))
	assert.Contains(t, out, `"Entry with ""quotes"" and, commas"`)
	assert.Contains(t, out, "\"line one\nline two\"")
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), time.UTC))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, `Entry with "quotes" and, commas`, rows[1][6])
	assert.Equal(t, "line one\nline two", rows[2][6])
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, time.UTC))
	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}

func TestXLSXRoundTrip(t *testing.T) {
	entries := sample()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, entries, time.UTC))

	rows, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	want := [][]string{Header, Row(entries[0], time.UTC), Row(entries[1], time.UTC)}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("xlsx rows mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLRoundTrip(t *testing.T) {
	entries := sample()
	entries[1].Comment = "<b>not bold</b> & done"
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, entries, time.UTC))
	assert.NotContains(t, buf.String(), "<b>not bold</b>")

	rows, err := ReadHTML(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "<b>not bold</b> & done", rows[2][6])
}

func TestHTMLKeepsCellWhitespace(t *testing.T) {
	entries := sample()
	entries[0].Comment = "  padded legacy note "
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, entries, time.UTC))

	rows, err := ReadHTML(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "  padded legacy note ", rows[1][6])
	assert.Equal(t, "line one\nline two", rows[2][6])
}

func TestRowDateOfZonelessDateTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	e := sample()[1]
	e.OccurredOn, err = entities.ParseOccurrence("2026-10-19T01:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", Row(e, ny)[0])
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "sparc-entries-2026-10-19.xlsx", Filename(XLSX, now))
	assert.Equal(t, "text/csv; charset=utf-8", CSV.ContentType())
}
