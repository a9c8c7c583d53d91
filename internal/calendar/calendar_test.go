package calendar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type stubSource struct {
	name     string
	holidays []Holiday
	err      error
}

func (s stubSource) Name() string                 { return s.name }
func (s stubSource) Holidays() ([]Holiday, error) { return s.holidays, s.err }

func TestFileCalendar_Holidays(t *testing.T) {
	path := writeFile(t, "holidays.txt", strings.Join([]string{
		"# public holidays",
		"",
		"2024-01-01 New Year's Day",
		"2024-06-30   Independence Day  ",
		"not-a-date Broken line",
		"2024-02-30 Impossible",
		"2024-12-25",
	}, "\n"))

	cal := NewFileCalendar(path, zap.NewNop())
	holidays, err := cal.Holidays()
	require.NoError(t, err)

	require.Len(t, holidays, 3)
	assert.Equal(t, dateutil.Date(2024, 1, 1), holidays[0].Date)
	assert.Equal(t, "New Year's Day", holidays[0].Note)
	assert.Equal(t, "Independence Day", holidays[1].Note)
	assert.Equal(t, dateutil.Date(2024, 12, 25), holidays[2].Date)
	assert.Empty(t, holidays[2].Note)
	assert.Equal(t, path, cal.Name())
}

func TestFileCalendar_MissingFile(t *testing.T) {
	cal := NewFileCalendar(filepath.Join(t.TempDir(), "absent.txt"), zap.NewNop())

	_, err := cal.Holidays()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestICSCalendar_Holidays(t *testing.T) {
	content := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//par-generator//test//EN",
		"BEGIN:VEVENT",
		"UID:1@test",
		"SUMMARY:Heroes Day",
		"DTSTART;VALUE=DATE:20240116",
		"DTEND;VALUE=DATE:20240117",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"SUMMARY:Easter break",
		"DTSTART;VALUE=DATE:20240329",
		"DTEND;VALUE=DATE:20240402",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:3@test",
		"SUMMARY:Staff retreat",
		"DTSTART:20240605T080000Z",
		"DTEND:20240605T170000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:4@test",
		"SUMMARY:No start",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	path := writeFile(t, "holidays.ics", content)

	cal := NewICSCalendar(path, zap.NewNop())
	holidays, err := cal.Holidays()
	require.NoError(t, err)

	dates := []string{}
	for _, h := range holidays {
		dates = append(dates, h.Date.Format(dateutil.ISODate))
	}
	assert.Equal(t, []string{
		"2024-01-16",
		"2024-03-29", "2024-03-30", "2024-03-31", "2024-04-01",
		"2024-06-05",
	}, dates)
	assert.Equal(t, "Heroes Day", holidays[0].Note)
	assert.Equal(t, "Staff retreat", holidays[5].Note)
}

func TestICSCalendar_InvalidFile(t *testing.T) {
	_, err := NewICSCalendar(filepath.Join(t.TempDir(), "absent.ics"), zap.NewNop()).Holidays()
	assert.Error(t, err)
}

func TestCompositeCalendar_Holidays(t *testing.T) {
	first := stubSource{name: "first", holidays: []Holiday{
		{Date: dateutil.Date(2024, 3, 8), Note: "Women's Day"},
		{Date: dateutil.Date(2024, 1, 1), Note: "New Year"},
	}}
	second := stubSource{name: "second", holidays: []Holiday{
		{Date: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC), Note: "duplicate"},
		{Date: dateutil.Date(2024, 2, 1), Note: "Extra"},
	}}

	cc := NewCompositeCalendar(zap.NewNop(), first, second)
	holidays, err := cc.Holidays()
	require.NoError(t, err)

	require.Len(t, holidays, 3)
	assert.Equal(t, dateutil.Date(2024, 1, 1), holidays[0].Date)
	assert.Equal(t, dateutil.Date(2024, 2, 1), holidays[1].Date)
	assert.Equal(t, dateutil.Date(2024, 3, 8), holidays[2].Date)
	assert.Equal(t, "Women's Day", holidays[2].Note)
}

func TestCompositeCalendar_SourceError(t *testing.T) {
	boom := errors.New("boom")
	cc := NewCompositeCalendar(zap.NewNop(),
		stubSource{name: "ok"},
		stubSource{name: "broken", err: boom},
	)

	_, err := cc.Holidays()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func TestInPeriod(t *testing.T) {
	holidays := []Holiday{
		{Date: dateutil.Date(2024, 3, 1)},
		{Date: dateutil.Date(2024, 2, 29), Note: "end bound"},
		{Date: dateutil.Date(2024, 2, 16), Note: "start bound"},
		{Date: dateutil.Date(2024, 2, 15)},
	}

	got := InPeriod(holidays, dateutil.Date(2024, 2, 16), dateutil.Date(2024, 2, 29))

	require.Len(t, got, 2)
	assert.Equal(t, "start bound", got[0].Note)
	assert.Equal(t, "end bound", got[1].Note)
	assert.Equal(t, []time.Time{dateutil.Date(2024, 2, 16), dateutil.Date(2024, 2, 29)}, Dates(got))
}
