package normalize

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilters(t *testing.T) {
	raw := url.Values{
		"list":      {"abc"},
		"status":    {"TODO", "DONE"},
		"completed": {""},
		"ignored":   {"x"},
	}
	keyMap := map[string]string{
		"list":      "task_list_id",
		"status":    "status",
		"completed": "completed",
	}

	filters := Filters(raw, keyMap)

	assert.Equal(t, "abc", filters["task_list_id"])
	assert.Equal(t, "TODO,DONE", filters["status"])
	_, hasCompleted := filters["completed"]
	assert.False(t, hasCompleted, "empty values are omitted, not kept as blank")
	_, hasIgnored := filters["ignored"]
	assert.False(t, hasIgnored, "unmapped keys are dropped")
}

func TestBool(t *testing.T) {
	assert.True(t, Bool("true"))
	assert.False(t, Bool("True"))
	assert.False(t, Bool("1"))
	assert.False(t, Bool("yes"))
	assert.False(t, Bool(""))
}

func TestBool_NativeTypes(t *testing.T) {
	// JSON bodies decode booleans as bool, not string.
	assert.True(t, Bool(true))
	assert.False(t, Bool(false))
	assert.False(t, Bool(nil))
	assert.False(t, Bool(1.0))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 4.0, Number("4", 0))
	assert.Equal(t, 2.5, Number("2.5", 0))
	assert.Equal(t, 7.0, Number("oops", 7))
	assert.Equal(t, 7.0, Number("", 7))
}

func TestNumber_NativeTypes(t *testing.T) {
	// JSON bodies decode numbers as float64.
	assert.Equal(t, 4.0, Number(float64(4), 0))
	assert.Equal(t, 2.0, Number(int(2), 0))
	assert.Equal(t, 7.0, Number(nil, 7))
	assert.Equal(t, 7.0, Number(true, 7))
}

func TestDate_NullTokens(t *testing.T) {
	for _, v := range []string{"", "null", "n/a", "-", "N/A"} {
		assert.Nil(t, Date(v), "token %q should map to nil", v)
	}
	assert.Nil(t, Date(nil))
}

func TestDate_ISO(t *testing.T) {
	got := Date("2026-03-15")
	if assert.NotNil(t, got) {
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	got = Date("2026-03-15T10:30:00Z")
	if assert.NotNil(t, got) {
		assert.Equal(t, 10, got.Hour())
	}
}

func TestDate_DayFirst(t *testing.T) {
	for _, v := range []string{"15.03.2026", "15/03/2026", "15-03-2026"} {
		got := Date(v)
		if assert.NotNil(t, got, "layout %q", v) {
			assert.Equal(t, time.March, got.Month())
			assert.Equal(t, 15, got.Day())
		}
	}

	// 31st of February must not silently roll over into March.
	assert.Nil(t, Date("31.02.2026"))
}

func TestDate_ExcelSerial(t *testing.T) {
	// Serial 25569 is the Unix epoch in the 1900 date system.
	got := Date(float64(25569))
	if assert.NotNil(t, got) {
		assert.Equal(t, 1970, got.Year())
		assert.Equal(t, time.January, got.Month())
		assert.Equal(t, 1, got.Day())
	}

	got = Date("45000")
	if assert.NotNil(t, got) {
		assert.Equal(t, 2023, got.Year())
	}
}

func TestDate_PassThrough(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	got := Date(now)
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(now))
	}

	assert.Nil(t, Date("definitely not a date"))
	assert.Nil(t, Date(struct{}{}))
}
