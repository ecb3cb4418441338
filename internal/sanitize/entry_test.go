package sanitize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip pushes a value through JSON encoding the way a stored entry comes
// back from the database.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	blob, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(blob, &out))
	return out
}

func TestEntryRejectsNonObject(t *testing.T) {
	s := New(DefaultLimits())

	assert.Nil(t, s.Entry(nil))
	assert.Nil(t, s.Entry("2024-01-15"))
	assert.Nil(t, s.Entry([]any{map[string]any{"date": "2024-01-15"}}))
	assert.Nil(t, s.Entry(42))
}

func TestEntryRejectsBadDate(t *testing.T) {
	s := New(DefaultLimits())

	for _, date := range []any{"2024-13-01", "2024-02-30", "not-a-date", 20240115, nil, ""} {
		got := s.Entry(map[string]any{"date": date, "thoughts": "fine"})
		assert.Nil(t, got, "date %#v should reject the whole document", date)
	}
}

func TestEntryMissingDatePassesThrough(t *testing.T) {
	// A missing date is not document-fatal here; persistence rejects it later.
	s := New(DefaultLimits())

	got := s.Entry(map[string]any{"thoughts": "fine"})
	require.NotNil(t, got)
	_, present := got["date"]
	assert.False(t, present)
	assert.Equal(t, "fine", got["thoughts"])
}

func TestEntryTextFields(t *testing.T) {
	s := New(DefaultLimits())

	long := strings.Repeat("a", 20000) + "<script>alert('x')</script>"
	got := s.Entry(map[string]any{
		"date":     "2024-01-15",
		"thoughts": long,
		"day":      "a <b>good</b> day",
		"notes":    nil,
	})
	require.NotNil(t, got)

	thoughts := got["thoughts"].(string)
	assert.Len(t, thoughts, 10000)
	assert.NotContains(t, thoughts, "<script")
	assert.Equal(t, "a good day", got["day"])
	assert.Equal(t, "", got["notes"])

	// Absent fields stay absent.
	_, present := got["mood"]
	assert.False(t, present)
}

func TestEntryGeneralMood(t *testing.T) {
	s := New(DefaultLimits())

	cases := []struct {
		in   any
		want any
	}{
		{float64(7), float64(7)},
		{float64(0), float64(0)},
		{float64(-5), 5},
		{float64(99), 5},
		{"abc", 5},
		{"", ""},
		{nil, nil},
		{false, false},
	}
	for _, tc := range cases {
		got := s.Entry(map[string]any{"date": "2024-01-15", "generalMood": tc.in})
		require.NotNil(t, got)
		assert.Equal(t, tc.want, got["generalMood"], "generalMood %#v", tc.in)
	}
}

func TestEntrySleep(t *testing.T) {
	s := New(DefaultLimits())

	got := s.Entry(map[string]any{
		"date": "2024-01-15",
		"sleep": map[string]any{
			"bedtime": "23:30",
			"wake":    "25:00",
			"quality": float64(8),
			"extra":   "dropped",
		},
	})
	require.NotNil(t, got)

	sleep := got["sleep"].(map[string]any)
	assert.Equal(t, "23:30", sleep["bedtime"])
	_, present := sleep["wake"]
	assert.False(t, present, "invalid wake time must be dropped")
	assert.Equal(t, 8, sleep["quality"])
	_, present = sleep["extra"]
	assert.False(t, present)

	// Out-of-range quality is dropped, not clamped.
	got = s.Entry(map[string]any{
		"date":  "2024-01-15",
		"sleep": map[string]any{"quality": float64(15)},
	})
	sleep = got["sleep"].(map[string]any)
	_, present = sleep["quality"]
	assert.False(t, present)

	// Non-object sleep is ignored entirely.
	got = s.Entry(map[string]any{"date": "2024-01-15", "sleep": "later"})
	_, present = got["sleep"]
	assert.False(t, present)
}

func TestEntryTimeLists(t *testing.T) {
	s := New(DefaultLimits())

	times := make([]any, 0, 15)
	for i := 0; i < 15; i++ {
		times = append(times, "22:00")
	}
	// Invalid and non-string members inside the truncation window are
	// filtered after the cut.
	times[3] = "99:99"
	times[4] = float64(2200)

	got := s.Entry(map[string]any{"date": "2024-01-15", "bedtime": times})
	require.NotNil(t, got)

	bedtime := got["bedtime"].([]string)
	assert.Len(t, bedtime, 8)
	for _, v := range bedtime {
		assert.Equal(t, "22:00", v)
	}

	// Non-list input degrades to an empty list.
	got = s.Entry(map[string]any{"date": "2024-01-15", "wakeup": "07:00"})
	assert.Empty(t, got["wakeup"].([]string))
}

func TestEntrySleepHours(t *testing.T) {
	s := New(DefaultLimits())

	hours := []any{true, false, float64(1), float64(0), "x", "", nil}
	got := s.Entry(map[string]any{"date": "2024-01-15", "sleepHours": hours})
	require.NotNil(t, got)
	assert.Equal(t, []bool{true, false, true, false, true, false, false}, got["sleepHours"])

	// Over-length or non-list values collapse to empty, never truncate.
	tooMany := make([]any, 30)
	got = s.Entry(map[string]any{"date": "2024-01-15", "sleepHours": tooMany})
	assert.Equal(t, []bool{}, got["sleepHours"])

	got = s.Entry(map[string]any{"date": "2024-01-15", "sleepHours": "all"})
	assert.Equal(t, []bool{}, got["sleepHours"])
}

func TestEntryItemLists(t *testing.T) {
	s := New(DefaultLimits())

	items := make([]any, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, "coffee")
	}
	got := s.Entry(map[string]any{"date": "2024-01-15", "caffeine": items})
	require.NotNil(t, got)
	assert.Len(t, got["caffeine"].([]any), 50)

	mixed := []any{
		strings.Repeat("x", 300),
		map[string]any{"time": "08:00"},
		map[string]any{"time": "99:00"},
		map[string]any{"other": "key"},
		float64(42),
		"ok",
	}
	got = s.Entry(map[string]any{"date": "2024-01-15", "medication": mixed})
	clean := got["medication"].([]any)
	require.Len(t, clean, 3)
	assert.Len(t, clean[0].(string), 200)
	assert.Equal(t, map[string]any{"time": "08:00"}, clean[1])
	assert.Equal(t, "ok", clean[2])
}

func TestEntryActivityLog(t *testing.T) {
	s := New(DefaultLimits())

	acts := make([]any, 0, 25)
	for i := 0; i < 25; i++ {
		acts = append(acts, map[string]any{
			"id":           "abc",
			"name":         "<i>run</i>",
			"plaisir":      float64(50),
			"maitrise":     float64(-3),
			"satisfaction": float64(7.9),
		})
	}
	slots := make([]any, 0, 30)
	for i := 0; i < 30; i++ {
		slots = append(slots, map[string]any{
			"slot":       "Morning <b>block</b>",
			"activities": acts,
		})
	}

	got := s.Entry(map[string]any{"date": "2024-01-15", "activityLog": slots})
	require.NotNil(t, got)

	log := got["activityLog"].([]map[string]any)
	require.Len(t, log, 24)

	slot := log[0]
	assert.Equal(t, "Morning block", slot["slot"])

	activities := slot["activities"].([]map[string]any)
	require.Len(t, activities, 20)

	act := activities[0]
	assert.Equal(t, 0, act["id"])
	assert.Equal(t, "run", act["name"])
	assert.Equal(t, 10, act["plaisir"])
	assert.Equal(t, 0, act["maitrise"])
	assert.Equal(t, 7, act["satisfaction"])

	// Missing scores default to the neutral midpoint.
	got = s.Entry(map[string]any{
		"date": "2024-01-15",
		"activityLog": []any{
			map[string]any{"slot": "s", "activities": []any{map[string]any{"name": "walk"}}},
		},
	})
	act = got["activityLog"].([]map[string]any)[0]["activities"].([]map[string]any)[0]
	assert.Equal(t, 5, act["plaisir"])
	assert.Equal(t, 5, act["maitrise"])
	assert.Equal(t, 5, act["satisfaction"])
}

func TestEntryTimeSlotsLabelKey(t *testing.T) {
	s := New(DefaultLimits())

	got := s.Entry(map[string]any{
		"date": "2024-01-15",
		"timeSlots": []any{
			map[string]any{"time": "08:00 - 09:00", "activities": []any{}},
			"not-a-slot",
		},
	})
	require.NotNil(t, got)

	slots := got["timeSlots"].([]map[string]any)
	require.Len(t, slots, 1)
	assert.Equal(t, "08:00 - 09:00", slots[0]["time"])
	_, present := slots[0]["slot"]
	assert.False(t, present)
}

func TestEntryViciousCycles(t *testing.T) {
	s := New(DefaultLimits())

	emotions := make([]any, 0, 25)
	for i := 0; i < 25; i++ {
		emotions = append(emotions, map[string]any{
			"id":    float64(i),
			"name":  "<b>fear</b>",
			"score": float64(42),
		})
	}
	cycles := make([]any, 0, 60)
	for i := 0; i < 60; i++ {
		cycles = append(cycles, map[string]any{
			"id":        float64(i),
			"situation": strings.Repeat("s", 2000),
			"emotions":  emotions,
			"thoughts":  []any{map[string]any{"id": float64(1), "text": strings.Repeat("t", 3000)}},
			"behaviors": "not-a-list",
		})
	}

	got := s.Entry(map[string]any{"date": "2024-01-15", "viciousCycles": cycles})
	require.NotNil(t, got)

	clean := got["viciousCycles"].([]map[string]any)
	require.Len(t, clean, 50)

	cycle := clean[0]
	assert.Equal(t, 0, cycle["id"])
	assert.Len(t, cycle["situation"].(string), 1000)

	emos := cycle["emotions"].([]map[string]any)
	require.Len(t, emos, 20)
	assert.Equal(t, "fear", emos[0]["name"])
	assert.Equal(t, 10, emos[0]["score"])

	thoughts := cycle["thoughts"].([]map[string]any)
	require.Len(t, thoughts, 1)
	assert.Equal(t, 1, thoughts[0]["id"])
	assert.Len(t, thoughts[0]["text"].(string), 2000)

	// Non-list sub-fields degrade to empty lists.
	assert.Empty(t, cycle["behaviors"].([]map[string]any))
	assert.Empty(t, cycle["consequences"].([]map[string]any))
}

func TestEntryUnknownKeysDropped(t *testing.T) {
	s := New(DefaultLimits())

	got := s.Entry(map[string]any{
		"date":      "2024-01-15",
		"isAdmin":   true,
		"__proto__": map[string]any{"polluted": true},
		"thoughts":  "ok",
	})
	require.NotNil(t, got)
	assert.Equal(t, "ok", got["thoughts"])
	_, present := got["isAdmin"]
	assert.False(t, present)
	_, present = got["__proto__"]
	assert.False(t, present)
}

func TestEntryIdempotent(t *testing.T) {
	s := New(DefaultLimits())

	raw := map[string]any{
		"date":        "2024-01-15",
		"thoughts":    strings.Repeat("w ", 6000) + "<b>end</b>",
		"generalMood": float64(42),
		"sleep":       map[string]any{"bedtime": "23:00", "quality": float64(12)},
		"bedtime":     []any{"22:00", "bad"},
		"sleepHours":  []any{true, false, float64(1)},
		"exercise":    []any{"run", map[string]any{"time": "07:00"}},
		"activityLog": []any{
			map[string]any{"slot": "am", "activities": []any{
				map[string]any{"id": float64(3), "name": "walk", "plaisir": float64(99)},
			}},
		},
		"viciousCycles": []any{
			map[string]any{"situation": "stress", "emotions": []any{
				map[string]any{"name": "fear", "score": float64(-2)},
			}},
		},
	}

	first := s.Entry(raw)
	require.NotNil(t, first)

	second := s.Entry(roundTrip(t, first))
	require.NotNil(t, second)

	assert.Equal(t, roundTrip(t, first), roundTrip(t, second))
}

// A cleaned entry fed straight back in, without a JSON round trip, must come
// out unchanged. The output's typed slices have to survive the list builders.
func TestEntryIdempotentDirect(t *testing.T) {
	s := New(DefaultLimits())

	first := s.Entry(map[string]any{
		"date":        "2024-01-15",
		"thoughts":    "long day at work",
		"generalMood": float64(42),
		"sleep":       map[string]any{"bedtime": "23:00", "quality": float64(8)},
		"bedtime":     []any{"22:00", "bad"},
		"wakeup":      []any{"06:45"},
		"sleepHours":  []any{true, false, float64(1)},
		"exercise":    []any{"run", map[string]any{"time": "07:00"}},
		"activityLog": []any{
			map[string]any{"slot": "am", "activities": []any{
				map[string]any{"id": float64(3), "name": "walk", "plaisir": float64(99)},
			}},
		},
		"timeSlots": []any{
			map[string]any{"time": "09:00", "activities": []any{}},
		},
		"viciousCycles": []any{
			map[string]any{"situation": "stress", "emotions": []any{
				map[string]any{"name": "fear", "score": float64(-2)},
			}},
		},
	})
	require.NotNil(t, first)
	require.Len(t, first["bedtime"], 1)
	require.Len(t, first["activityLog"], 1)

	second := s.Entry(first)
	require.NotNil(t, second)
	assert.Equal(t, first, second)
}

func TestEntryEndToEnd(t *testing.T) {
	s := New(DefaultLimits())

	blob := `{
		"date": "2024-03-02",
		"thoughts": "a <b>mixed</b> day",
		"generalMood": 6,
		"sleep": {"bedtime": "23:15", "wake": "07:30", "quality": 7},
		"bedtime": ["23:15"],
		"sleepHours": [false, false, true, true],
		"caffeine": ["espresso", {"time": "08:30"}],
		"activityLog": [
			{"slot": "morning", "activities": [
				{"id": 1, "name": "swim", "plaisir": 8, "maitrise": 6, "satisfaction": 7}
			]}
		],
		"viciousCycles": [
			{"id": 1, "situation": "deadline", "emotions": [{"id": 1, "name": "stress", "score": 8}],
			 "thoughts": [{"id": 1, "text": "too much"}], "behaviors": [], "consequences": []}
		]
	}`
	var raw any
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))

	got := s.Entry(raw)
	require.NotNil(t, got)

	assert.Equal(t, "2024-03-02", got["date"])
	assert.Equal(t, "a mixed day", got["thoughts"])
	assert.Equal(t, float64(6), got["generalMood"])
	assert.Equal(t, []bool{false, false, true, true}, got["sleepHours"])

	caffeine := got["caffeine"].([]any)
	assert.Equal(t, "espresso", caffeine[0])
	assert.Equal(t, map[string]any{"time": "08:30"}, caffeine[1])

	act := got["activityLog"].([]map[string]any)[0]["activities"].([]map[string]any)[0]
	assert.Equal(t, map[string]any{
		"id": 1, "name": "swim", "plaisir": 8, "maitrise": 6, "satisfaction": 7,
	}, act)

	cycle := got["viciousCycles"].([]map[string]any)[0]
	assert.Equal(t, "deadline", cycle["situation"])
	assert.Equal(t, 8, cycle["emotions"].([]map[string]any)[0]["score"])
}
