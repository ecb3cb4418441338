// Package sanitize validates untrusted journal documents and rebuilds them
// into bounded, markup-free entries safe to persist and redisplay.
//
// The engine is total over any JSON-like value: a malformed subfield is
// clamped, defaulted or dropped without discarding its siblings. Only two
// conditions reject a whole document -- input that is not an object, and a
// present but malformed date key.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// Caps for item-level fields, tighter than Limits.MaxTextLength.
const (
	itemTextCap     = 200
	slotLabelCap    = 50
	activityNameCap = 500
	situationCap    = 1000
	emotionNameCap  = 200
	cycleTextCap    = 2000
)

// textFields are the free-form prose fields carried at the top level of an
// entry, each capped at Limits.MaxTextLength.
var textFields = []string{"thoughts", "day", "notes", "mood", "dailyNote"}

// itemListFields are the generic per-day logs whose items are either plain
// strings or {time: "HH:MM"} records.
var itemListFields = []string{"exercise", "caffeine", "cannabis", "medication", "custom"}

// cycleItemFields are the per-cycle sub-lists of {id, text} records.
var cycleItemFields = []string{"thoughts", "behaviors", "consequences"}

// Sanitizer rebuilds untrusted journal documents against a fixed allow-list
// schema. It is stateless per call and safe for concurrent use.
type Sanitizer struct {
	limits Limits
	policy *bluemonday.Policy
}

// New returns a Sanitizer bounded by the given limits.
func New(limits Limits) *Sanitizer {
	return &Sanitizer{
		limits: limits,
		policy: bluemonday.StrictPolicy(),
	}
}

// Entry validates and rebuilds an untrusted journal document. It returns nil
// when the input is not an object at all, or when a date key is present but
// malformed; both are document-fatal. Every other malformed subfield is
// handled locally, so one bad item never loses an otherwise-valid day. The
// input is never mutated. Callers persisting the result must additionally
// reject entries lacking a date key.
func (s *Sanitizer) Entry(raw any) map[string]any {
	data, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]any)

	if v, present := data["date"]; present {
		date, ok := v.(string)
		if !ok || !ValidDate(date) {
			return nil
		}
		out["date"] = date
	}

	for _, field := range textFields {
		if v, present := data[field]; present {
			out[field] = s.Text(v, s.limits.MaxTextLength)
		}
	}

	// The one top-level score uses default substitution, not clamping:
	// an out-of-range mood becomes the neutral midpoint, while empty or
	// in-range values pass through untouched.
	if v, present := data["generalMood"]; present {
		if !isZero(v) && !ValidNumber(v, 0, 10) {
			out["generalMood"] = defaultScore
		} else {
			out["generalMood"] = v
		}
	}

	if obj, ok := data["sleep"].(map[string]any); ok {
		out["sleep"] = s.sleep(obj)
	}

	for _, field := range []string{"bedtime", "wakeup"} {
		if v, present := data[field]; present {
			out[field] = s.timeList(v)
		}
	}

	if v, present := data["sleepHours"]; present {
		out["sleepHours"] = s.sleepHours(v)
	}

	for _, field := range itemListFields {
		if v, present := data[field]; present {
			out[field] = s.itemList(v)
		}
	}

	if v, present := data["activityLog"]; present {
		out["activityLog"] = s.slotList(v, "slot")
	}
	if v, present := data["timeSlots"]; present {
		out["timeSlots"] = s.slotList(v, "time")
	}

	if v, present := data["viciousCycles"]; present {
		out["viciousCycles"] = s.cycleList(v)
	}

	return out
}

// sleep rebuilds the optional nested sleep object. Invalid times are dropped
// silently; quality is kept only when it passes the 0-10 range check.
func (s *Sanitizer) sleep(obj map[string]any) map[string]any {
	clean := make(map[string]any)
	for _, field := range []string{"bedtime", "wake"} {
		if v, present := obj[field]; present {
			if t, ok := v.(string); ok && ValidTime(t) {
				clean[field] = t
			}
		}
	}
	if v, present := obj["quality"]; present && ValidNumber(v, 0, 10) {
		clean["quality"] = intOr(v, 0)
	}
	return clean
}

// timeList truncates to MaxTimeEntries and keeps only valid HH:MM strings.
func (s *Sanitizer) timeList(v any) []string {
	items, _ := asList(v)
	if len(items) > s.limits.MaxTimeEntries {
		items = items[:s.limits.MaxTimeEntries]
	}
	clean := make([]string, 0, len(items))
	for _, item := range items {
		if t, ok := item.(string); ok && ValidTime(t) {
			clean = append(clean, t)
		}
	}
	return clean
}

// sleepHours accepts only a list of at most MaxSleepHours elements, each
// coerced to a boolean; anything else becomes an empty list.
func (s *Sanitizer) sleepHours(v any) []bool {
	items, ok := asList(v)
	if !ok || len(items) > s.limits.MaxSleepHours {
		return []bool{}
	}
	hours := make([]bool, 0, len(items))
	for _, item := range items {
		hours = append(hours, truthy(item))
	}
	return hours
}

// itemList truncates to MaxListItems. Items are either plain strings
// (normalized text) or objects carrying a valid time; any other shape is
// skipped.
func (s *Sanitizer) itemList(v any) []any {
	items, _ := asList(v)
	if len(items) > s.limits.MaxListItems {
		items = items[:s.limits.MaxListItems]
	}
	clean := make([]any, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			clean = append(clean, s.Text(it, itemTextCap))
		case map[string]any:
			if t, ok := it["time"].(string); ok && ValidTime(t) {
				clean = append(clean, map[string]any{"time": t})
			}
		}
	}
	return clean
}

// slotList rebuilds a slot-based activity list. activityLog and timeSlots
// share the same nested shape and differ only in the slot label key.
func (s *Sanitizer) slotList(v any, labelKey string) []map[string]any {
	slots, _ := asList(v)
	if len(slots) > s.limits.MaxSlots {
		slots = slots[:s.limits.MaxSlots]
	}
	clean := make([]map[string]any, 0, len(slots))
	for _, raw := range slots {
		slotData, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		clean = append(clean, map[string]any{
			labelKey:     s.Text(slotData[labelKey], slotLabelCap),
			"activities": s.activities(slotData["activities"]),
		})
	}
	return clean
}

// activities reconstructs each activity record from scratch: identifiers
// coerce-or-default to 0, names are normalized, and the three sentiment
// scores are clamped into range rather than rejected.
func (s *Sanitizer) activities(v any) []map[string]any {
	acts, _ := asList(v)
	if len(acts) > s.limits.MaxActivities {
		acts = acts[:s.limits.MaxActivities]
	}
	clean := make([]map[string]any, 0, len(acts))
	for _, raw := range acts {
		act, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		clean = append(clean, map[string]any{
			"id":           intOr(act["id"], 0),
			"name":         s.Text(act["name"], activityNameCap),
			"plaisir":      clamp(intOr(act["plaisir"], defaultScore), 0, 10),
			"maitrise":     clamp(intOr(act["maitrise"], defaultScore), 0, 10),
			"satisfaction": clamp(intOr(act["satisfaction"], defaultScore), 0, 10),
		})
	}
	return clean
}

// cycleList rebuilds the vicious-cycle thought records.
func (s *Sanitizer) cycleList(v any) []map[string]any {
	cycles, _ := asList(v)
	if len(cycles) > s.limits.MaxCycles {
		cycles = cycles[:s.limits.MaxCycles]
	}
	clean := make([]map[string]any, 0, len(cycles))
	for _, raw := range cycles {
		cycle, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out := map[string]any{
			"id":        intOr(cycle["id"], 0),
			"situation": s.Text(cycle["situation"], situationCap),
			"emotions":  s.emotions(cycle["emotions"]),
		}
		for _, field := range cycleItemFields {
			out[field] = s.cycleItems(cycle[field])
		}
		clean = append(clean, out)
	}
	return clean
}

func (s *Sanitizer) emotions(v any) []map[string]any {
	items, _ := asList(v)
	if len(items) > s.limits.MaxCycleItems {
		items = items[:s.limits.MaxCycleItems]
	}
	clean := make([]map[string]any, 0, len(items))
	for _, raw := range items {
		emo, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		clean = append(clean, map[string]any{
			"id":    intOr(emo["id"], 0),
			"name":  s.Text(emo["name"], emotionNameCap),
			"score": clamp(intOr(emo["score"], defaultScore), 0, 10),
		})
	}
	return clean
}

func (s *Sanitizer) cycleItems(v any) []map[string]any {
	items, _ := asList(v)
	if len(items) > s.limits.MaxCycleItems {
		items = items[:s.limits.MaxCycleItems]
	}
	clean := make([]map[string]any, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		clean = append(clean, map[string]any{
			"id":   intOr(item["id"], 0),
			"text": s.Text(item["text"], cycleTextCap),
		})
	}
	return clean
}
