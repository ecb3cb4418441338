package sanitize

// Text strips every markup tag from v and truncates the result to max runes.
// No tags survive under any input; truncation is a silent cut. Non-string or
// empty input yields the empty string.
func (s *Sanitizer) Text(v any, max int) string {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return ""
	}
	clean := s.policy.Sanitize(raw)
	if max > 0 {
		if runes := []rune(clean); len(runes) > max {
			return string(runes[:max])
		}
	}
	return clean
}
