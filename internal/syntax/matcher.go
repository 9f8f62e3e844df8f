package syntax

// Matcher implements the draw pipeline's per-rule match cache (§4.2 step 4):
// each rule remembers its most recently found match; a rule whose cache has
// fallen behind the scan cursor is re-run from there; the first rule
// (declaration order) whose cached match covers the current byte wins.
// Zero-length matches are discarded so they can never pin the scanner in
// place.
type Matcher struct {
	def    *Definition
	window string
	cache  []cachedMatch
	active int // index into def.Rules currently in force, or -1
}

type cachedMatch struct {
	start, end int
	valid      bool
}

// NewMatcher prepares a Matcher over a single draw pass's byte window. The
// window must not change for the lifetime of the Matcher — a new draw
// allocates a new Matcher.
func NewMatcher(def *Definition, window string) *Matcher {
	m := &Matcher{
		def:    def,
		window: window,
		active: -1,
	}
	if def != nil {
		m.cache = make([]cachedMatch, len(def.Rules))
	}
	return m
}

// StyleSlotAt returns the style slot in force at byte offset pos and true,
// or (NoStyle, false) if no rule matches there. pos must be monotonically
// non-decreasing across calls within one draw pass, mirroring the
// left-to-right scan the draw pipeline performs.
func (m *Matcher) StyleSlotAt(pos int) (StyleSlot, bool) {
	if m == nil || m.def == nil {
		return NoStyle, false
	}

	if m.active >= 0 {
		c := m.cache[m.active]
		if c.valid && pos >= c.start && pos < c.end {
			return m.def.Rules[m.active].Slot, true
		}
		m.invalidateOverlapping(c)
		m.active = -1
	}

	for i, rule := range m.def.Rules {
		c := &m.cache[i]
		if !c.valid || c.end <= pos {
			start, end, ok := findFrom(rule, m.window, pos)
			if !ok || start == end {
				c.valid = false
				continue
			}
			c.start, c.end, c.valid = start, end, true
		}
		if c.valid && pos >= c.start && pos < c.end {
			m.active = i
			return rule.Slot, true
		}
	}
	return NoStyle, false
}

// invalidateOverlapping clears every cached match, the one just vacated
// included, that overlaps the region the scanner consumed while that match
// was in force, so a stale cache can never re-surface past where the
// scanner has already moved on.
func (m *Matcher) invalidateOverlapping(consumed cachedMatch) {
	for i := range m.cache {
		c := m.cache[i]
		if c.valid && c.start < consumed.end && c.end > consumed.start {
			m.cache[i].valid = false
		}
	}
}

// findFrom runs rule's regex against window starting no earlier than from,
// returning the match's [start,end) byte offsets.
func findFrom(rule Rule, window string, from int) (start, end int, ok bool) {
	if from < 0 {
		from = 0
	}
	if from > len(window) {
		return 0, 0, false
	}
	match, err := rule.Regex.FindStringMatchStartingAt(window, from)
	if err != nil || match == nil {
		return 0, 0, false
	}
	return match.Index, match.Index + match.Length, true
}
