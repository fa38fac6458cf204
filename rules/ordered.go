package rules

import (
	"bytes"
	"encoding/json"
)

// orderedMap is a string-keyed map that preserves insertion order, so rule
// outputs serialize in evaluation order.
type orderedMap[V any] struct {
	ids    []string
	values map[string]V
}

func (m *orderedMap[V]) add(id string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.values[id] = v
}

// Get returns the value stored under id.
func (m *orderedMap[V]) Get(id string) (V, bool) {
	v, ok := m.values[id]
	return v, ok
}

// IDs returns the keys in insertion order.
func (m *orderedMap[V]) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Len reports the number of entries.
func (m *orderedMap[V]) Len() int { return len(m.ids) }

// Each visits entries in insertion order.
func (m *orderedMap[V]) Each(fn func(id string, v V)) {
	for _, id := range m.ids {
		fn(id, m.values[id])
	}
}

// MarshalJSON writes a JSON object whose keys appear in insertion order.
// Keys and values are encoded without HTML escaping so URLs and ampersands in
// labels survive verbatim through Payload.JSON.
func (m *orderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, id := range m.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(id); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err := enc.Encode(m.values[id]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EvaluationSet is the insertion-ordered mapping of rule id to Evaluation.
type EvaluationSet struct {
	orderedMap[*Evaluation]
}

// Merge appends every entry of other, preserving its order.
func (s *EvaluationSet) Merge(other *EvaluationSet) {
	other.Each(func(id string, ev *Evaluation) { s.add(id, ev) })
}

// Passed counts entries whose evaluation passed.
func (s *EvaluationSet) Passed() int {
	n := 0
	s.Each(func(_ string, ev *Evaluation) {
		if ev.Passed {
			n++
		}
	})
	return n
}

// ImageMatchSet is the insertion-ordered mapping of expectation id to
// ImageMatch.
type ImageMatchSet struct {
	orderedMap[*ImageMatch]
}

// Matched counts expectations with a match (including fallback matches).
func (s *ImageMatchSet) Matched() int {
	n := 0
	s.Each(func(_ string, m *ImageMatch) {
		if m.Matched {
			n++
		}
	})
	return n
}
