package domain

// SummaryEntry is one currency's current holding in a summary view.
type SummaryEntry[C comparable] struct {
	Currency C      `json:"currency"`
	Value    uint64 `json:"value"`
}

// Summary is an insertion-ordered mapping from currency to its current
// balance value. Order is the order currencies were first inserted; a
// currency deleted and re-inserted moves to the end.
type Summary[C comparable] struct {
	order  []C
	values map[C]uint64
}

// NewSummary creates an empty summary.
func NewSummary[C comparable]() *Summary[C] {
	return &Summary[C]{values: make(map[C]uint64)}
}

// Len returns the number of currencies in the summary.
func (s *Summary[C]) Len() int {
	return len(s.order)
}

// Has reports whether currency is present.
func (s *Summary[C]) Has(currency C) bool {
	_, ok := s.values[currency]
	return ok
}

// Get returns the value for currency and whether it is present.
func (s *Summary[C]) Get(currency C) (uint64, bool) {
	v, ok := s.values[currency]
	return v, ok
}

// Set stores value for currency, appending it to the order if absent.
func (s *Summary[C]) Set(currency C, value uint64) {
	if _, ok := s.values[currency]; !ok {
		s.order = append(s.order, currency)
	}
	s.values[currency] = value
}

// Delete removes currency from the summary. Removing an absent currency is
// a no-op.
func (s *Summary[C]) Delete(currency C) {
	if _, ok := s.values[currency]; !ok {
		return
	}
	delete(s.values, currency)
	for i, c := range s.order {
		if c == currency {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Entries returns a copy of the summary in insertion order.
func (s *Summary[C]) Entries() []SummaryEntry[C] {
	out := make([]SummaryEntry[C], 0, len(s.order))
	for _, c := range s.order {
		out = append(out, SummaryEntry[C]{Currency: c, Value: s.values[c]})
	}
	return out
}
