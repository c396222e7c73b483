package eval

import "sort"

// Entry is a distinct text and the number of times it was recorded.
type Entry struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Frequency is a multiset of strings. The zero value is empty and ready
// to use.
type Frequency struct {
	counts map[string]int
	size   int
}

func NewFrequency() *Frequency {
	return &Frequency{counts: make(map[string]int)}
}

func (f *Frequency) Add(text string) {
	f.AddN(text, 1)
}

func (f *Frequency) AddN(text string, n int) {
	if n <= 0 {
		return
	}
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[text] += n
	f.size += n
}

func (f *Frequency) Count(text string) int {
	return f.counts[text]
}

// Len is the number of distinct texts.
func (f *Frequency) Len() int {
	return len(f.counts)
}

// Size is the number of recorded occurrences.
func (f *Frequency) Size() int {
	return f.size
}

func (f *Frequency) Merge(other *Frequency) {
	for text, count := range other.counts {
		f.AddN(text, count)
	}
}

// Entries lists the texts by descending count, equal counts in ascending
// text order.
func (f *Frequency) Entries() []Entry {
	retval := make([]Entry, 0, len(f.counts))
	for text, count := range f.counts {
		retval = append(retval, Entry{text, count})
	}
	sort.Slice(retval, func(i, j int) bool {
		if retval[i].Count != retval[j].Count {
			return retval[i].Count > retval[j].Count
		}
		return retval[i].Text < retval[j].Text
	})
	return retval
}

// Repeated is Entries restricted to texts recorded more than once.
func (f *Frequency) Repeated() []Entry {
	entries := f.Entries()
	for i, e := range entries {
		if e.Count <= 1 {
			return entries[:i]
		}
	}
	return entries
}
