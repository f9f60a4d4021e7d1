package notes

// Groups is a partition of notes by priority. Every bucket keeps the relative
// order of the source collection and is never nil.
type Groups struct {
	Important []Note `json:"important"`
	Normal    []Note `json:"normal"`
	Delayed   []Note `json:"delayed"`
}

// GroupByPriority partitions notes into the three priority buckets.
// Notes with an unknown priority are left out.
func GroupByPriority(notes []Note) Groups {
	g := Groups{
		Important: []Note{},
		Normal:    []Note{},
		Delayed:   []Note{},
	}
	for _, n := range notes {
		switch n.Priority {
		case Important:
			g.Important = append(g.Important, n)
		case Normal:
			g.Normal = append(g.Normal, n)
		case Delayed:
			g.Delayed = append(g.Delayed, n)
		}
	}
	return g
}

// Bucket returns the notes filed under p.
func (g Groups) Bucket(p Priority) []Note {
	switch p {
	case Important:
		return g.Important
	case Normal:
		return g.Normal
	case Delayed:
		return g.Delayed
	}
	return nil
}

// Len returns the number of grouped notes.
func (g Groups) Len() int {
	return len(g.Important) + len(g.Normal) + len(g.Delayed)
}
