// Package index implements the in-memory inverted index: an
// insertion-ordered mapping from term to the set of document ids
// containing it, with AND-intersection queries.
package index

import "sort"

// Index maps each term to its postings set. Terms and posting ids keep
// insertion order so codecs can reproduce byte-identical output; the
// structure is treated as read-only once a build or decode completes.
type Index struct {
	order    []string
	postings map[string]*PostingSet
}

// PostingSet is an insertion-ordered set of document ids.
type PostingSet struct {
	ids  []uint32
	seen map[uint32]struct{}
}

func newPostingSet() *PostingSet {
	return &PostingSet{seen: make(map[uint32]struct{})}
}

// add inserts id, ignoring repeats.
func (p *PostingSet) add(id uint32) {
	if _, ok := p.seen[id]; ok {
		return
	}
	p.seen[id] = struct{}{}
	p.ids = append(p.ids, id)
}

// IDs returns the ids in insertion order. The slice is shared; callers
// must not modify it.
func (p *PostingSet) IDs() []uint32 {
	return p.ids
}

// Len returns the number of ids in the set.
func (p *PostingSet) Len() int {
	return len(p.ids)
}

// Contains reports whether id is in the set.
func (p *PostingSet) Contains(id uint32) bool {
	_, ok := p.seen[id]
	return ok
}

// New returns an empty Index.
func New() *Index {
	return &Index{postings: make(map[string]*PostingSet)}
}

// FromMap builds an Index from a literal term to ids mapping. Term
// insertion order follows termOrder if given, otherwise it is
// unspecified.
func FromMap(mapping map[string][]uint32, termOrder ...string) *Index {
	ix := New()
	if len(termOrder) > 0 {
		for _, term := range termOrder {
			for _, id := range mapping[term] {
				ix.Add(term, id)
			}
		}
		return ix
	}
	for term, ids := range mapping {
		for _, id := range ids {
			ix.Add(term, id)
		}
	}
	return ix
}

// Add records that the document with the given id contains term.
// Repeated (term, id) pairs are no-ops. Add is only called during index
// construction; queries never mutate the index.
func (ix *Index) Add(term string, docID uint32) {
	ps, ok := ix.postings[term]
	if !ok {
		ps = newPostingSet()
		ix.postings[term] = ps
		ix.order = append(ix.order, term)
	}
	ps.add(docID)
}

// Touch ensures term exists, possibly with an empty postings set. Only
// the codecs use this: a persisted file may carry a term with no ids
// even though a build never produces one.
func (ix *Index) Touch(term string) {
	if _, ok := ix.postings[term]; ok {
		return
	}
	ix.postings[term] = newPostingSet()
	ix.order = append(ix.order, term)
}

// Len returns the number of distinct terms.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Terms returns the terms in insertion order. The slice is shared;
// callers must not modify it.
func (ix *Index) Terms() []string {
	return ix.order
}

// Postings returns the postings set for term, or nil if the term is
// unknown. Absent terms are never stored with an empty set, so a nil
// result always means "term not indexed".
func (ix *Index) Postings(term string) *PostingSet {
	return ix.postings[term]
}

// Query returns the ids of all documents containing every query term
// that is present in the index, sorted ascending. Terms absent from the
// index are ignored rather than forcing an empty result: querying
// ["A", "Z"] with "Z" unknown behaves exactly like querying ["A"]. If no
// query term is present, the result is empty.
func (ix *Index) Query(terms []string) []uint32 {
	present := make([]*PostingSet, 0, len(terms))
	for _, term := range terms {
		if ps, ok := ix.postings[term]; ok {
			present = append(present, ps)
		}
	}
	if len(present) == 0 {
		return []uint32{}
	}

	result := make([]uint32, 0, present[0].Len())
	for _, id := range present[0].IDs() {
		inAll := true
		for _, ps := range present[1:] {
			if !ps.Contains(id) {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Equal reports value equality: the same terms mapped to the same id
// sets, ignoring insertion order on both levels. This is the round-trip
// contract for the storage codecs.
func (ix *Index) Equal(other *Index) bool {
	if other == nil || len(ix.postings) != len(other.postings) {
		return false
	}
	for term, ps := range ix.postings {
		ops := other.postings[term]
		if ops == nil || ps.Len() != ops.Len() {
			return false
		}
		for id := range ps.seen {
			if !ops.Contains(id) {
				return false
			}
		}
	}
	return true
}
