package fetch

import (
	"sort"

	"tableflip.dev/todo/pkg/entry"
)

type sectionChange struct {
	info  SectionInfo
	index int
	kind  ChangeKind
}

type objectChange struct {
	item    *entry.Entry
	oldPath *IndexPath
	kind    ChangeKind
	newPath *IndexPath
}

type changeSet struct {
	sections []sectionChange
	objects  []objectChange
}

func (c changeSet) empty() bool {
	return len(c.sections) == 0 && len(c.objects) == 0
}

type location struct {
	path IndexPath
	name string
	item *entry.Entry
}

func locate(sections []SectionInfo) map[string]location {
	out := make(map[string]location)
	for s, sec := range sections {
		for r, item := range sec.Items {
			out[item.ID] = location{path: IndexPath{Section: s, Row: r}, name: sec.Name, item: item}
		}
	}
	return out
}

func indexByName(sections []SectionInfo) map[string]int {
	out := make(map[string]int, len(sections))
	for i, sec := range sections {
		out[sec.Name] = i
	}
	return out
}

// diff computes the notifications that take prev to next. Section deletes use
// prev indices, section inserts next indices. Objects are reported as
// deletes, inserts, moves then updates.
func diff(prev, next []SectionInfo) changeSet {
	var cs changeSet

	prevNames := indexByName(prev)
	nextNames := indexByName(next)
	for i, sec := range prev {
		if _, ok := nextNames[sec.Name]; !ok {
			cs.sections = append(cs.sections, sectionChange{info: sec, index: i, kind: Delete})
		}
	}
	for i, sec := range next {
		if _, ok := prevNames[sec.Name]; !ok {
			cs.sections = append(cs.sections, sectionChange{info: sec, index: i, kind: Insert})
		}
	}

	oldLoc := locate(prev)
	newLoc := locate(next)

	for _, sec := range prev {
		for _, item := range sec.Items {
			if _, ok := newLoc[item.ID]; !ok {
				old := oldLoc[item.ID].path
				cs.objects = append(cs.objects, objectChange{item: item, oldPath: &old, kind: Delete})
			}
		}
	}
	for _, sec := range next {
		for _, item := range sec.Items {
			if _, ok := oldLoc[item.ID]; !ok {
				nw := newLoc[item.ID].path
				cs.objects = append(cs.objects, objectChange{item: item, kind: Insert, newPath: &nw})
			}
		}
	}

	moved := movedItems(prev, next, oldLoc, newLoc)
	var updates []objectChange
	for _, sec := range next {
		for _, item := range sec.Items {
			before, ok := oldLoc[item.ID]
			if !ok {
				continue
			}
			old := before.path
			nw := newLoc[item.ID].path
			switch {
			case moved[item.ID]:
				cs.objects = append(cs.objects, objectChange{item: item, oldPath: &old, kind: Move, newPath: &nw})
			case !sameContent(before.item, item):
				updates = append(updates, objectChange{item: item, oldPath: &old, kind: Update, newPath: &nw})
			}
		}
	}
	cs.objects = append(cs.objects, updates...)
	return cs
}

// movedItems reports entries that changed section, plus the fewest entries
// that must move within a section so the survivors keep their relative order.
func movedItems(prev, next []SectionInfo, oldLoc, newLoc map[string]location) map[string]bool {
	moved := make(map[string]bool)
	for _, sec := range next {
		var stay []location
		for _, item := range sec.Items {
			before, ok := oldLoc[item.ID]
			if !ok {
				continue
			}
			if before.name != sec.Name {
				moved[item.ID] = true
				continue
			}
			stay = append(stay, before)
		}
		sort.Slice(stay, func(i, j int) bool { return stay[i].path.Row < stay[j].path.Row })
		rows := make([]int, len(stay))
		for i, loc := range stay {
			rows[i] = newLoc[loc.item.ID].path.Row
		}
		keep := longestIncreasing(rows)
		for i, loc := range stay {
			if !keep[i] {
				moved[loc.item.ID] = true
			}
		}
	}
	return moved
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}
	// tails[k] is the index in seq of the smallest tail of an increasing run
	// of length k+1.
	tails := make([]int, 0, len(seq))
	parent := make([]int, len(seq))
	for i, v := range seq {
		k := sort.Search(len(tails), func(k int) bool { return seq[tails[k]] >= v })
		if k > 0 {
			parent[i] = tails[k-1]
		} else {
			parent[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}
	for i := tails[len(tails)-1]; i >= 0; i = parent[i] {
		keep[i] = true
	}
	return keep
}

func sameContent(a, b *entry.Entry) bool {
	return a.Message == b.Message &&
		a.Section == b.Section &&
		a.Order == b.Order &&
		a.Someday == b.Someday &&
		sameTime(a.Due, b.Due) &&
		sameTime(a.Completed, b.Completed)
}

func sameTime(a, b *entry.Timestamp) bool {
	switch {
	case a == nil || b == nil:
		return a == b
	default:
		return a.Equal(b.Time)
	}
}
