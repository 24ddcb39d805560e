package todolist

import (
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
)

// Regenerate builds the display list from the fetched sections. With
// showEmpty unset there is one display section per fetched section; with it
// set there is one per entry of order, placeholders included. Every fetched
// section must name a member of order, otherwise *UnknownSectionError is
// returned.
func Regenerate(showEmpty bool, sparse []fetch.SectionInfo, order []section.Section) ([]DisplaySection, error) {
	canonical := make(map[section.Section]struct{}, len(order))
	for _, s := range order {
		canonical[s] = struct{}{}
	}

	byID := make(map[section.Section]int, len(sparse))
	parsed := make([]section.Section, len(sparse))
	for i, info := range sparse {
		s, err := section.Parse(info.Name)
		if err != nil {
			return nil, &UnknownSectionError{Name: info.Name, FetchedIndex: i, Err: err}
		}
		if _, ok := canonical[s]; !ok {
			return nil, &UnknownSectionError{Name: info.Name, FetchedIndex: i}
		}
		byID[s] = i
		parsed[i] = s
	}

	if !showEmpty {
		out := make([]DisplaySection, len(sparse))
		for i, info := range sparse {
			out[i] = DisplaySection{Section: parsed[i], FetchedIndex: i, Count: info.Count()}
		}
		return out, nil
	}

	out := make([]DisplaySection, len(order))
	for i, s := range order {
		out[i] = DisplaySection{Section: s, FetchedIndex: NoFetchedIndex}
		if fi, ok := byID[s]; ok {
			out[i].FetchedIndex = fi
			out[i].Count = sparse[fi].Count()
		}
	}
	return out, nil
}

// MapFetchedSection returns the display index backed by fetched section
// fetchedSection.
func MapFetchedSection(fetchedSection int, sections []DisplaySection) (int, bool) {
	for i, sec := range sections {
		if sec.FetchedIndex == fetchedSection {
			return i, true
		}
	}
	return 0, false
}

// membershipChanges lists display indices of sections in before missing from
// after (indices into before) and of sections in after missing from before
// (indices into after), both ascending.
func membershipChanges(before, after []DisplaySection) (removed, added []int) {
	inBefore := make(map[section.Section]struct{}, len(before))
	for _, sec := range before {
		inBefore[sec.Section] = struct{}{}
	}
	inAfter := make(map[section.Section]struct{}, len(after))
	for _, sec := range after {
		inAfter[sec.Section] = struct{}{}
	}
	for i, sec := range before {
		if _, ok := inAfter[sec.Section]; !ok {
			removed = append(removed, i)
		}
	}
	for i, sec := range after {
		if _, ok := inBefore[sec.Section]; !ok {
			added = append(added, i)
		}
	}
	return removed, added
}
