package gplocal

import (
	"slices"
	"strings"
)

// Merge returns the union of local and incoming, keyed by identifiers.
//
// Products of incoming whose id is unknown locally are appended in incoming
// order. For every ledger of incoming, each section receives the rows whose id
// is unknown locally, then is sorted by date. When an id exists on both sides,
// the local version is kept verbatim: there is no field level merge.
//
// Ledgers of incoming that belong to no product are kept as well.
// Neither local nor incoming is modified.
func Merge(local, incoming Document) Document {
	merged := local.Clone()

	known := make(map[string]bool, len(merged.Products))
	for _, p := range merged.Products {
		known[p.ID] = true
	}
	for _, p := range incoming.Products {
		if known[p.ID] {
			continue
		}
		known[p.ID] = true
		merged.Products = append(merged.Products, p)
	}

	for pid, in := range incoming.Entries {
		merged.EnsureProductLedger(pid)
		l := merged.Entries[pid]
		l.Purchases = sortByDate(union(l.Purchases, in.Purchases))
		l.Sales = sortByDate(union(l.Sales, in.Sales))
		l.Costs = sortByDate(union(l.Costs, in.Costs))
		merged.Entries[pid] = fill(l)
	}
	return merged
}

// union appends to local the rows of incoming whose id is not in local yet.
// local must not be shared.
func union[T row](local, incoming []T) []T {
	ids := make(map[string]bool, len(local))
	for _, r := range local {
		ids[r.key()] = true
	}
	for _, r := range incoming {
		if ids[r.key()] {
			continue
		}
		ids[r.key()] = true
		local = append(local, r)
	}
	return local
}

// sortByDate sorts rows in place by ascending date, comparing the date strings
// byte by byte. This is chronological for "YYYY-MM-DD" dates; empty dates come first.
func sortByDate[T row](list []T) []T {
	slices.SortStableFunc(list, func(a, b T) int { return strings.Compare(a.when(), b.when()) })
	return list
}
