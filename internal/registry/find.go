package registry

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mj1618/slotjump/internal/model"
)

// Match is a slot ranked against a query. Lower distance is closer.
type Match struct {
	Slot     model.PinSlot
	Distance int
}

// Find ranks slots by fuzzy match of query against "app title". Slots whose
// app id contains the query also match, ranked after the fuzzy hits. An
// empty query returns every slot in position order.
func Find(slots []model.PinSlot, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, 0, len(slots))
		for _, s := range slots {
			out = append(out, Match{Slot: s})
		}
		return out
	}

	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Window.AppName() + " " + s.Window.Title
	}

	seen := make(map[int]bool)
	var out []Match
	for _, r := range fuzzy.RankFindNormalizedFold(query, labels) {
		seen[r.OriginalIndex] = true
		out = append(out, Match{Slot: slots[r.OriginalIndex], Distance: r.Distance})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Slot.Position < out[j].Slot.Position
	})

	lower := strings.ToLower(query)
	for i, s := range slots {
		if seen[i] {
			continue
		}
		if strings.Contains(strings.ToLower(s.Window.OwnerAppID), lower) {
			out = append(out, Match{Slot: s, Distance: len(s.Window.OwnerAppID) - len(query)})
		}
	}
	return out
}
