package orchestrator

import (
	"math"
	"sort"

	"github.com/maastricht-university/edmo-transcript/transcript"
)

// Aggregate buckets utterances by topic. Buckets are ordered by their
// earliest start and keep chronological order inside; an utterance with no
// topic lands in fallback. Every input utterance appears exactly once.
func Aggregate(utts []transcript.Utterance, fallback string) []Group {
	index := map[string]int{}
	var groups []Group
	var members [][]transcript.Utterance
	for _, u := range utts {
		if u.Topic == "" {
			u.Topic = fallback
		}
		i, ok := index[u.Topic]
		if !ok {
			i = len(groups)
			index[u.Topic] = i
			groups = append(groups, Group{Topic: u.Topic, T0: u.Start, T1: u.End})
			members = append(members, nil)
		}
		members[i] = append(members[i], u)
	}

	for i := range groups {
		g := &groups[i]
		sort.SliceStable(members[i], func(a, b int) bool { return members[i][a].Start < members[i][b].Start })
		g.Entries = transcript.Entries(members[i])
		for _, u := range members[i] {
			g.T0 = math.Min(g.T0, u.Start)
			g.T1 = math.Max(g.T1, u.End)
		}
		aggregate(g)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].T0 < groups[b].T0 })
	return groups
}

// aggregate fills the speaking share per speaker and the fraction of the
// bucket span where more than one utterance is active.
func aggregate(g *Group) {
	if len(g.Entries) == 0 {
		return
	}
	total := 0.0
	g.SpeakingShare = map[string]float64{}
	type edge struct {
		t     float64
		delta int
	}
	var edges []edge
	for _, e := range g.Entries {
		d := math.Max(0, e.End-e.Start)
		total += d
		g.SpeakingShare[e.Speaker] += d
		edges = append(edges, edge{t: e.Start, delta: +1}, edge{t: e.End, delta: -1})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t == edges[j].t {
			return edges[i].delta < edges[j].delta
		}
		return edges[i].t < edges[j].t
	})
	active := 0
	last := edges[0].t
	overlap := 0.0
	for _, e := range edges {
		if active > 1 {
			overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	if total > 0 {
		for k := range g.SpeakingShare {
			g.SpeakingShare[k] /= total
		}
	}
	rate := 0.0
	if span := g.T1 - g.T0; span > 0 {
		rate = overlap / span
	}
	g.OverlapRate = &rate
}

// Count returns the number of entries across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Entries)
	}
	return n
}
