// Package dedup implements the deduplicator (C7): clustering
// similar issues across agents and merging each cluster into one
// fused issue.
//
// Grounded on the teacher's internal/shards/reviewer/specialist_review.go
// (ParseShardOutput's severity-bucketing pass) for the "single pass,
// preserve encounter order" shape; the similarity ratio itself is
// hand-rolled per similarity.go's doc comment.
package dedup

import (
	"sort"
	"strings"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

const similarityThreshold = 0.8
const lineProximity = 5

// similar implements the clustering predicate: both-lines -> proximity,
// neither-lines -> text similarity, mixed -> never similar.
func similar(a, b issue.Issue) bool {
	if a.HasLine() && b.HasLine() {
		diff := *a.Line - *b.Line
		if diff < 0 {
			diff = -diff
		}
		return diff <= lineProximity
	}
	if !a.HasLine() && !b.HasLine() {
		return textSimilarity(a.Description, b.Description) > similarityThreshold
	}
	return false
}

// Cluster partitions items into maximal sets pairwise-reachable under
// similar. The cluster walk is intentionally greedy and transitive:
// once an item joins a cluster, any other item similar to it joins
// too, even if it isn't similar to the cluster's seed. Clusters are
// returned in the order their seed item was first encountered; within
// each cluster, the seed comes first and the other members follow in
// the breadth-first order in which the walk reached them.
func Cluster(items []issue.Issue) [][]issue.Issue {
	processed := make([]bool, len(items))
	var clusters [][]issue.Issue

	for i := range items {
		if processed[i] {
			continue
		}
		processed[i] = true
		cluster := []issue.Issue{items[i]}
		queue := []int{i}

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			for j := range items {
				if processed[j] {
					continue
				}
				if similar(items[idx], items[j]) {
					processed[j] = true
					cluster = append(cluster, items[j])
					queue = append(queue, j)
				}
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// Merge fuses one cluster into a single issue.
func Merge(cluster []issue.Issue) issue.Issue {
	sorted := append([]issue.Issue(nil), cluster...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})

	base := sorted[0]
	agentSet := make(map[string]bool)
	var distinctDescs []string
	var related []string
	var longestSuggestion string
	confidenceSum := 0.0
	// duplicateCount sums members' own counts, so re-merging an
	// already-fused issue keeps its count (idempotence).
	duplicateCount := 0

	for _, it := range sorted {
		for _, a := range producingAgents(it) {
			agentSet[a] = true
		}
		confidenceSum += it.Confidence
		if it.DuplicateCount > 1 {
			duplicateCount += it.DuplicateCount
		} else {
			duplicateCount++
		}
		related = append(related, it.Related...)
		if len(it.Suggestion) > len(longestSuggestion) {
			longestSuggestion = it.Suggestion
		}

		dup := false
		for _, kept := range distinctDescs {
			if textSimilarity(kept, it.Description) > similarityThreshold {
				dup = true
				break
			}
		}
		if dup {
			related = append(related, it.Description)
		} else {
			distinctDescs = append(distinctDescs, it.Description)
		}
	}

	size := len(sorted)
	confidence := (confidenceSum / float64(size)) * (1 + 0.1*float64(size-1))
	if confidence > 1.0 {
		confidence = 1.0
	}

	agents := make([]string, 0, len(agentSet))
	for a := range agentSet {
		agents = append(agents, a)
	}
	sort.Strings(agents)

	return issue.Issue{
		Kind:           base.Kind,
		Severity:       sorted[0].Severity,
		Line:           base.Line,
		Description:    strings.Join(distinctDescs, " | "),
		Suggestion:     longestSuggestion,
		Snippet:        base.Snippet,
		Agent:          base.Agent,
		Confidence:     confidence,
		Agents:         agents,
		DuplicateCount: duplicateCount,
		Related:        related,
	}
}

func producingAgents(i issue.Issue) []string {
	if len(i.Agents) > 0 {
		return i.Agents
	}
	if i.Agent != "" {
		return []string{i.Agent}
	}
	return nil
}

// Deduplicate clusters allIssues and merges each cluster, in seed
// order, producing the deduplicated issues list.
func Deduplicate(allIssues []issue.Issue) []issue.Issue {
	clusters := Cluster(allIssues)
	result := make([]issue.Issue, 0, len(clusters))
	for _, c := range clusters {
		result = append(result, Merge(c))
	}
	return result
}
