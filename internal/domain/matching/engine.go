package matching

import (
	"math"
	"sort"

	"freelance-match/internal/domain/marketplace"
)

const (
	freelancerShare   = 0.5
	projectMinPercent = 50
)

type Score struct {
	MatchCount int
	Percentage int
}

// ScoreOverlap counts the required technologies present in candidate and
// expresses the count as a rounded percentage of the requirement set.
// Both inputs are treated as sets; an empty requirement set scores 0%.
func ScoreOverlap(required, candidate []string) Score {
	reqs := uniqueNames(required)
	if len(reqs) == 0 {
		return Score{}
	}

	have := make(map[string]struct{}, len(candidate))
	for _, c := range candidate {
		have[c] = struct{}{}
	}

	count := 0
	for _, r := range reqs {
		if _, ok := have[r]; ok {
			count++
		}
	}

	return Score{MatchCount: count, Percentage: roundPercent(count, len(reqs))}
}

// FreelancerQualifies is the client-side rule: at least ceil(|required| * 0.5)
// technologies must overlap. It is intentionally not expressed through
// Percentage; see ProjectQualifies.
func FreelancerQualifies(required, candidate []string) bool {
	s := ScoreOverlap(required, candidate)
	return s.MatchCount >= minOverlap(len(uniqueNames(required)))
}

// ProjectQualifies is the freelancer-side rule: the rounded percentage must
// reach 50. For large odd requirement sets it admits one overlap fewer than
// FreelancerQualifies does.
func ProjectQualifies(required, candidate []string) bool {
	return ScoreOverlap(required, candidate).Percentage >= projectMinPercent
}

// MatchFreelancers filters pool by FreelancerQualifies, keeping pool order.
func MatchFreelancers(required []string, pool []marketplace.Freelancer) []marketplace.Freelancer {
	out := make([]marketplace.Freelancer, 0)
	for _, f := range pool {
		if FreelancerQualifies(required, f.Technologies) {
			out = append(out, f)
		}
	}
	return out
}

// MatchProjects scores every project against skills, keeps those passing
// ProjectQualifies and orders them by percentage, highest first. Ties keep
// the order of projects.
func MatchProjects(skills []string, projects []marketplace.Project) []marketplace.ProjectMatch {
	out := make([]marketplace.ProjectMatch, 0)
	for _, p := range projects {
		s := ScoreOverlap(p.Technologies, skills)
		if s.Percentage < projectMinPercent {
			continue
		}

		clientName := p.ClientName
		if clientName == "" {
			clientName = "Client"
		}

		out = append(out, marketplace.ProjectMatch{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			Budget:          p.Budget,
			Technologies:    append([]string(nil), p.Technologies...),
			PostedDate:      p.PostedDate,
			ClientName:      clientName,
			ClientEmail:     p.ClientEmail,
			MatchPercentage: s.Percentage,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}

// AverageMatch is the rounded mean percentage, or 0 for no matches.
func AverageMatch(matches []marketplace.ProjectMatch) int {
	if len(matches) == 0 {
		return 0
	}
	sum := 0
	for _, m := range matches {
		sum += m.MatchPercentage
	}
	return roundDiv(sum, len(matches))
}

func TotalMatches(projects []marketplace.Project) int {
	total := 0
	for _, p := range projects {
		total += len(p.Matches)
	}
	return total
}

func minOverlap(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) * freelancerShare))
}

// roundPercent is round-half-up of count/total*100 without float error.
func roundPercent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return roundDiv(count*100, total)
}

func roundDiv(num, den int) int {
	if den <= 0 {
		return 0
	}
	return (2*num + den) / (2 * den)
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
