package matching

import (
	"fmt"
	"math"
	"math/big"
	"testing"
	"time"

	"freelance-match/internal/domain/catalog"
	"freelance-match/internal/domain/marketplace"
)

func TestScoreOverlap_MatchCountIsIntersectionSize(t *testing.T) {
	names := catalog.Names()[:6]

	// every pair of subsets of six catalog names
	for rm := 0; rm < 1<<len(names); rm++ {
		for cm := 0; cm < 1<<len(names); cm++ {
			req := subset(names, rm)
			cand := subset(names, cm)

			want := 0
			for i := range names {
				if rm&(1<<i) != 0 && cm&(1<<i) != 0 {
					want++
				}
			}

			got := ScoreOverlap(req, cand)
			if got.MatchCount != want {
				t.Fatalf("req=%v cand=%v: expected match count %d, got %d", req, cand, want, got.MatchCount)
			}
			if len(req) == 0 {
				if got.Percentage != 0 {
					t.Fatalf("empty requirement set: expected 0%%, got %d", got.Percentage)
				}
				continue
			}
			if got.Percentage < 0 || got.Percentage > 100 {
				t.Fatalf("req=%v cand=%v: percentage out of range: %d", req, cand, got.Percentage)
			}
			if exp := exactRound(want, len(req)); got.Percentage != exp {
				t.Fatalf("req=%v cand=%v: expected percentage %d, got %d", req, cand, exp, got.Percentage)
			}
		}
	}
}

func TestScoreOverlap_PercentageRoundsHalfUp(t *testing.T) {
	tests := []struct {
		count, total, want int
	}{
		{1, 8, 13},  // 12.5
		{3, 8, 38},  // 37.5
		{1, 3, 33},  // 33.33
		{2, 3, 67},  // 66.67
		{1, 40, 3},  // 2.5
		{1, 200, 1}, // 0.5
		{0, 5, 0},
		{5, 5, 100},
	}

	for _, tt := range tests {
		req, cand := overlapSets(tt.total, tt.count)
		got := ScoreOverlap(req, cand).Percentage
		if got != tt.want {
			t.Fatalf("%d/%d: expected %d, got %d", tt.count, tt.total, tt.want, got)
		}
	}
}

func TestScoreOverlap_CaseSensitiveAndOutsideCatalog(t *testing.T) {
	got := ScoreOverlap([]string{"React", "Elixir"}, []string{"react", "Elixir"})
	if got.MatchCount != 1 {
		t.Fatalf("expected only the exact-case match to count, got %d", got.MatchCount)
	}
	if got.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", got.Percentage)
	}
}

func TestScoreOverlap_DuplicatesCollapse(t *testing.T) {
	got := ScoreOverlap([]string{"React", "React", "Docker"}, []string{"React", "React"})
	if got.MatchCount != 1 || got.Percentage != 50 {
		t.Fatalf("expected 1 match at 50%%, got %+v", got)
	}
}

func TestFreelancerQualifies_CeilOfHalf(t *testing.T) {
	req := []string{"React", "Node.js", "TypeScript", "MongoDB"}

	if !FreelancerQualifies(req, []string{"React", "MongoDB", "AWS"}) {
		t.Fatalf("expected two overlapping technologies to qualify")
	}
	if FreelancerQualifies(req, []string{"React", "AWS"}) {
		t.Fatalf("expected one overlapping technology not to qualify")
	}

	odd := []string{"React", "Node.js", "Python"}
	if FreelancerQualifies(odd, []string{"React"}) {
		t.Fatalf("ceil(1.5)=2: expected one overlap not to qualify")
	}
	if !FreelancerQualifies(odd, []string{"React", "Python"}) {
		t.Fatalf("ceil(1.5)=2: expected two overlaps to qualify")
	}
}

func TestProjectQualifies_PercentageThreshold(t *testing.T) {
	req := []string{"React", "Node.js", "Python"}

	if ProjectQualifies(req, []string{"React"}) {
		t.Fatalf("33%%: expected not to qualify")
	}
	if !ProjectQualifies(req, []string{"React", "Python"}) {
		t.Fatalf("67%%: expected to qualify")
	}
	if ProjectQualifies(nil, []string{"React"}) {
		t.Fatalf("empty requirement set scores 0%%: expected not to qualify")
	}
}

// The two predicates are kept separate on purpose. They agree on small
// requirement sets and diverge once ceil(n/2) and round(k/n*100) >= 50
// disagree, which first happens for n = 101, k = 50.
func TestPredicates_Asymmetry(t *testing.T) {
	for n := 1; n <= 100; n++ {
		for k := 0; k <= n; k++ {
			req, cand := overlapSets(n, k)
			if FreelancerQualifies(req, cand) != ProjectQualifies(req, cand) {
				t.Fatalf("n=%d k=%d: expected predicates to agree below n=101", n, k)
			}
		}
	}

	req, cand := overlapSets(101, 50)
	if FreelancerQualifies(req, cand) {
		t.Fatalf("n=101 k=50: client-side rule needs 51, expected false")
	}
	if !ProjectQualifies(req, cand) {
		t.Fatalf("n=101 k=50: round(49.50)=50, expected freelancer-side rule to pass")
	}

	// empty requirement set: count rule admits everyone, percentage rule no one
	if !FreelancerQualifies(nil, []string{"React"}) {
		t.Fatalf("empty requirement set: expected ceil(0)=0 to admit")
	}
	if ProjectQualifies(nil, []string{"React"}) {
		t.Fatalf("empty requirement set: expected 0%% to reject")
	}
}

func TestMatchFreelancers_KeepsPoolOrder(t *testing.T) {
	pool := catalog.DemoFreelancers()

	got := MatchFreelancers([]string{"React", "Node.js", "TypeScript", "MongoDB"}, pool)

	want := []string{"1", "3", "6"}
	if len(got) != len(want) {
		t.Fatalf("expected %d freelancers, got %d (%v)", len(want), len(got), ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids(got))
		}
	}
}

func TestMatchProjects_SortedDescendingStable(t *testing.T) {
	now := time.Now().UTC()
	projects := []marketplace.Project{
		{ID: "a", Technologies: []string{"React", "Docker"}, PostedDate: now},            // 50
		{ID: "b", Technologies: []string{"React"}, PostedDate: now, ClientName: "Acme"},  // 100
		{ID: "c", Technologies: []string{"Python", "Django", "React"}, PostedDate: now},  // 33
		{ID: "d", Technologies: []string{"Vue.js", "React"}, PostedDate: now},            // 50
		{ID: "e", Technologies: []string{"React", "TypeScript", "AWS"}, PostedDate: now}, // 67
		{ID: "f", Technologies: []string{}, PostedDate: now},                             // 0
	}

	got := MatchProjects([]string{"React", "TypeScript"}, projects)

	want := []string{"b", "e", "a", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i].ID)
		}
	}
	if got[0].ClientName != "Acme" {
		t.Fatalf("expected client name to carry over, got %q", got[0].ClientName)
	}
	if got[1].ClientName != "Client" {
		t.Fatalf("expected default client name, got %q", got[1].ClientName)
	}
	if got[1].MatchPercentage != 67 {
		t.Fatalf("expected 67%%, got %d", got[1].MatchPercentage)
	}
}

func TestAverageMatchAndTotals(t *testing.T) {
	if AverageMatch(nil) != 0 {
		t.Fatalf("expected 0 for no matches")
	}
	avg := AverageMatch([]marketplace.ProjectMatch{{MatchPercentage: 50}, {MatchPercentage: 67}})
	if avg != 59 {
		t.Fatalf("expected round(58.5)=59, got %d", avg)
	}

	total := TotalMatches([]marketplace.Project{
		{Matches: make([]marketplace.Freelancer, 2)},
		{},
		{Matches: make([]marketplace.Freelancer, 3)},
	})
	if total != 5 {
		t.Fatalf("expected 5, got %d", total)
	}
}

func subset(names []string, mask int) []string {
	out := make([]string, 0)
	for i, n := range names {
		if mask&(1<<i) != 0 {
			out = append(out, n)
		}
	}
	return out
}

func overlapSets(total, overlap int) ([]string, []string) {
	req := make([]string, 0, total)
	cand := make([]string, 0, overlap)
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("tech-%03d", i)
		req = append(req, name)
		if i < overlap {
			cand = append(cand, name)
		}
	}
	return req, cand
}

// exactRound rounds count/total*100 half up using rational arithmetic.
func exactRound(count, total int) int {
	r := new(big.Rat).SetFrac64(int64(count*100), int64(total))
	f, _ := r.Float64()
	fl := math.Floor(f)
	frac := new(big.Rat).Sub(r, new(big.Rat).SetInt64(int64(fl)))
	if frac.Cmp(big.NewRat(1, 2)) >= 0 {
		return int(fl) + 1
	}
	return int(fl)
}

func ids(fs []marketplace.Freelancer) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}
