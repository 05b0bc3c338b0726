package notification

import (
	"testing"
	"time"

	"freelance-match/internal/domain/catalog"
	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/domain/matching"
)

func TestDerive_OnePerFreelancerWithCompositeID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := marketplace.Project{ID: "1700000000000", Title: "Dashboard", Technologies: []string{"React", "TypeScript"}}
	pool := matching.MatchFreelancers(p.Technologies, catalog.DemoFreelancers())

	got := Derive(p, pool, now)
	if len(got) != len(pool) {
		t.Fatalf("expected %d notifications, got %d", len(pool), len(got))
	}
	for i, n := range got {
		if n.ID != p.ID+"-"+pool[i].ID {
			t.Fatalf("unexpected id %q", n.ID)
		}
		if n.ProjectID != p.ID || n.ProjectTitle != p.Title {
			t.Fatalf("unexpected project reference %+v", n)
		}
		if !n.Timestamp.Equal(now) {
			t.Fatalf("unexpected timestamp %v", n.Timestamp)
		}
	}
}

func TestDerive_SnapshotsFreelancer(t *testing.T) {
	f := marketplace.Freelancer{ID: "u1", Title: "Dev", Technologies: []string{"Go", "React"}}
	got := Derive(marketplace.Project{ID: "p1"}, []marketplace.Freelancer{f}, time.Now())

	f.Title = "Changed"
	f.Technologies[0] = "Rust"

	if got[0].Freelancer.Title != "Dev" {
		t.Fatalf("expected snapshot title to stay, got %q", got[0].Freelancer.Title)
	}
	if got[0].Freelancer.Technologies[0] != "Go" {
		t.Fatalf("expected snapshot technologies to stay, got %v", got[0].Freelancer.Technologies)
	}
}

func TestInbox_NewestFirst(t *testing.T) {
	var box Inbox
	now := time.Now()

	p1 := Derive(marketplace.Project{ID: "p1"}, []marketplace.Freelancer{{ID: "a"}}, now)
	p2 := Derive(marketplace.Project{ID: "p2"}, []marketplace.Freelancer{{ID: "a"}, {ID: "b"}}, now.Add(time.Second))

	box.Prepend(p1)
	box.Prepend(p2)

	got := box.List()
	want := []string{"p2-a", "p2-b", "p1-a"}
	if len(got) != len(want) {
		t.Fatalf("expected %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i].ID)
		}
	}
}

func TestInbox_DismissRemovesExactlyOne(t *testing.T) {
	var box Inbox
	box.Prepend([]marketplace.Notification{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}})

	before := box.List()
	if !box.Dismiss("b") {
		t.Fatalf("expected dismiss to find b")
	}
	if box.Dismiss("missing") {
		t.Fatalf("expected dismiss of unknown id to report false")
	}

	got := box.List()
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i].ID)
		}
	}
	if before[1].ID != "b" {
		t.Fatalf("expected earlier List copy to be unaffected, got %v", before)
	}
}

func TestCenter_PerRecipient(t *testing.T) {
	c := NewCenter()
	c.Prepend("client-1", []marketplace.Notification{{ID: "p1-a"}})
	c.Prepend("client-2", []marketplace.Notification{{ID: "p2-a"}})

	if got := c.List("client-1"); len(got) != 1 || got[0].ID != "p1-a" {
		t.Fatalf("unexpected inbox for client-1: %v", got)
	}
	if c.Dismiss("client-1", "p2-a") {
		t.Fatalf("expected other recipient's notification to be out of reach")
	}

	c.Clear("client-1")
	if got := c.List("client-1"); len(got) != 0 {
		t.Fatalf("expected cleared inbox, got %v", got)
	}
	if got := c.List("client-2"); len(got) != 1 {
		t.Fatalf("expected client-2 inbox untouched, got %v", got)
	}
}
