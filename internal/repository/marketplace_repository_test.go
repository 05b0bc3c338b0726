package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/infrastructure/kv"
)

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Set(context.Context, string, []byte) error         { return s.err }
func (s failingStore) Delete(context.Context, string) error              { return s.err }

func TestMarketplaceRepository_CorruptValuesFallBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	for _, key := range []string{"freelanceMatch_users", "freelanceMatch_profiles", "freelanceMatch_projects", "freelanceMatch_user:u1"} {
		if err := store.Set(ctx, key, []byte("{not json")); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	repo := NewKVMarketplaceRepository(store, "", nil)

	users, err := repo.LoadUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected empty users, got %v %v", users, err)
	}
	profiles, err := repo.LoadProfiles(ctx)
	if err != nil || len(profiles) != 0 {
		t.Fatalf("expected empty profiles, got %v %v", profiles, err)
	}
	projects, err := repo.LoadProjects(ctx)
	if err != nil || projects == nil || len(projects) != 0 {
		t.Fatalf("expected empty non-nil projects, got %v %v", projects, err)
	}
	if _, err := repo.LoadSession(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMarketplaceRepository_MistypedValuesFallBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	seed := map[string]string{
		"freelanceMatch_projects": `[{"id":"1","title":"kept"},{"id":"2","budget":"oops"}]`,
		"freelanceMatch_profiles": `{"u1":{"title":"Go Engineer"},"u2":{"experience":"ten"}}`,
		"freelanceMatch_users":    `[{"id":"u1","name":"Ana"},{"id":"u2","name":42}]`,
		"freelanceMatch_user:u1":  `{"id":"u1","name":["Ana"]}`,
	}
	for key, value := range seed {
		if err := store.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	repo := NewKVMarketplaceRepository(store, "", nil)

	projects, err := repo.LoadProjects(ctx)
	if err != nil || projects == nil || len(projects) != 0 {
		t.Fatalf("expected empty projects, got %+v %v", projects, err)
	}
	profiles, err := repo.LoadProfiles(ctx)
	if err != nil || len(profiles) != 0 {
		t.Fatalf("expected empty profiles, got %+v %v", profiles, err)
	}
	users, err := repo.LoadUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected empty users, got %+v %v", users, err)
	}
	if _, err := repo.LoadSession(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMarketplaceRepository_ConcurrentUpsertKeepsEveryUser(t *testing.T) {
	ctx := context.Background()
	repo := NewKVMarketplaceRepository(kv.NewMemory(), "", nil)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.UpsertUser(ctx, marketplace.User{ID: fmt.Sprintf("u%d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	users, err := repo.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != n {
		t.Fatalf("expected %d users, got %d", n, len(users))
	}
}

func TestMarketplaceRepository_PostedDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewKVMarketplaceRepository(kv.NewMemory(), "test", nil)

	posted := time.Date(2024, 3, 9, 14, 30, 15, 123000000, time.FixedZone("WIB", 7*3600))
	in := []marketplace.Project{{ID: "1", Title: "API", Technologies: []string{"Go"}, PostedDate: posted}}
	if err := repo.SaveProjects(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.LoadProjects(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || !out[0].PostedDate.Equal(posted) {
		t.Fatalf("expected %v, got %+v", posted, out)
	}
}

func TestMarketplaceRepository_ProfileOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewKVMarketplaceRepository(kv.NewMemory(), "", nil)

	for _, title := range []string{"Backend Dev", "Go Engineer"} {
		profiles, err := repo.LoadProfiles(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		profiles["u1"] = marketplace.FreelancerProfile{Title: title, Technologies: []string{"Go"}}
		if err := repo.SaveProfiles(ctx, profiles); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	profiles, err := repo.LoadProfiles(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(profiles) != 1 || profiles["u1"].Title != "Go Engineer" {
		t.Fatalf("expected one overwritten profile, got %+v", profiles)
	}
}

func TestMarketplaceRepository_SessionAndUsers(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewKVMarketplaceRepository(store, "", nil)

	u := marketplace.User{ID: "u1", Name: "Ana", Email: "ana@example.com", UserType: marketplace.UserTypeClient}
	if err := repo.SaveSession(ctx, u); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "freelanceMatch_user:u1"); !ok {
		t.Fatalf("expected session under namespaced key")
	}
	got, err := repo.LoadSession(ctx, "u1")
	if err != nil || got != u {
		t.Fatalf("unexpected session %+v %v", got, err)
	}

	if err := repo.UpsertUser(ctx, u); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	u.Name = "Ana Maria"
	if err := repo.UpsertUser(ctx, u); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertUser(ctx, marketplace.User{ID: "u2"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	users, _ := repo.LoadUsers(ctx)
	if len(users) != 2 || users[0].Name != "Ana Maria" || users[1].ID != "u2" {
		t.Fatalf("unexpected users %+v", users)
	}

	if err := repo.DeleteSession(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.LoadSession(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestMarketplaceRepository_StoreErrorsPropagate(t *testing.T) {
	repo := NewKVMarketplaceRepository(failingStore{err: kv.ErrUnavailable}, "", nil)

	if _, err := repo.LoadProjects(context.Background()); !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := repo.SaveProjects(context.Background(), nil); !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
