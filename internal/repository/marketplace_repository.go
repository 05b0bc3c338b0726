package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/infrastructure/kv"
	applog "freelance-match/internal/logger"

	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

const defaultNamespace = "freelanceMatch"

// MarketplaceRepository loads and saves whole collections through a kv.Store.
// Each collection lives under one key and is rewritten in full on save.
type MarketplaceRepository interface {
	LoadSession(ctx context.Context, userID string) (marketplace.User, error)
	SaveSession(ctx context.Context, u marketplace.User) error
	DeleteSession(ctx context.Context, userID string) error

	LoadUsers(ctx context.Context) ([]marketplace.User, error)
	UpsertUser(ctx context.Context, u marketplace.User) error

	LoadProfiles(ctx context.Context) (map[string]marketplace.FreelancerProfile, error)
	SaveProfiles(ctx context.Context, profiles map[string]marketplace.FreelancerProfile) error

	LoadProjects(ctx context.Context) ([]marketplace.Project, error)
	SaveProjects(ctx context.Context, projects []marketplace.Project) error
}

type KVMarketplaceRepository struct {
	store  kv.Store
	ns     string
	logger *zap.Logger

	// usersMu serializes the load-modify-save of the users list.
	usersMu sync.Mutex
}

func NewKVMarketplaceRepository(store kv.Store, namespace string, logger *zap.Logger) *KVMarketplaceRepository {
	if namespace == "" {
		namespace = defaultNamespace
	}
	logger = applog.OrNop(logger)
	return &KVMarketplaceRepository{store: store, ns: namespace, logger: logger}
}

func (r *KVMarketplaceRepository) sessionKey(userID string) string { return r.ns + "_user:" + userID }
func (r *KVMarketplaceRepository) usersKey() string                { return r.ns + "_users" }
func (r *KVMarketplaceRepository) profilesKey() string             { return r.ns + "_profiles" }
func (r *KVMarketplaceRepository) projectsKey() string             { return r.ns + "_projects" }

func (r *KVMarketplaceRepository) LoadSession(ctx context.Context, userID string) (marketplace.User, error) {
	u, found, err := load[marketplace.User](ctx, r, r.sessionKey(userID))
	if err != nil {
		return marketplace.User{}, err
	}
	if !found || u.ID == "" {
		return marketplace.User{}, ErrSessionNotFound
	}
	return u, nil
}

func (r *KVMarketplaceRepository) SaveSession(ctx context.Context, u marketplace.User) error {
	return r.save(ctx, r.sessionKey(u.ID), u)
}

func (r *KVMarketplaceRepository) DeleteSession(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, r.sessionKey(userID))
}

func (r *KVMarketplaceRepository) LoadUsers(ctx context.Context) ([]marketplace.User, error) {
	users, _, err := load[[]marketplace.User](ctx, r, r.usersKey())
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = make([]marketplace.User, 0)
	}
	return users, nil
}

// UpsertUser replaces the entry with the same id or appends a new one.
func (r *KVMarketplaceRepository) UpsertUser(ctx context.Context, u marketplace.User) error {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()

	users, err := r.LoadUsers(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, u)
	}
	return r.save(ctx, r.usersKey(), users)
}

func (r *KVMarketplaceRepository) LoadProfiles(ctx context.Context) (map[string]marketplace.FreelancerProfile, error) {
	profiles, _, err := load[map[string]marketplace.FreelancerProfile](ctx, r, r.profilesKey())
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = make(map[string]marketplace.FreelancerProfile)
	}
	return profiles, nil
}

func (r *KVMarketplaceRepository) SaveProfiles(ctx context.Context, profiles map[string]marketplace.FreelancerProfile) error {
	return r.save(ctx, r.profilesKey(), profiles)
}

func (r *KVMarketplaceRepository) LoadProjects(ctx context.Context) ([]marketplace.Project, error) {
	projects, _, err := load[[]marketplace.Project](ctx, r, r.projectsKey())
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = make([]marketplace.Project, 0)
	}
	return projects, nil
}

func (r *KVMarketplaceRepository) SaveProjects(ctx context.Context, projects []marketplace.Project) error {
	return r.save(ctx, r.projectsKey(), projects)
}

// load decodes key into a fresh T. A missing key or a value that does not
// decode as T yields the zero T and found=false; only store errors are
// returned.
func load[T any](ctx context.Context, r *KVMarketplaceRepository, key string) (T, bool, error) {
	var zero T
	b, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(b) == 0 {
		return zero, false, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		r.logger.Warn("discarding unreadable stored value", zap.String("key", key), zap.Error(err))
		return zero, false, nil
	}
	return out, true, nil
}

func (r *KVMarketplaceRepository) save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

var _ MarketplaceRepository = (*KVMarketplaceRepository)(nil)
