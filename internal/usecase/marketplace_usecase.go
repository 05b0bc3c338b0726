package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"freelance-match/internal/domain/catalog"
	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/domain/matching"
	"freelance-match/internal/domain/notification"
	applog "freelance-match/internal/logger"
	"freelance-match/internal/repository"
)

const unknownFreelancerName = "Unknown"

type ProjectInput struct {
	Title        string
	Description  string
	Budget       float64
	Technologies []string
}

type ProfileInput struct {
	Title        string
	Bio          string
	Experience   int
	HourlyRate   float64
	Technologies []string
	Availability string
	Avatar       string
}

type CreateProjectResult struct {
	Project       marketplace.Project
	Notifications []marketplace.Notification
}

type ClientDashboard struct {
	Projects       []marketplace.Project      `json:"projects"`
	ActiveProjects int                        `json:"activeProjects"`
	TotalMatches   int                        `json:"totalMatches"`
	Notifications  []marketplace.Notification `json:"notifications"`
}

type FreelancerDashboard struct {
	Profile     *marketplace.FreelancerProfile `json:"profile"`
	Matches     []marketplace.ProjectMatch     `json:"matches"`
	AllProjects []marketplace.Project          `json:"allProjects"`
	Skills      int                            `json:"skills"`
	AvgMatch    int                            `json:"avgMatch"`
}

// Dashboard holds exactly one of Client or Freelancer, chosen by UserType.
type Dashboard struct {
	UserType   marketplace.UserType `json:"userType"`
	Client     *ClientDashboard     `json:"client,omitempty"`
	Freelancer *FreelancerDashboard `json:"freelancer,omitempty"`
}

type MarketplaceUsecase interface {
	CreateProject(ctx context.Context, client marketplace.User, in ProjectInput) (CreateProjectResult, error)
	SaveProfile(ctx context.Context, usr marketplace.User, in ProfileInput) (marketplace.FreelancerProfile, error)
	Profile(ctx context.Context, userID string) (marketplace.FreelancerProfile, bool, error)
	FreelancerPool(ctx context.Context) ([]marketplace.Freelancer, error)
	Projects(ctx context.Context) ([]marketplace.Project, error)
	ClientProjects(ctx context.Context, clientID string) ([]marketplace.Project, error)
	MatchingProjects(ctx context.Context, userID string) ([]marketplace.ProjectMatch, error)
	Notifications(userID string) []marketplace.Notification
	DismissNotification(userID, notificationID string) bool
	Dashboard(ctx context.Context, usr marketplace.User) (Dashboard, error)
}

type MarketplaceOptions struct {
	SeedFreelancers bool
	Now             func() time.Time
}

type Marketplace struct {
	repo   repository.MarketplaceRepository
	inbox  *notification.Center
	seed   bool
	now    func() time.Time
	logger *zap.Logger

	// writes serializes read-modify-write cycles on the stored collections.
	writes sync.Mutex
	lastID int64
}

func NewMarketplaceUsecase(repo repository.MarketplaceRepository, inbox *notification.Center, opts MarketplaceOptions, logger *zap.Logger) *Marketplace {
	if inbox == nil {
		inbox = notification.NewCenter()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger = applog.OrNop(logger)
	return &Marketplace{repo: repo, inbox: inbox, seed: opts.SeedFreelancers, now: opts.Now, logger: logger}
}

func (u *Marketplace) CreateProject(ctx context.Context, client marketplace.User, in ProjectInput) (CreateProjectResult, error) {
	if client.ID == "" {
		return CreateProjectResult{}, ErrUnauthorized
	}
	if client.UserType != marketplace.UserTypeClient {
		return CreateProjectResult{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	techs := cleanTechnologies(in.Technologies)
	switch {
	case title == "":
		return CreateProjectResult{}, invalid("Project title is required")
	case description == "":
		return CreateProjectResult{}, invalid("Project description is required")
	case in.Budget < 0:
		return CreateProjectResult{}, invalid("Budget must not be negative")
	case len(techs) == 0:
		return CreateProjectResult{}, invalid("Select at least one technology")
	}

	u.writes.Lock()
	defer u.writes.Unlock()

	pool, err := u.freelancerPool(ctx)
	if err != nil {
		return CreateProjectResult{}, err
	}
	projects, err := u.repo.LoadProjects(ctx)
	if err != nil {
		u.logger.Error("load projects", zap.Error(err))
		return CreateProjectResult{}, ErrInternal
	}

	now := u.now()
	p := marketplace.Project{
		ID:           u.nextID(now),
		Title:        title,
		Description:  description,
		Budget:       in.Budget,
		Technologies: techs,
		PostedDate:   now.UTC(),
		ClientID:     client.ID,
		ClientName:   client.Name,
		ClientEmail:  client.Email,
	}
	p.Matches = matching.MatchFreelancers(p.Technologies, pool)

	updated := make([]marketplace.Project, 0, len(projects)+1)
	updated = append(updated, p)
	updated = append(updated, projects...)
	if err := u.repo.SaveProjects(ctx, updated); err != nil {
		u.logger.Error("save projects", zap.Error(err))
		return CreateProjectResult{}, ErrInternal
	}

	batch := notification.Derive(p, p.Matches, now)
	u.inbox.Prepend(client.ID, batch)

	u.logger.Info("project created",
		zap.String("project_id", p.ID),
		zap.String("client_id", client.ID),
		zap.Int("matches", len(p.Matches)),
	)
	return CreateProjectResult{Project: p, Notifications: batch}, nil
}

func (u *Marketplace) SaveProfile(ctx context.Context, usr marketplace.User, in ProfileInput) (marketplace.FreelancerProfile, error) {
	if usr.ID == "" {
		return marketplace.FreelancerProfile{}, ErrUnauthorized
	}
	if usr.UserType != marketplace.UserTypeFreelancer {
		return marketplace.FreelancerProfile{}, ErrForbidden
	}

	availability := marketplace.Availability(strings.ToLower(strings.TrimSpace(in.Availability)))
	if availability == "" {
		availability = marketplace.AvailabilityFullTime
	}

	profile := marketplace.FreelancerProfile{
		Title:        strings.TrimSpace(in.Title),
		Bio:          strings.TrimSpace(in.Bio),
		Experience:   in.Experience,
		HourlyRate:   in.HourlyRate,
		Technologies: cleanTechnologies(in.Technologies),
		Availability: availability,
		Avatar:       strings.TrimSpace(in.Avatar),
	}
	switch {
	case profile.Title == "":
		return marketplace.FreelancerProfile{}, invalid("Professional title is required")
	case profile.Bio == "":
		return marketplace.FreelancerProfile{}, invalid("Bio is required")
	case profile.Experience < 0:
		return marketplace.FreelancerProfile{}, invalid("Experience must not be negative")
	case profile.HourlyRate < 0:
		return marketplace.FreelancerProfile{}, invalid("Hourly rate must not be negative")
	case len(profile.Technologies) == 0:
		return marketplace.FreelancerProfile{}, invalid("Select at least one technology")
	case !profile.Availability.Valid():
		return marketplace.FreelancerProfile{}, invalid("Availability must be full-time, part-time or contract")
	}

	u.writes.Lock()
	defer u.writes.Unlock()

	profiles, err := u.repo.LoadProfiles(ctx)
	if err != nil {
		u.logger.Error("load profiles", zap.Error(err))
		return marketplace.FreelancerProfile{}, ErrInternal
	}
	profiles[usr.ID] = profile
	if err := u.repo.SaveProfiles(ctx, profiles); err != nil {
		u.logger.Error("save profiles", zap.Error(err))
		return marketplace.FreelancerProfile{}, ErrInternal
	}
	return profile, nil
}

func (u *Marketplace) Profile(ctx context.Context, userID string) (marketplace.FreelancerProfile, bool, error) {
	profiles, err := u.repo.LoadProfiles(ctx)
	if err != nil {
		u.logger.Error("load profiles", zap.Error(err))
		return marketplace.FreelancerProfile{}, false, ErrInternal
	}
	p, ok := profiles[userID]
	return p, ok, nil
}

func (u *Marketplace) FreelancerPool(ctx context.Context) ([]marketplace.Freelancer, error) {
	return u.freelancerPool(ctx)
}

// freelancerPool lists registered freelancers in registration order, then
// profiles whose user record is missing (by id), then the demo pool.
func (u *Marketplace) freelancerPool(ctx context.Context) ([]marketplace.Freelancer, error) {
	profiles, err := u.repo.LoadProfiles(ctx)
	if err != nil {
		u.logger.Error("load profiles", zap.Error(err))
		return nil, ErrInternal
	}
	users, err := u.repo.LoadUsers(ctx)
	if err != nil {
		u.logger.Error("load users", zap.Error(err))
		return nil, ErrInternal
	}

	pool := make([]marketplace.Freelancer, 0, len(profiles))
	seen := make(map[string]struct{}, len(profiles))
	for _, usr := range users {
		p, ok := profiles[usr.ID]
		if !ok {
			continue
		}
		if _, dup := seen[usr.ID]; dup {
			continue
		}
		seen[usr.ID] = struct{}{}
		pool = append(pool, toFreelancer(usr.ID, usr.Name, usr.Email, p))
	}

	orphans := make([]string, 0)
	for id := range profiles {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		pool = append(pool, toFreelancer(id, unknownFreelancerName, "", profiles[id]))
	}

	if u.seed {
		pool = append(pool, catalog.DemoFreelancers()...)
	}
	return pool, nil
}

func (u *Marketplace) Projects(ctx context.Context) ([]marketplace.Project, error) {
	projects, err := u.repo.LoadProjects(ctx)
	if err != nil {
		u.logger.Error("load projects", zap.Error(err))
		return nil, ErrInternal
	}
	return projects, nil
}

func (u *Marketplace) ClientProjects(ctx context.Context, clientID string) ([]marketplace.Project, error) {
	projects, err := u.Projects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]marketplace.Project, 0)
	for _, p := range projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MatchingProjects is empty for users without a saved profile.
func (u *Marketplace) MatchingProjects(ctx context.Context, userID string) ([]marketplace.ProjectMatch, error) {
	profile, ok, err := u.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []marketplace.ProjectMatch{}, nil
	}
	projects, err := u.Projects(ctx)
	if err != nil {
		return nil, err
	}
	return matching.MatchProjects(profile.Technologies, projects), nil
}

func (u *Marketplace) Notifications(userID string) []marketplace.Notification {
	return u.inbox.List(userID)
}

func (u *Marketplace) DismissNotification(userID, notificationID string) bool {
	return u.inbox.Dismiss(userID, notificationID)
}

func (u *Marketplace) Dashboard(ctx context.Context, usr marketplace.User) (Dashboard, error) {
	switch usr.UserType {
	case marketplace.UserTypeClient:
		projects, err := u.ClientProjects(ctx, usr.ID)
		if err != nil {
			return Dashboard{}, err
		}
		return Dashboard{
			UserType: usr.UserType,
			Client: &ClientDashboard{
				Projects:       projects,
				ActiveProjects: len(projects),
				TotalMatches:   matching.TotalMatches(projects),
				Notifications:  u.inbox.List(usr.ID),
			},
		}, nil

	case marketplace.UserTypeFreelancer:
		projects, err := u.Projects(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		fd := &FreelancerDashboard{AllProjects: projects, Matches: []marketplace.ProjectMatch{}}

		profile, ok, err := u.Profile(ctx, usr.ID)
		if err != nil {
			return Dashboard{}, err
		}
		if ok {
			fd.Profile = &profile
			fd.Matches = matching.MatchProjects(profile.Technologies, projects)
			fd.Skills = len(profile.Technologies)
			fd.AvgMatch = matching.AverageMatch(fd.Matches)
		}
		return Dashboard{UserType: usr.UserType, Freelancer: fd}, nil

	default:
		return Dashboard{}, ErrForbidden
	}
}

// nextID returns now in unix milliseconds, bumped past the previous id when
// two projects land in the same millisecond. Callers hold u.writes.
func (u *Marketplace) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= u.lastID {
		id = u.lastID + 1
	}
	u.lastID = id
	return strconv.FormatInt(id, 10)
}

func toFreelancer(id, name, email string, p marketplace.FreelancerProfile) marketplace.Freelancer {
	if name == "" {
		name = unknownFreelancerName
	}
	avatar := p.Avatar
	if avatar == "" {
		avatar = catalog.PlaceholderAvatar
	}
	return marketplace.Freelancer{
		ID:           id,
		Name:         name,
		Email:        email,
		Title:        p.Title,
		Technologies: append([]string(nil), p.Technologies...),
		HourlyRate:   p.HourlyRate,
		Experience:   p.Experience,
		Avatar:       avatar,
	}
}

// cleanTechnologies trims names and drops blanks and repeats, keeping order.
func cleanTechnologies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
