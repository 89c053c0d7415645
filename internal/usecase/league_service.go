package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/league"
	"github.com/fantachat/fantachat-api/internal/domain/membership"
	"github.com/fantachat/fantachat-api/internal/domain/team"
	"github.com/fantachat/fantachat-api/internal/domain/user"
	"github.com/fantachat/fantachat-api/internal/platform/id"
)

const (
	leagueTeamMin = 2
	leagueTeamMax = 20
)

type CreateLeagueInput struct {
	Name      string
	TeamNames []string
	CreatedBy string
}

type CreateLeagueResult struct {
	League  league.League
	Teams   []team.Team
	Invites []membership.Invite
}

// LeagueService creates leagues with their team seats and invite codes,
// and resolves the caller's league context for authorization.
type LeagueService struct {
	leagueRepo     league.Repository
	teamRepo       team.Repository
	membershipRepo membership.Repository
	idGen          id.Generator
	inviteGen      id.Generator
	now            func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	membershipRepo membership.Repository,
	idGen id.Generator,
	inviteGen id.Generator,
) *LeagueService {
	return &LeagueService{
		leagueRepo:     leagueRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		idGen:          idGen,
		inviteGen:      inviteGen,
		now:            time.Now,
	}
}

// CreateWithTeams creates the league, one team per name, and one
// single-use invite code per team. The creator takes the first team
// seat as admin and the new league becomes their active league.
func (s *LeagueService) CreateWithTeams(ctx context.Context, input CreateLeagueInput) (CreateLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateWithTeams")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)
	if input.Name == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.CreatedBy == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: creator is required", ErrInvalidInput)
	}

	names := make([]string, 0, len(input.TeamNames))
	seen := make(map[string]struct{}, len(input.TeamNames))
	for _, name := range input.TeamNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return CreateLeagueResult{}, fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return CreateLeagueResult{}, fmt.Errorf("%w: duplicate team name %q", ErrInvalidInput, name)
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	if len(names) < leagueTeamMin || len(names) > leagueTeamMax {
		return CreateLeagueResult{}, fmt.Errorf("%w: league must have between %d and %d teams", ErrInvalidInput, leagueTeamMin, leagueTeamMax)
	}

	now := s.now().UTC()
	item := league.League{
		ID:        s.idGen.NewID(),
		Name:      input.Name,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}
	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("create league: %w", err)
	}

	teams := make([]team.Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, team.Team{
			ID:       s.idGen.NewID(),
			LeagueID: item.ID,
			Name:     name,
		})
	}
	if err := s.teamRepo.CreateBatch(ctx, teams); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("create league teams: %w", err)
	}

	invites := make([]membership.Invite, 0, len(teams))
	for _, t := range teams {
		invites = append(invites, membership.Invite{
			Code:     s.inviteGen.NewID(),
			LeagueID: item.ID,
			TeamID:   t.ID,
		})
	}
	if err := s.membershipRepo.CreateInvites(ctx, invites); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("create league invites: %w", err)
	}

	creatorSeat := membership.Membership{
		UserID:   input.CreatedBy,
		LeagueID: item.ID,
		TeamID:   teams[0].ID,
		Role:     membership.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.membershipRepo.Create(ctx, creatorSeat); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("create admin membership: %w", err)
	}
	if err := s.membershipRepo.MarkInviteClaimed(ctx, invites[0].Code, input.CreatedBy, now); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("claim admin invite: %w", err)
	}
	if err := s.membershipRepo.SetActiveLeague(ctx, input.CreatedBy, item.ID); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("set active league for creator: %w", err)
	}

	return CreateLeagueResult{League: item, Teams: teams, Invites: invites}, nil
}

// ClaimInvite turns an unclaimed invite code into a player membership
// on the invite's team seat.
func (s *LeagueService) ClaimInvite(ctx context.Context, userID, code string) (membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ClaimInvite")
	defer span.End()

	userID = strings.TrimSpace(userID)
	code = strings.ToUpper(strings.TrimSpace(code))
	if userID == "" || code == "" {
		return membership.Membership{}, fmt.Errorf("%w: user_id and invite code are required", ErrInvalidInput)
	}

	invite, exists, err := s.membershipRepo.GetInviteByCode(ctx, code)
	if err != nil {
		return membership.Membership{}, fmt.Errorf("get invite by code: %w", err)
	}
	if !exists {
		return membership.Membership{}, fmt.Errorf("%w: invite=%s", ErrNotFound, code)
	}
	if invite.Claimed() {
		return membership.Membership{}, fmt.Errorf("%w: invite %s is already claimed", ErrInvalidInput, code)
	}

	if _, already, err := s.membershipRepo.GetByUserAndLeague(ctx, userID, invite.LeagueID); err != nil {
		return membership.Membership{}, fmt.Errorf("check existing membership: %w", err)
	} else if already {
		return membership.Membership{}, fmt.Errorf("%w: user already belongs to this league", ErrInvalidInput)
	}

	now := s.now().UTC()
	seat := membership.Membership{
		UserID:   userID,
		LeagueID: invite.LeagueID,
		TeamID:   invite.TeamID,
		Role:     membership.RolePlayer,
		JoinedAt: now,
	}
	if err := s.membershipRepo.Create(ctx, seat); err != nil {
		return membership.Membership{}, fmt.Errorf("create membership: %w", err)
	}
	if err := s.membershipRepo.MarkInviteClaimed(ctx, code, userID, now); err != nil {
		return membership.Membership{}, fmt.Errorf("mark invite claimed: %w", err)
	}
	if err := s.membershipRepo.SetActiveLeague(ctx, userID, invite.LeagueID); err != nil {
		return membership.Membership{}, fmt.Errorf("set active league after claim: %w", err)
	}

	return seat, nil
}

// SetActiveLeague switches the caller's active league. The caller must
// already hold a seat in the target league.
func (s *LeagueService) SetActiveLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.SetActiveLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	if _, exists, err := s.membershipRepo.GetByUserAndLeague(ctx, userID, leagueID); err != nil {
		return fmt.Errorf("get membership: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: user has no seat in league %s", ErrUnauthorized, leagueID)
	}

	if err := s.membershipRepo.SetActiveLeague(ctx, userID, leagueID); err != nil {
		return fmt.Errorf("set active league: %w", err)
	}

	return nil
}

// ResolvePrincipal builds the request-scoped identity for a user acting
// inside a league. Missing membership is an authorization failure, not
// a lookup miss.
func (s *LeagueService) ResolvePrincipal(ctx context.Context, userID, leagueID string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ResolvePrincipal")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return user.Principal{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		active, exists, err := s.membershipRepo.GetActiveLeague(ctx, userID)
		if err != nil {
			return user.Principal{}, fmt.Errorf("get active league: %w", err)
		}
		if !exists {
			return user.Principal{}, fmt.Errorf("%w: no active league for user", ErrUnauthorized)
		}
		leagueID = active
	}

	seat, exists, err := s.membershipRepo.GetByUserAndLeague(ctx, userID, leagueID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: user has no seat in league %s", ErrUnauthorized, leagueID)
	}

	return user.Principal{
		UserID:   seat.UserID,
		LeagueID: seat.LeagueID,
		TeamID:   seat.TeamID,
		Role:     seat.Role,
	}, nil
}
