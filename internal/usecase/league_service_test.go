package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fantachat/fantachat-api/internal/domain/membership"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

type seqGenerator struct {
	prefix string
	next   int
}

func (g *seqGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

type leagueFixture struct {
	svc            *LeagueService
	membershipRepo *memory.MembershipRepository
}

func newLeagueFixture(t *testing.T) leagueFixture {
	t.Helper()

	membershipRepo := memory.NewMembershipRepository()
	return leagueFixture{
		svc: NewLeagueService(
			memory.NewLeagueRepository(),
			memory.NewTeamRepository(),
			membershipRepo,
			&seqGenerator{prefix: "id"},
			&seqGenerator{prefix: "INVITE"},
		),
		membershipRepo: membershipRepo,
	}
}

func TestLeagueServiceCreateWithTeams(t *testing.T) {
	fx := newLeagueFixture(t)

	result, err := fx.svc.CreateWithTeams(context.Background(), CreateLeagueInput{
		Name:      "FantaChat",
		TeamNames: []string{"Alfa", "Beta", "Gamma"},
		CreatedBy: "usr-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(result.Teams) != 3 || len(result.Invites) != 3 {
		t.Fatalf("expected 3 teams and 3 invites, got %d/%d", len(result.Teams), len(result.Invites))
	}

	seat, exists, err := fx.membershipRepo.GetByUserAndLeague(context.Background(), "usr-1", result.League.ID)
	if err != nil || !exists {
		t.Fatalf("creator seat: exists=%v err=%v", exists, err)
	}
	if !seat.IsAdmin() || seat.TeamID != result.Teams[0].ID {
		t.Fatalf("creator must be admin of the first team: %+v", seat)
	}

	// The creator's invite is consumed, the others stay claimable.
	invite, _, err := fx.membershipRepo.GetInviteByCode(context.Background(), result.Invites[0].Code)
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if !invite.Claimed() {
		t.Fatal("creator invite must be claimed")
	}

	active, exists, err := fx.membershipRepo.GetActiveLeague(context.Background(), "usr-1")
	if err != nil || !exists || active != result.League.ID {
		t.Fatalf("active league: %s exists=%v err=%v", active, exists, err)
	}
}

func TestLeagueServiceCreateValidation(t *testing.T) {
	fx := newLeagueFixture(t)

	cases := []struct {
		name  string
		input CreateLeagueInput
	}{
		{"missing name", CreateLeagueInput{TeamNames: []string{"A", "B"}, CreatedBy: "usr-1"}},
		{"one team", CreateLeagueInput{Name: "L", TeamNames: []string{"A"}, CreatedBy: "usr-1"}},
		{"duplicate team", CreateLeagueInput{Name: "L", TeamNames: []string{"A", "a"}, CreatedBy: "usr-1"}},
		{"no creator", CreateLeagueInput{Name: "L", TeamNames: []string{"A", "B"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fx.svc.CreateWithTeams(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLeagueServiceClaimInvite(t *testing.T) {
	fx := newLeagueFixture(t)

	result, err := fx.svc.CreateWithTeams(context.Background(), CreateLeagueInput{
		Name:      "FantaChat",
		TeamNames: []string{"Alfa", "Beta"},
		CreatedBy: "usr-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seat, err := fx.svc.ClaimInvite(context.Background(), "usr-2", result.Invites[1].Code)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if seat.Role != membership.RolePlayer || seat.TeamID != result.Teams[1].ID {
		t.Fatalf("unexpected seat: %+v", seat)
	}

	// Second claim of the same code fails.
	if _, err := fx.svc.ClaimInvite(context.Background(), "usr-3", result.Invites[1].Code); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for claimed invite, got %v", err)
	}

	// Unknown codes are a lookup miss.
	if _, err := fx.svc.ClaimInvite(context.Background(), "usr-3", "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueServiceResolvePrincipal(t *testing.T) {
	fx := newLeagueFixture(t)

	result, err := fx.svc.CreateWithTeams(context.Background(), CreateLeagueInput{
		Name:      "FantaChat",
		TeamNames: []string{"Alfa", "Beta"},
		CreatedBy: "usr-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	principal, err := fx.svc.ResolvePrincipal(context.Background(), "usr-1", result.League.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if principal.Role != membership.RoleAdmin || principal.TeamID != result.Teams[0].ID {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	// Falls back to the active league when none is given.
	principal, err = fx.svc.ResolvePrincipal(context.Background(), "usr-1", "")
	if err != nil {
		t.Fatalf("resolve with active league: %v", err)
	}
	if principal.LeagueID != result.League.ID {
		t.Fatalf("expected active league, got %+v", principal)
	}

	// Strangers are unauthorized, not missing.
	if _, err := fx.svc.ResolvePrincipal(context.Background(), "usr-9", result.League.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLeagueServiceSetActiveLeagueRequiresSeat(t *testing.T) {
	fx := newLeagueFixture(t)

	result, err := fx.svc.CreateWithTeams(context.Background(), CreateLeagueInput{
		Name:      "FantaChat",
		TeamNames: []string{"Alfa", "Beta"},
		CreatedBy: "usr-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := fx.svc.SetActiveLeague(context.Background(), "usr-9", result.League.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := fx.svc.SetActiveLeague(context.Background(), "usr-1", result.League.ID); err != nil {
		t.Fatalf("set active league: %v", err)
	}
}
