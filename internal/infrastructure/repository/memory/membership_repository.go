package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/membership"
)

type MembershipRepository struct {
	mu      sync.RWMutex
	seats   map[string]membership.Membership
	invites map[string]membership.Invite
	active  map[string]string
}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{
		seats:   make(map[string]membership.Membership),
		invites: make(map[string]membership.Invite),
		active:  make(map[string]string),
	}
}

func (r *MembershipRepository) Create(_ context.Context, item membership.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := seatKey(item.UserID, item.LeagueID)
	if _, exists := r.seats[key]; exists {
		return fmt.Errorf("membership already exists for user %s in league %s", item.UserID, item.LeagueID)
	}
	r.seats[key] = item
	return nil
}

func (r *MembershipRepository) GetByUserAndLeague(_ context.Context, userID, leagueID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seats[seatKey(userID, leagueID)]
	if !ok {
		return membership.Membership{}, false, nil
	}

	return item, true, nil
}

func (r *MembershipRepository) ListByUser(_ context.Context, userID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0)
	for _, item := range r.seats {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LeagueID < out[j].LeagueID })

	return out, nil
}

func (r *MembershipRepository) CreateInvites(_ context.Context, invites []membership.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, invite := range invites {
		r.invites[invite.Code] = cloneInvite(invite)
	}
	return nil
}

func (r *MembershipRepository) GetInviteByCode(_ context.Context, code string) (membership.Invite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invite, ok := r.invites[code]
	if !ok {
		return membership.Invite{}, false, nil
	}

	return cloneInvite(invite), true, nil
}

func (r *MembershipRepository) MarkInviteClaimed(_ context.Context, code, userID string, claimedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, ok := r.invites[code]
	if !ok {
		return fmt.Errorf("invite %s not found", code)
	}
	if invite.Claimed() {
		return fmt.Errorf("invite %s already claimed", code)
	}
	invite.ClaimedBy = userID
	invite.ClaimedAt = &claimedAt
	r.invites[code] = invite
	return nil
}

func (r *MembershipRepository) SetActiveLeague(_ context.Context, userID, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active[userID] = leagueID
	return nil
}

func (r *MembershipRepository) GetActiveLeague(_ context.Context, userID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leagueID, ok := r.active[userID]
	return leagueID, ok, nil
}

func seatKey(userID, leagueID string) string {
	return userID + "::" + leagueID
}

func cloneInvite(item membership.Invite) membership.Invite {
	copied := item
	if item.ClaimedAt != nil {
		at := *item.ClaimedAt
		copied.ClaimedAt = &at
	}
	return copied
}
