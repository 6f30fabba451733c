// Package campaign models a GM-run campaign and the combat encounter embedded in it.
package campaign

import (
	"errors"
	"fmt"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
)

// Status is the lifecycle state of a campaign.
type Status string

const (
	StatusActive   Status = "Active"
	StatusPaused   Status = "Paused"
	StatusArchived Status = "Archived"
)

// MemberStatus tracks a character's request to join a campaign.
type MemberStatus string

const (
	MemberPending  MemberStatus = "Pending"
	MemberAccepted MemberStatus = "Accepted"
	MemberRejected MemberStatus = "Rejected"
)

var (
	// ErrAlreadyMember is returned when a character requests to join twice.
	ErrAlreadyMember = errors.New("character already in campaign")
	// ErrNotMember is returned when a membership change targets an unknown character.
	ErrNotMember = errors.New("character is not a member")
	// ErrInsufficientGold is returned when a purse cannot cover a payment.
	ErrInsufficientGold = errors.New("insufficient gold")
	// ErrNoUpkeep is returned when upkeep is paid with no cost set.
	ErrNoUpkeep = errors.New("no upkeep cost set")
	// ErrNegativeUpkeep is returned when the upkeep cost is set below zero.
	ErrNegativeUpkeep = errors.New("upkeep must not be negative")
)

// Member is a character enrolled in a campaign.
type Member struct {
	UserID        string       `json:"user_id"`
	CharacterID   string       `json:"character_id"`
	CharacterName string       `json:"character_name"`
	Status        MemberStatus `json:"status"`
}

// Campaign is the persisted campaign document. The embedded Encounter holds
// the combat roster and log.
type Campaign struct {
	ID           string   `json:"id"`
	GMID         string   `json:"gm_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Status       Status   `json:"status"`
	MapURL       string   `json:"map_url"`
	PartyGold    int      `json:"party_gold"`
	UpkeepCost   int      `json:"upkeep_cost"`
	Members      []Member `json:"members"`
	CombatActive bool     `json:"combat_active"`
	combat.Encounter
}

// New creates an active campaign with no combat in progress.
//
// Postcondition: The returned campaign satisfies Validate when id, gmID and name are non-empty.
func New(id, gmID, name string) *Campaign {
	c := &Campaign{
		ID:      id,
		GMID:    gmID,
		Name:    name,
		Status:  StatusActive,
		Members: []Member{},
	}
	c.Reset()
	return c
}

// IsGM reports whether userID runs this campaign.
func (c *Campaign) IsGM(userID string) bool { return c.GMID == userID }

// Validate checks the document invariants.
//
// Postcondition: Returns nil iff ids and name are present, the status is
// known, the treasury and upkeep are non-negative, and an inactive campaign
// has no combatants.
func (c *Campaign) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.GMID == "" {
		errs = append(errs, errors.New("gm_id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch c.Status {
	case StatusActive, StatusPaused, StatusArchived:
	default:
		errs = append(errs, fmt.Errorf("unknown status %q", c.Status))
	}
	if c.PartyGold < 0 || c.UpkeepCost < 0 {
		errs = append(errs, errors.New("party_gold and upkeep_cost must not be negative"))
	}
	if !c.CombatActive && len(c.Combatants) > 0 {
		errs = append(errs, errors.New("combatants present while combat is inactive"))
	}
	if len(c.Log) > combat.LogCapacity {
		errs = append(errs, fmt.Errorf("combat log holds %d entries, max %d", len(c.Log), combat.LogCapacity))
	}
	for i, cb := range c.Combatants {
		if cb == nil {
			errs = append(errs, fmt.Errorf("combatant %d is null", i))
			continue
		}
		if cb.HPCurrent < 0 || cb.HPCurrent > cb.HPMax {
			errs = append(errs, fmt.Errorf("combatant %q: hp %d outside [0, %d]", cb.ID, cb.HPCurrent, cb.HPMax))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("campaign %q: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// StartEncounter activates combat with the given roster and a fresh log.
func (c *Campaign) StartEncounter(cs []*combat.Combatant) {
	c.CombatActive = true
	c.Combatants = cs
	c.Log = combat.Log{}
}

// EndEncounter deactivates combat and discards the roster and log.
//
// Postcondition: CombatActive is false and Combatants is empty.
func (c *Campaign) EndEncounter() {
	c.CombatActive = false
	c.Reset()
}

// Join records a pending membership request.
//
// Postcondition: Returns ErrAlreadyMember when characterID is already enrolled.
func (c *Campaign) Join(userID, characterID, characterName string) error {
	if c.member(characterID) != nil {
		return ErrAlreadyMember
	}
	c.Members = append(c.Members, Member{
		UserID:        userID,
		CharacterID:   characterID,
		CharacterName: characterName,
		Status:        MemberPending,
	})
	return nil
}

// SetMemberStatus accepts or rejects a membership.
func (c *Campaign) SetMemberStatus(characterID string, status MemberStatus) error {
	switch status {
	case MemberPending, MemberAccepted, MemberRejected:
	default:
		return fmt.Errorf("unknown member status %q", status)
	}
	m := c.member(characterID)
	if m == nil {
		return ErrNotMember
	}
	m.Status = status
	return nil
}

// AcceptedCharacterIDs lists the characters currently in the party.
func (c *Campaign) AcceptedCharacterIDs() []string {
	var ids []string
	for _, m := range c.Members {
		if m.Status == MemberAccepted {
			ids = append(ids, m.CharacterID)
		}
	}
	return ids
}

// HasPlayer reports whether userID has any character enrolled, pending or not.
func (c *Campaign) HasPlayer(userID string) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// UpdateSettings sets the map image and the upkeep charged per payment.
//
// Postcondition: Returns ErrNegativeUpkeep and changes nothing when upkeep < 0.
func (c *Campaign) UpdateSettings(mapURL string, upkeep int) error {
	if upkeep < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeUpkeep, upkeep)
	}
	c.MapURL = mapURL
	c.UpkeepCost = upkeep
	return nil
}

// PayUpkeep takes the upkeep cost out of the treasury.
//
// Postcondition: Returns ErrNoUpkeep or ErrInsufficientGold and changes
// nothing when the payment cannot be made.
func (c *Campaign) PayUpkeep() error {
	if c.UpkeepCost <= 0 {
		return ErrNoUpkeep
	}
	if c.PartyGold < c.UpkeepCost {
		return fmt.Errorf("%w: treasury holds %d of %d", ErrInsufficientGold, c.PartyGold, c.UpkeepCost)
	}
	c.PartyGold -= c.UpkeepCost
	return nil
}

// TransferGold moves gold between a member's purse and the treasury. A
// positive amount goes from the character to the party, a negative one from
// the party to the character.
//
// Postcondition: Returns ErrNotMember or ErrInsufficientGold and changes
// nothing when the transfer cannot be made.
func (c *Campaign) TransferGold(ch *character.Character, amount int) error {
	if c.member(ch.ID) == nil {
		return ErrNotMember
	}
	switch {
	case amount > 0 && ch.Status.Gold < amount:
		return fmt.Errorf("%w: %s holds %d", ErrInsufficientGold, ch.Name, ch.Status.Gold)
	case amount < 0 && c.PartyGold < -amount:
		return fmt.Errorf("%w: treasury holds %d", ErrInsufficientGold, c.PartyGold)
	}
	ch.Status.Gold -= amount
	c.PartyGold += amount
	return nil
}

func (c *Campaign) member(characterID string) *Member {
	for i := range c.Members {
		if c.Members[i].CharacterID == characterID {
			return &c.Members[i]
		}
	}
	return nil
}
