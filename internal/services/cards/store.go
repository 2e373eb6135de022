package cards

import (
	"github.com/cardtable/holdem-go/internal/dependencies/random"
	"github.com/cardtable/holdem-go/internal/model"
)

// Store holds the live deck and the dealt hole cards for the current round.
// It is owned exclusively by the game actor and must never be shared; the
// hole-card mapping is the one piece of state that is never broadcast.
type Store struct {
	deck   []model.Card
	hands  map[model.PlayerID][]model.Card
	random random.Random
}

// NewStore creates an empty card store
func NewStore(rnd random.Random) *Store {
	return &Store{
		hands:  make(map[model.PlayerID][]model.Card),
		random: rnd,
	}
}

// Reset rebuilds a full shuffled deck and clears all dealt hands.
// Called at the start of every round.
func (s *Store) Reset() {
	s.deck = model.NewDeck()
	s.random.Shuffle(len(s.deck), func(i, j int) {
		s.deck[i], s.deck[j] = s.deck[j], s.deck[i]
	})
	s.hands = make(map[model.PlayerID][]model.Card)
}

// DeckSize returns the number of undealt cards
func (s *Store) DeckSize() int {
	return len(s.deck)
}

// DealHand pops two cards off the deck top and records them as the player's
// hole cards. The round reset guarantees enough cards for a full table, so
// underflow here is a logic defect, not a runtime condition.
func (s *Store) DealHand(playerID model.PlayerID) []model.Card {
	hand := []model.Card{s.pop(), s.pop()}
	s.hands[playerID] = hand
	return hand
}

// Hand returns the player's hole cards, or nil if none were dealt
func (s *Store) Hand(playerID model.PlayerID) []model.Card {
	hand, ok := s.hands[playerID]
	if !ok {
		return nil
	}
	out := make([]model.Card, len(hand))
	copy(out, hand)
	return out
}

// Burn discards the top deck card before a community reveal
func (s *Store) Burn() {
	if len(s.deck) == 0 {
		return
	}
	s.deck = s.deck[:len(s.deck)-1]
}

// Reveal pops up to n cards off the deck top for the community board
func (s *Store) Reveal(n int) []model.Card {
	if n > len(s.deck) {
		n = len(s.deck)
	}
	out := make([]model.Card, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.pop())
	}
	return out
}

func (s *Store) pop() model.Card {
	if len(s.deck) == 0 {
		panic("cards: deck exhausted while dealing")
	}
	card := s.deck[len(s.deck)-1]
	s.deck = s.deck[:len(s.deck)-1]
	return card
}
