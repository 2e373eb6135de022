package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/holdem-go/internal/dependencies/mocks"
	"github.com/cardtable/holdem-go/internal/dependencies/random"
	"github.com/cardtable/holdem-go/internal/model"
)

func newTestStore() *Store {
	return NewStore(mocks.NewMockRandom())
}

func TestResetBuildsFullDeck(t *testing.T) {
	store := newTestStore()
	store.Reset()
	assert.Equal(t, 52, store.DeckSize())
}

func TestResetClearsDealtHands(t *testing.T) {
	store := newTestStore()
	store.Reset()
	store.DealHand("p1")
	require.NotNil(t, store.Hand("p1"))

	store.Reset()
	assert.Nil(t, store.Hand("p1"))
	assert.Equal(t, 52, store.DeckSize())
}

func TestDealHandConsumesTwoDistinctCards(t *testing.T) {
	store := newTestStore()
	store.Reset()

	hand := store.DealHand("p1")
	require.Len(t, hand, model.HandSize)
	assert.NotEqual(t, hand[0], hand[1])
	assert.Equal(t, 50, store.DeckSize())
}

func TestDealtHandsNeverOverlap(t *testing.T) {
	store := NewStore(random.New())
	store.Reset()

	players := []model.PlayerID{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}
	seen := make(map[model.Card]bool)
	for _, id := range players {
		for _, card := range store.DealHand(id) {
			assert.False(t, seen[card], "card %v dealt twice", card)
			seen[card] = true
		}
	}

	assert.Equal(t, 52-2*len(players), store.DeckSize())
}

func TestHandReturnsCopy(t *testing.T) {
	store := newTestStore()
	store.Reset()
	store.DealHand("p1")

	hand := store.Hand("p1")
	hand[0] = model.Card{Rank: model.RankTwo, Suit: model.SuitClubs}

	fresh := store.Hand("p1")
	assert.NotEqual(t, hand[0], fresh[0])
}

func TestHandForUnknownPlayerIsNil(t *testing.T) {
	store := newTestStore()
	store.Reset()
	assert.Nil(t, store.Hand("stranger"))
}

func TestBurnDiscardsOneCard(t *testing.T) {
	store := newTestStore()
	store.Reset()

	store.Burn()
	assert.Equal(t, 51, store.DeckSize())
}

func TestRevealPopsRequestedCount(t *testing.T) {
	store := newTestStore()
	store.Reset()

	flop := store.Reveal(3)
	require.Len(t, flop, 3)
	assert.Equal(t, 49, store.DeckSize())

	turn := store.Reveal(1)
	require.Len(t, turn, 1)
	assert.NotContains(t, flop, turn[0])
}

func TestShuffleIsDrivenByInjectedRandom(t *testing.T) {
	// two stores with identical queued randomness must deal identically
	a := NewStore(mocks.NewMockRandom())
	b := NewStore(mocks.NewMockRandom())
	a.Reset()
	b.Reset()

	assert.Equal(t, a.DealHand("p"), b.DealHand("p"))
}

func TestDealPanicsOnExhaustedDeck(t *testing.T) {
	store := newTestStore()
	store.Reset()
	store.Reveal(52)

	assert.Panics(t, func() { store.DealHand("p1") })
}
