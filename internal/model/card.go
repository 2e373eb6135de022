package model

// Suit is one of the four card suits
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits returns all suits in deck-building order
func Suits() []Suit {
	return []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
}

// Rank is one of the thirteen card ranks
type Rank string

const (
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// Ranks returns all ranks in deck-building order, low to high
func Ranks() []Rank {
	return []Rank{
		RankTwo, RankThree, RankFour, RankFive, RankSix,
		RankSeven, RankEight, RankNine, RankTen,
		RankJack, RankQueen, RankKing, RankAce,
	}
}

// Card is an immutable rank/suit pair. Cards are compared and copied by value.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns a short form like "As" for the ace of spades
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit[0])
}

// NewDeck returns the 52 unique cards in a fixed order.
// The caller is responsible for shuffling.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// HandSize is the number of hole cards dealt to each active player
const HandSize = 2
