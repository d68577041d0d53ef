package achievement

// Type identifies an achievement
type Type string

const (
	FirstPurchase Type = "FIRST_PURCHASE"
	Collector5    Type = "COLLECTOR_5"
	Collector10   Type = "COLLECTOR_10"
	Reviewer      Type = "REVIEWER"
	Reviewer5     Type = "REVIEWER_5"
	Wishlist10    Type = "WISHLIST_10"
	Spender100    Type = "SPENDER_100"
	Spender500    Type = "SPENDER_500"
)

// Definition describes how an achievement is displayed
type Definition struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var definitions = []Definition{
	{FirstPurchase, "First Purchase", "Made your first game purchase", "🎮"},
	{Collector5, "Collector", "Own 5 games", "📚"},
	{Collector10, "Master Collector", "Own 10 games", "📖"},
	{Reviewer, "Reviewer", "Write your first review", "⭐"},
	{Reviewer5, "Critic", "Write 5 reviews", "📝"},
	{Wishlist10, "Dreamer", "Add 10 games to wishlist", "❤️"},
	{Spender100, "Big Spender", "Spend $100 on games", "💰"},
	{Spender500, "Whale", "Spend $500 on games", "🐋"},
}

var definitionsByType = func() map[Type]Definition {
	m := make(map[Type]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Type] = d
	}
	return m
}()

// Lookup returns the definition of an achievement type
func Lookup(t Type) (Definition, bool) {
	d, ok := definitionsByType[t]
	return d, ok
}

// Definitions returns every achievement definition in display order
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}
