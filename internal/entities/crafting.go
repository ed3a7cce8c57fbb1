package entities

// CraftingRecipe maps N input cards of a rarity to an output rarity with a
// success probability. FailReturnRate is the fraction of inputs handed back
// on failure, floor-rounded; the rest are consumed either way.
type CraftingRecipe struct {
	ID             string  `json:"id"`
	InputRarity    Rarity  `json:"inputRarity"`
	InputCount     int32   `json:"inputCount"`
	OutputRarity   Rarity  `json:"outputRarity"`
	OutputCount    int32   `json:"outputCount"`
	SuccessRate    int32   `json:"successRate"` // percent, 1-100
	FailReturnRate float64 `json:"failReturnRate"`
}

// CraftingSessionState tracks a session through its lifecycle. A resolve
// deletes the session and leaves a CraftingRecord, so stored sessions are
// always selecting.
type CraftingSessionState string

// Session states
const (
	CraftingStateSelecting CraftingSessionState = "selecting"
)

// CraftingSession is a player's in-progress craft. The store holds at most
// one active session per player.
type CraftingSession struct {
	ID        string               `json:"id"`
	PlayerID  string               `json:"playerId"`
	RecipeID  string               `json:"recipeId"`
	CardIDs   []string             `json:"cardIds"`
	State     CraftingSessionState `json:"state"`
	StartedAt int64                `json:"startedAt"`
}

// CraftingRecord is one audit entry in a player's crafting history
type CraftingRecord struct {
	ID            string   `json:"id"`
	PlayerID      string   `json:"playerId"`
	RecipeID      string   `json:"recipeId"`
	ConsumedIDs   []string `json:"consumedIds"`
	ReturnedIDs   []string `json:"returnedIds,omitempty"`
	Success       bool     `json:"success"`
	OutputCardID  string   `json:"outputCardId,omitempty"`
	OutputHolo    bool     `json:"outputHolo,omitempty"`
	ResolvedAt    int64    `json:"resolvedAt"`
}
