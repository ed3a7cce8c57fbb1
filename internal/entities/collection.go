package entities

// OwnedCard is one card entry in a player's collection. Holo and non-holo
// copies of the same card are tracked as separate entries.
type OwnedCard struct {
	CardID     string `json:"cardId"`
	Holo       bool   `json:"holo"`
	Count      int32  `json:"count"`
	ObtainedAt int64  `json:"obtainedAt"`
}

// Key returns the entry key distinguishing holo from non-holo copies
func (o *OwnedCard) Key() string {
	if o.Holo {
		return o.CardID + ":holo"
	}
	return o.CardID
}

// Collection is a player's full set of owned cards keyed by OwnedCard.Key
type Collection struct {
	PlayerID  string                `json:"playerId"`
	Cards     map[string]*OwnedCard `json:"cards"`
	UpdatedAt int64                 `json:"updatedAt"`
}

// TotalCards returns the total copy count across all entries
func (c *Collection) TotalCards() int32 {
	var total int32
	for _, oc := range c.Cards {
		total += oc.Count
	}
	return total
}

// BackupVersion is the accepted collection backup document version
const BackupVersion = 1

// CollectionBackup is the JSON export/import document for a collection
type CollectionBackup struct {
	Version    int32       `json:"version"`
	PlayerID   string      `json:"playerId"`
	ExportedAt int64       `json:"exportedAt"`
	Cards      []OwnedCard `json:"cards"`
}
