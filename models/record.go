package models

import "time"

// DeckRecord is a generated deck persisted for a signed-in user, keyed by a
// UUID so records can be addressed before any database round trip. Source is
// the generation path ("ai" or "fallback"); SourceKind is the input kind
// ("text", "topic", "url" or "pdf").
type DeckRecord struct {
	ID         string    `bson:"_id" json:"id"`
	Owner      string    `bson:"owner" json:"owner"`
	Source     string    `bson:"source" json:"source"`
	SourceKind string    `bson:"sourceKind" json:"sourceKind"`
	Theme      string    `bson:"theme" json:"theme"`
	Deck       SlideDeck `bson:"deck" json:"deck"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
