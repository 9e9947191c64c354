package models

import "time"

// Service is a category of work (e.g. "plumber") together with the lowercase
// keywords the intent resolver matches against. Services are created and
// edited by the admin surface; the query pipeline treats them as read-only.
type Service struct {
	Name      string    `bson:"name" json:"name"`
	Synonyms  []string  `bson:"synonyms" json:"synonyms"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceSynonyms is one catalog entry in stable resolution order.
type ServiceSynonyms struct {
	Service  string
	Keywords []string
}
