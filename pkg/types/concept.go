// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MaxKeywordLength is the longest keyword, in characters, accepted from a
// generation batch. A longer keyword marks the whole batch as anomalous.
const MaxKeywordLength = 100

// Keyword is a generated seed word with its usage statistics.
// It is unique by (Text, ModelName).
type Keyword struct {
	// Text is the keyword itself.
	Text string `json:"text" yaml:"text"`

	// CreateCount is how many times the keyword has been generated (>= 1).
	CreateCount int `json:"create_count" yaml:"create_count"`

	// UseCount is how many concept batches have consumed the keyword (>= 0).
	UseCount int `json:"use_count" yaml:"use_count"`

	// ModelName identifies the generation backend that produced the keyword.
	ModelName string `json:"model_name" yaml:"model_name"`
}

// Concept is a persisted idea. IDs within one batch are contiguous and all
// concepts of a batch share one EntryDate.
type Concept struct {
	ID          int64     `json:"id" yaml:"id"`
	NameEn      string    `json:"name_en" yaml:"name_en"`
	NameJp      string    `json:"name_jp" yaml:"name_jp"`
	Description string    `json:"description" yaml:"description"`
	ModelName   string    `json:"model_name" yaml:"model_name"`
	EntryDate   time.Time `json:"entry_date" yaml:"entry_date"`
}

// Tag labels a concept. Tags keep the order in which generation returned them.
type Tag struct {
	ConceptID int64  `json:"concept_id" yaml:"concept_id"`
	Text      string `json:"text" yaml:"text"`
}

// Draft is one concept as returned by the generation backend, before it is
// given an ID and split into Concept and Tag records.
type Draft struct {
	NameEn        string   `json:"name_en" yaml:"name_en"`
	NameJp        string   `json:"name_jp" yaml:"name_jp"`
	DescriptionJp string   `json:"description_jp" yaml:"description_jp"`
	TagsJp        []string `json:"tags_jp" yaml:"tags_jp"`
}

// ConceptWithTags is a stored concept joined with its tags, used for listing.
type ConceptWithTags struct {
	Concept `yaml:",inline"`

	Tags []string `json:"tags" yaml:"tags"`
}
