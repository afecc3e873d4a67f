package services

import (
	"strings"

	"treport/internal/models"
	"treport/internal/structures"
)

type CardFilter interface {
	Matches(card *models.Card) bool
}

type NameStartsWith struct {
	Keyword string
}

func (f NameStartsWith) Matches(card *models.Card) bool {
	return strings.HasPrefix(card.Name, f.Keyword)
}

type NameContains struct {
	Keyword string
}

func (f NameContains) Matches(card *models.Card) bool {
	return strings.Contains(card.Name, f.Keyword)
}

func cardFiltersFromRules(rules structures.FilterRules) []CardFilter {
	var filters []CardFilter
	for _, kw := range rules.NameStartsWith {
		filters = append(filters, NameStartsWith{Keyword: kw})
	}
	for _, kw := range rules.NameContains {
		filters = append(filters, NameContains{Keyword: kw})
	}
	return filters
}

// matchesAll: with include filters set, a card must match every one to
// stay in. matchesAny: a card matching any exclude filter is dropped.
func matchesAll(card *models.Card, filters []CardFilter) bool {
	for _, f := range filters {
		if !f.Matches(card) {
			return false
		}
	}
	return true
}

func matchesAny(card *models.Card, filters []CardFilter) bool {
	for _, f := range filters {
		if f.Matches(card) {
			return true
		}
	}
	return false
}
