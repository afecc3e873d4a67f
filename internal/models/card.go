package models

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

const subpartMarker = "Est. Subparts:"

// Card is a single Trello card together with the list movements that are
// relevant for activity reporting. Cards are immutable once fetched.
type Card struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Desc             string         `json:"desc"`
	Closed           bool           `json:"closed"`
	IDMembers        []string       `json:"idMembers"`
	DateLastActivity time.Time      `json:"dateLastActivity"`
	Movements        []CardMovement `json:"movements,omitempty"`
}

// CardMovement is one list-to-list move of a card.
type CardMovement struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
}

type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MovementTo returns the first movement whose destination list name
// contains column, or nil if the card never reached such a list.
func (c *Card) MovementTo(column string) *CardMovement {
	for i := range c.Movements {
		if strings.Contains(c.Movements[i].Destination, column) {
			return &c.Movements[i]
		}
	}
	return nil
}

// SubpartCount parses the estimated subpart count from the card
// description. Cards without an "Est. Subparts:" line count as one.
func (c *Card) SubpartCount() int {
	for _, line := range strings.Split(c.Desc, "\n") {
		if !strings.Contains(line, subpartMarker) {
			continue
		}
		_, after, _ := strings.Cut(line, subpartMarker)
		n := cast.ToInt(strings.TrimSpace(after))
		if n > 0 {
			return n
		}
		return 1
	}
	return 1
}

// BoardData is a fully synced board: all cards (open and archived) with
// their movements, plus the member id to username map.
type BoardData struct {
	BoardID string            `json:"board_id"`
	Cards   []*Card           `json:"cards"`
	Members map[string]string `json:"members"`
}

func (bd *BoardData) MemberByID(id string) (string, bool) {
	name, ok := bd.Members[id]
	return name, ok
}

// CachedCard is the per-card entry inside a board cache file. A cached
// entry is stale when its LastActivity is older than the card's current
// last-activity timestamp.
type CachedCard struct {
	Movements    []CardMovement `json:"movements"`
	LastActivity time.Time      `json:"last_activity"`
}
