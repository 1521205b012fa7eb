package models

import "fmt"

// Group identifies a club roster. Each group keeps its own members,
// event leaderboards and time-attack competition.
type Group string

const (
	GroupPrime   Group = "prime"
	GroupPrimeID Group = "prime_id"
)

func ParseGroup(s string) (Group, error) {
	switch Group(s) {
	case GroupPrime, GroupPrimeID:
		return Group(s), nil
	}
	return "", fmt.Errorf("unknown group: %q", s)
}

// EventType identifies a score-based event leaderboard within a group.
type EventType string

const (
	EventEndurance EventType = "endurance"
	EventDualTeam  EventType = "dual_team"
)

func ParseEventType(s string) (EventType, error) {
	switch s {
	case "endurance":
		return EventEndurance, nil
	case "dual_team", "dual-team":
		return EventDualTeam, nil
	}
	return "", fmt.Errorf("unknown event type: %q", s)
}

// Scope partitions score entries: one event type within one group.
type Scope struct {
	Group Group
	Event EventType
}

func (s Scope) String() string {
	return fmt.Sprintf("%s/%s", s.Group, s.Event)
}

// Key handlers

func ScopePK(scope Scope) string {
	return fmt.Sprintf("SCOPE#%s#%s", scope.Group, scope.Event)
}

func EntrySK(username string) string {
	return fmt.Sprintf("ENTRY#%s", username)
}
