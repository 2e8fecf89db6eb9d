package progress

// BadgeID identifies a one-time-unlockable achievement.
type BadgeID string

const (
	BadgeNoviceCounter BadgeID = "novice_counter"
	BadgeStreakMaster  BadgeID = "streak_master"
	BadgeLevelUp       BadgeID = "level_up"
	BadgeMathWizard    BadgeID = "math_wizard"

	// BadgePerfectionist is listed in the catalog but no rule unlocks it.
	BadgePerfectionist BadgeID = "perfectionist"
)

// BadgeDefinition describes how a badge is displayed.
type BadgeDefinition struct {
	ID          BadgeID
	Name        string
	Icon        string
	Description string
	Color       string // hex color used by the UI
}

var catalog = []BadgeDefinition{
	{ID: BadgeNoviceCounter, Name: "Novice Counter", Icon: "🧮", Description: "Solve your first 5 problems", Color: "#3B82F6"},
	{ID: BadgeStreakMaster, Name: "Streak Master", Icon: "🔥", Description: "Reach a streak of 5", Color: "#F97316"},
	{ID: BadgeLevelUp, Name: "Level Up!", Icon: "🚀", Description: "Reach Level 2", Color: "#A855F7"},
	{ID: BadgeMathWizard, Name: "Math Wizard", Icon: "🧙", Description: "Solve 50 problems correctly", Color: "#EAB308"},
	{ID: BadgePerfectionist, Name: "Perfectionist", Icon: "💎", Description: "Get a 100% score in a session", Color: "#06B6D4"},
}

// Catalog returns all badge definitions in display order.
func Catalog() []BadgeDefinition {
	out := make([]BadgeDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// LookupBadge returns the definition for id.
func LookupBadge(id BadgeID) (BadgeDefinition, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}

// DisplayName returns the badge name, or the raw id for unknown badges.
func (id BadgeID) DisplayName() string {
	if b, ok := LookupBadge(id); ok {
		return b.Name
	}
	return string(id)
}

// Icon returns the badge glyph.
func (id BadgeID) Icon() string {
	if b, ok := LookupBadge(id); ok {
		return b.Icon
	}
	return "✦"
}
