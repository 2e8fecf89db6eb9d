package progress

import "slices"

// MaxLevel is the highest level a player can reach.
const MaxLevel = 10

// LevelUpEvery is the number of cumulative correct answers between level-ups.
const LevelUpEvery = 5

// Progress is the player's persisted gamification record.
//
// The JSON field names are the wire names used by the document store.
type Progress struct {
	// ID is the opaque store identifier. Empty until the first successful create.
	ID string `json:"_id,omitempty"`

	Level          int       `json:"level"`
	TotalScore     int       `json:"total_score"`
	ProblemsSolved int       `json:"problems_solved"`
	CorrectAnswers int       `json:"correct_answers"`
	Badges         []BadgeID `json:"badges"`
	Streak         int       `json:"streak"`
	BestStreak     int       `json:"best_streak"`
}

// Initial returns a fresh record: level 1, zero counters, no badges.
func Initial() Progress {
	return Progress{
		Level:  1,
		Badges: []BadgeID{},
	}
}

// Clone returns a deep copy of p.
func (p Progress) Clone() Progress {
	c := p
	c.Badges = slices.Clone(p.Badges)
	if c.Badges == nil {
		c.Badges = []BadgeID{}
	}
	return c
}

// HasBadge reports whether the badge has been unlocked.
func (p Progress) HasBadge(id BadgeID) bool {
	return slices.Contains(p.Badges, id)
}

// Accuracy returns the fraction of answered problems that were correct.
func (p Progress) Accuracy() float64 {
	if p.ProblemsSolved == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.ProblemsSolved)
}

// Problem is a single multiple-choice question. It is produced by the
// generator, answered once, and never persisted.
type Problem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Topic              string   `json:"topic"`
	DifficultyRating   int      `json:"difficultyRating"`
}

// CorrectOption returns the text of the correct option, or "" when the
// index is out of range.
func (p Problem) CorrectOption() string {
	return p.Option(p.CorrectOptionIndex)
}

// Option returns the text of option i, or "" when i is out of range.
func (p Problem) Option(i int) string {
	if i < 0 || i >= len(p.Options) {
		return ""
	}
	return p.Options[i]
}

var levelTopics = map[int]string{
	1:  "Basic Arithmetic (Addition/Subtraction)",
	2:  "Multiplication Basics",
	3:  "Division & Mixed Operations",
	4:  "Fractions & Decimals",
	5:  "Basic Algebra",
	6:  "Geometry Concepts",
	7:  "Advanced Algebra",
	8:  "Calculus Intro (Limits)",
	9:  "Complex Numbers",
	10: "Galactic Master (Challenge Mode)",
}

// LevelTopic returns the curriculum topic for a level.
func LevelTopic(level int) string {
	if t, ok := levelTopics[level]; ok {
		return t
	}
	return "General Math"
}
