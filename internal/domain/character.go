package domain

import "time"

// StatBlock is the fixed set of character attributes. Stat bonuses from
// equipped items use the same shape so they can be added and subtracted
// field by field.
type StatBlock struct {
	Discipline int `json:"discipline"`
	Intellect  int `json:"intellect"`
	Strength   int `json:"strength"`
	Charisma   int `json:"charisma"`
}

// Add returns the component-wise sum of two stat blocks.
func (s StatBlock) Add(o StatBlock) StatBlock {
	return StatBlock{
		Discipline: s.Discipline + o.Discipline,
		Intellect:  s.Intellect + o.Intellect,
		Strength:   s.Strength + o.Strength,
		Charisma:   s.Charisma + o.Charisma,
	}
}

// Sub returns the component-wise difference of two stat blocks.
func (s StatBlock) Sub(o StatBlock) StatBlock {
	return StatBlock{
		Discipline: s.Discipline - o.Discipline,
		Intellect:  s.Intellect - o.Intellect,
		Strength:   s.Strength - o.Strength,
		Charisma:   s.Charisma - o.Charisma,
	}
}

// IsZero reports whether every attribute is zero.
func (s StatBlock) IsZero() bool {
	return s == StatBlock{}
}

// Character is a student's progression avatar within one class.
// There is exactly one character per (student, class) pair.
type Character struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"student_id"`
	ClassID    string     `json:"class_id"`
	Level      int        `json:"level"`
	XP         int64      `json:"xp"`
	Light      int        `json:"light"`
	MaxLight   int        `json:"max_light"`
	Stats      StatBlock  `json:"stats"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Archived reports whether the character has been administratively archived.
func (c *Character) Archived() bool {
	return c.ArchivedAt != nil
}
