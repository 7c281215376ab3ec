// Package icons enumerates the pictograms shown on project cards and about
// stats. Unknown names resolve to Database.
package icons

import "strings"

// Icon is one known pictogram.
type Icon int

const (
	Database Icon = iota
	Activity
	BookOpen
	Dumbbell
	Cloud
	Workflow
	BarChart
	Server
	GitBranch
	Globe
	Fish
	Gamepad
	Brain
	TrendingUp
	Receipt
	Zap
	Award

	count
)

// Default is used whenever a name is missing or unknown.
const Default = Database

type info struct {
	name  string
	glyph string
}

var table = [count]info{
	Database:   {"Database", "🗄️"},
	Activity:   {"Activity", "📈"},
	BookOpen:   {"BookOpen", "📖"},
	Dumbbell:   {"Dumbbell", "🏋️"},
	Cloud:      {"Cloud", "☁️"},
	Workflow:   {"Workflow", "🔀"},
	BarChart:   {"BarChart", "📊"},
	Server:     {"Server", "🖥️"},
	GitBranch:  {"GitBranch", "🌿"},
	Globe:      {"Globe", "🌐"},
	Fish:       {"Fish", "🐟"},
	Gamepad:    {"Gamepad2", "🎮"},
	Brain:      {"Brain", "🧠"},
	TrendingUp: {"TrendingUp", "📈"},
	Receipt:    {"Receipt", "🧾"},
	Zap:        {"Zap", "⚡"},
	Award:      {"Award", "🏆"},
}

var byName = func() map[string]Icon {
	m := make(map[string]Icon, count)
	for i := Icon(0); i < count; i++ {
		m[strings.ToLower(table[i].name)] = i
	}
	return m
}()

// Parse resolves an icon name case-insensitively, falling back to Default.
func Parse(name string) Icon {
	if i, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return i
	}
	return Default
}

// Known reports whether name resolves to an icon without falling back.
func Known(name string) bool {
	_, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (i Icon) valid() bool { return i >= 0 && i < count }

// Name is the canonical icon name.
func (i Icon) Name() string {
	if !i.valid() {
		return table[Default].name
	}
	return table[i].name
}

// Glyph is the character rendered for the icon.
func (i Icon) Glyph() string {
	if !i.valid() {
		return table[Default].glyph
	}
	return table[i].glyph
}

func (i Icon) String() string { return i.Name() }

// All lists every icon in declaration order.
func All() []Icon {
	out := make([]Icon, count)
	for i := range out {
		out[i] = Icon(i)
	}
	return out
}
