package skills

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a skill does not exist.
var ErrNotFound = errors.New("skill not found")

// Category groups skills in the skills section.
type Category string

const (
	CategoryDataEngineering      Category = "DATA_ENGINEERING"
	CategoryCloudInfrastructure  Category = "CLOUD_INFRASTRUCTURE"
	CategoryProgrammingDatabases Category = "PROGRAMMING_DATABASES"
	CategoryAnalyticsML          Category = "ANALYTICS_ML"
	CategoryDevelopmentTools     Category = "DEVELOPMENT_TOOLS"
	CategoryWebDevelopment       Category = "WEB_DEVELOPMENT"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDataEngineering,
	CategoryCloudInfrastructure,
	CategoryProgrammingDatabases,
	CategoryAnalyticsML,
	CategoryDevelopmentTools,
	CategoryWebDevelopment,
}

var categoryTitles = map[Category]string{
	CategoryDataEngineering:      "Data Engineering",
	CategoryCloudInfrastructure:  "Cloud & Infrastructure",
	CategoryProgrammingDatabases: "Programming & Databases",
	CategoryAnalyticsML:          "Analytics & ML",
	CategoryDevelopmentTools:     "Development Tools",
	CategoryWebDevelopment:       "Web Development",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title is the section heading for c.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// ParseCategory accepts the wire form in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

// Skill is one entry of the skills section, with a 0-100 proficiency level.
type Skill struct {
	ID           int64     `json:"id" yaml:"-"`
	Name         string    `json:"name" yaml:"name"`
	Category     Category  `json:"category" yaml:"category"`
	Level        int       `json:"level" yaml:"level"`
	DisplayOrder int       `json:"displayOrder" yaml:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"-"`
}

// Validate checks the required fields.
func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("skill name is required")
	}
	if s.Category == "" {
		return errors.New("category is required")
	}
	if !s.Category.Valid() {
		return fmt.Errorf("invalid category %q", s.Category)
	}
	if s.Level < 0 || s.Level > 100 {
		return errors.New("level must be between 0 and 100")
	}
	return nil
}

// Group is the skills of one category under its display title.
type Group struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Skills   []Skill  `json:"skills"`
}

// GroupByCategory buckets skills in category order, keeping the input order
// inside each bucket and dropping empty categories.
func GroupByCategory(list []Skill) []Group {
	var groups []Group
	for _, c := range Categories {
		var members []Skill
		for _, s := range list {
			if s.Category == c {
				members = append(members, s)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Category: c, Title: c.Title(), Skills: members})
		}
	}
	return groups
}
