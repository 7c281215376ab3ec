package projects

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// Category groups projects on the site.
type Category string

const (
	CategoryDataEngineering   Category = "DATA_ENGINEERING"
	CategoryWebDevelopment    Category = "WEB_DEVELOPMENT"
	CategoryMobileDevelopment Category = "MOBILE_DEVELOPMENT"
	CategoryMachineLearning   Category = "MACHINE_LEARNING"
	CategoryDevOps            Category = "DEVOPS"
	CategoryOther             Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDataEngineering,
	CategoryWebDevelopment,
	CategoryMobileDevelopment,
	CategoryMachineLearning,
	CategoryDevOps,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryDataEngineering:   "Data Engineering",
	CategoryWebDevelopment:    "Web Development",
	CategoryMobileDevelopment: "Mobile Development",
	CategoryMachineLearning:   "Machine Learning",
	CategoryDevOps:            "DevOps",
	CategoryOther:             "Other",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human-readable name. Unknown values read "Other".
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// ParseCategory accepts the wire form in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

const (
	DefaultGradientFrom = "purple-600"
	DefaultGradientTo   = "pink-600"

	// MaxDescriptionLength bounds the description in characters.
	MaxDescriptionLength = 1000
)

// Project is a portfolio entry.
type Project struct {
	ID           int64     `json:"id" yaml:"-"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	Category     Category  `json:"category" yaml:"category"`
	Tags         []string  `json:"tags" yaml:"tags"`
	GitHubURL    string    `json:"githubUrl,omitempty" yaml:"githubUrl"`
	LiveURL      string    `json:"liveUrl,omitempty" yaml:"liveUrl"`
	IconName     string    `json:"iconName,omitempty" yaml:"iconName"`
	GradientFrom string    `json:"gradientFrom" yaml:"gradientFrom"`
	GradientTo   string    `json:"gradientTo" yaml:"gradientTo"`
	IsFeatured   bool      `json:"isFeatured" yaml:"isFeatured"`
	DisplayOrder int       `json:"displayOrder" yaml:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"-"`
}

// Validate checks the required fields and fills defaults.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("invalid category %q", p.Category)
	}
	if p.GradientFrom == "" {
		p.GradientFrom = DefaultGradientFrom
	}
	if p.GradientTo == "" {
		p.GradientTo = DefaultGradientTo
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}
