package config

// Config is the top-level portfolio configuration, corresponding to .portfolio.yml.
type Config struct {
	Port                int          `yaml:"port" koanf:"port"`
	DataDir             string       `yaml:"data_dir" koanf:"data_dir"`
	AllowedOrigins      []string     `yaml:"allowed_origins" koanf:"allowed_origins"`
	AllowAllOrigins     bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SiteTitle           string       `yaml:"site_title" koanf:"site_title"`
	TreeCacheSize       int          `yaml:"tree_cache_size" koanf:"tree_cache_size"`
	CopyFeedbackSeconds int          `yaml:"copy_feedback_seconds" koanf:"copy_feedback_seconds"`
	Profile             Profile      `yaml:"profile" koanf:"profile"`
	Import              ImportConfig `yaml:"import" koanf:"import"`
	NotifyWebhooks      []string     `yaml:"notify_webhooks,omitempty" koanf:"notify_webhooks"` // POSTed on every new contact message
}

// Profile is the owner information shown in the hero, about and contact
// sections of the site.
type Profile struct {
	Name     string   `yaml:"name" koanf:"name"`
	Headline string   `yaml:"headline" koanf:"headline"`
	Bio      []string `yaml:"bio" koanf:"bio"`
	Location string   `yaml:"location" koanf:"location"`
	Email    string   `yaml:"email" koanf:"email"`
	GitHub   string   `yaml:"github" koanf:"github"`
	LinkedIn string   `yaml:"linkedin" koanf:"linkedin"`
	Stats    []Stat   `yaml:"stats" koanf:"stats"`
}

// Stat is one highlighted figure in the about section.
type Stat struct {
	Icon  string `yaml:"icon" koanf:"icon"`
	Label string `yaml:"label" koanf:"label"`
	Value string `yaml:"value" koanf:"value"`
}

// ImportConfig holds the filters used by `portfolio repo import`.
type ImportConfig struct {
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size" koanf:"max_file_size"`
}
