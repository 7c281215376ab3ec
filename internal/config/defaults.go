package config

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".portfolio.yml"

// DefaultExcludes are glob patterns excluded from repository imports by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:                8080,
		DataDir:             ".portfolio",
		AllowedOrigins:      []string{"http://localhost:3000"},
		SiteTitle:           "Pierrick Dossin | Portfolio",
		TreeCacheSize:       64,
		CopyFeedbackSeconds: 2,
		Profile: Profile{
			Name:     "Pierrick Dossin",
			Headline: "Data Engineering Student",
			Bio: []string{
				"3rd year Applied Computer Science student at UCLL, focusing on Data Engineering and Business Management.",
				"I build data pipelines, full-stack applications and machine learning solutions.",
			},
			Email:    "pierrick.dossin@gmail.com",
			GitHub:   "https://github.com/PierrickDossin",
			LinkedIn: "https://www.linkedin.com/in/pierrick-dossin",
			Stats: []Stat{
				{Icon: "Database", Label: "Projects Completed", Value: "7+"},
				{Icon: "TrendingUp", Label: "Years Experience", Value: "1"},
				{Icon: "Zap", Label: "Technologies Used", Value: "15+"},
				{Icon: "Award", Label: "Year of Study", Value: "3rd"},
			},
		},
		Import: ImportConfig{
			Include:     []string{"**"},
			Exclude:     DefaultExcludes,
			MaxFileSize: 256 << 10,
		},
	}
}
