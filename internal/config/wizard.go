package config

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to portfolio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Owner profile.
	name, err := (&promptui.Prompt{
		Label:    "Your name",
		Default:  cfg.Profile.Name,
		Validate: required("name"),
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	cfg.Profile.Name = name

	headline, err := (&promptui.Prompt{
		Label:   "Headline",
		Default: cfg.Profile.Headline,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("headline: %w", err)
	}
	cfg.Profile.Headline = headline

	email, err := (&promptui.Prompt{
		Label:   "Contact email",
		Default: cfg.Profile.Email,
		Validate: func(s string) error {
			if _, err := mail.ParseAddress(s); err != nil {
				return fmt.Errorf("invalid email")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("email: %w", err)
	}
	cfg.Profile.Email = email

	github, err := (&promptui.Prompt{
		Label:   "GitHub profile URL",
		Default: cfg.Profile.GitHub,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}
	cfg.Profile.GitHub = github

	// 2. Server port.
	portStr, err := (&promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. CORS.
	corsPrompt := promptui.Select{
		Label: "Which browser origins may call the API?",
		Items: []string{
			"local frontend only (http://localhost:3000)",
			"a list of origins",
			"any origin",
		},
	}
	corsIdx, _, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}
	switch corsIdx {
	case 1:
		originsStr, err := (&promptui.Prompt{Label: "Allowed origins (comma-separated)"}).Run()
		if err != nil {
			return nil, fmt.Errorf("allowed origins: %w", err)
		}
		cfg.AllowedOrigins = splitAndTrim(originsStr)
	case 2:
		cfg.AllowAllOrigins = true
	}

	// 4. Extra import excludes.
	excludeStr, err := (&promptui.Prompt{
		Label:   "Extra exclude patterns for repo import (comma-separated, leave blank for defaults)",
		Default: "",
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Import.Exclude = append(append([]string{}, DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func required(field string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
