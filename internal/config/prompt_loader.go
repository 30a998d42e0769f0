package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ReviewPrompts holds the resolved custom prompts for resume review.
// Empty fields mean the built-in prompt is used.
type ReviewPrompts struct {
	System string
	User   string
}

// ReviewPrompts returns the custom prompts in priority order: a loaded file,
// then inline config.
func (c *Config) ReviewPrompts() ReviewPrompts {
	prompts := ReviewPrompts{
		System: c.AI.CustomPrompts.SystemPrompts.ReviewResume,
		User:   c.AI.CustomPrompts.UserPrompts.ReviewResume,
	}
	if c.loadedPrompts.System != "" {
		prompts.System = c.loadedPrompts.System
	}
	if c.loadedPrompts.User != "" {
		prompts.User = c.loadedPrompts.User
	}
	return prompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	if path := c.AI.CustomPrompts.SystemPrompts.ReviewResumeFile; path != "" {
		content, err := loadPromptFromFile(path, "system")
		if err != nil {
			return err
		}
		c.loadedPrompts.System = content
	}

	if path := c.AI.CustomPrompts.UserPrompts.ReviewResumeFile; path != "" {
		content, err := loadPromptFromFile(path, "user")
		if err != nil {
			return err
		}
		c.loadedPrompts.User = content
	}

	if c.loadedPrompts == (ReviewPrompts{}) {
		log.Println("[CONFIG] No custom prompt files loaded")
	}
	return nil
}

// loadPromptFromFile reads a non-empty prompt file
func loadPromptFromFile(filePath, promptType string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s review prompt file '%s': %w", promptType, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s review prompt file not found: %s", promptType, absPath)
		}
		return "", fmt.Errorf("failed to read %s review prompt file '%s': %w", promptType, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s review prompt file '%s' is empty", promptType, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s review prompt from file: %s (%d characters)",
		promptType, absPath, len(trimmed))
	return trimmed, nil
}

// validatePromptFiles checks that every configured prompt file exists
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	check := func(filePath, promptType string) {
		if filePath == "" {
			return
		}
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s review prompt: %s", promptType, filePath))
			return
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s review prompt file not found: %s", promptType, absPath))
		}
	}

	check(c.AI.CustomPrompts.SystemPrompts.ReviewResumeFile, "system")
	check(c.AI.CustomPrompts.UserPrompts.ReviewResumeFile, "user")

	if len(validationErrors) > 0 {
		return fmt.Errorf("%s", strings.Join(validationErrors, "\n"))
	}
	return nil
}
