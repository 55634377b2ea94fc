package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrAPIKeyNotSet is returned when an AI operation is attempted without
// a configured API key.
var ErrAPIKeyNotSet = errors.New("api key not configured")

// Settings holds the persisted user configuration.
type Settings struct {
	OpenAIAPIKey   string `json:"openai_api_key,omitempty"`
	AIEnabled      bool   `json:"ai_enabled"`
	AIPromptStyle  string `json:"ai_prompt_style"`
	CustomAIPrompt string `json:"custom_ai_prompt,omitempty"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		AIPromptStyle: "professional",
	}
}

// LoadSettings reads the settings file, falling back to defaults when
// the file does not exist.
func LoadSettings() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.AIPromptStyle == "" {
		s.AIPromptStyle = "professional"
	}
	return &s, nil
}

// Save writes the settings file.
func (s *Settings) Save() error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// HasAPIKey reports whether an OpenAI API key is configured.
func (s *Settings) HasAPIKey() bool {
	return s.OpenAIAPIKey != ""
}

// APIKey returns the configured key or ErrAPIKeyNotSet.
func (s *Settings) APIKey() (string, error) {
	if s.OpenAIAPIKey == "" {
		return "", ErrAPIKeyNotSet
	}
	return s.OpenAIAPIKey, nil
}

// SetAPIKey stores the key, enables AI, and persists.
func (s *Settings) SetAPIKey(key string) error {
	s.OpenAIAPIKey = key
	s.AIEnabled = true
	return s.Save()
}

// SetPromptStyle stores the rewrite style and persists.
func (s *Settings) SetPromptStyle(style string) error {
	s.AIPromptStyle = style
	return s.Save()
}

// SetCustomPrompt stores (or clears) the custom instruction and persists.
func (s *Settings) SetCustomPrompt(prompt string) error {
	s.CustomAIPrompt = prompt
	return s.Save()
}

// PromptStyle pairs a style key with its display label.
type PromptStyle struct {
	Key   string
	Label string
}

// PromptStyles lists the selectable rewrite styles in display order.
func PromptStyles() []PromptStyle {
	return []PromptStyle{
		{"professional", "Professional & Polished"},
		{"casual", "Casual & Conversational"},
		{"concise", "Concise & Brief"},
		{"detailed", "Detailed & Expanded"},
		{"technical", "Technical & Precise"},
		{"simple", "Simple & Clear"},
		{"custom", "Custom Prompt"},
	}
}

const basePromptInstruction = "You are an expert writing assistant. Your task is to clean up and improve notes while preserving their original meaning and structure. Keep the same tone but make the text clearer, fix grammar, improve organization, and ensure proper markdown formatting. Do not add new information or change the core content. Return only the improved text without any additional commentary, introductions, or explanations."

// SystemPrompt composes the rewrite system prompt from the base
// instruction and the selected style.
func (s *Settings) SystemPrompt() string {
	switch s.AIPromptStyle {
	case "professional":
		return basePromptInstruction + " Make the writing more professional and polished."
	case "casual":
		return basePromptInstruction + " Keep the writing casual and conversational."
	case "concise":
		return basePromptInstruction + " Make the writing more concise and to the point."
	case "detailed":
		return basePromptInstruction + " Expand on ideas and add more detail where appropriate."
	case "technical":
		return basePromptInstruction + " Use more technical language and precise terminology."
	case "simple":
		return basePromptInstruction + " Simplify the language and make it easier to understand."
	case "custom":
		if s.CustomAIPrompt != "" {
			return basePromptInstruction + " " + s.CustomAIPrompt
		}
	}
	return basePromptInstruction
}
