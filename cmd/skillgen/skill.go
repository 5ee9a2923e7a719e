package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxNameLen and maxDescLen mirror the limits the skill loader enforces.
const (
	maxNameLen = 64
	maxDescLen = 1024
)

var subdirs = []string{"scripts", "references", "assets"}

var subdirReadmes = map[string]string{
	"scripts":    "# Scripts\n\nPlace executable scripts here for automation tasks.\n",
	"references": "# References\n\nPlace supporting documentation here.\n",
	"assets":     "# Assets\n\nPlace templates, images, or binary files here.\n",
}

// ValidateName checks a skill name: lowercase letters, digits and hyphens,
// no leading/trailing hyphen, at most 64 characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("skill name must be %d characters or less", maxNameLen)
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("skill name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("skill name cannot start or end with a hyphen")
	}
	return nil
}

func skillTemplate(name string) string {
	return fmt.Sprintf(`---
name: %s
description: TODO - describe what this skill does and when to use it
---

# %s

## Instructions

TODO - add step-by-step instructions here.

## Examples

TODO - add usage examples here.
`, name, name)
}

// Scaffold creates the skill directory, SKILL.md template and the standard
// subdirectories under baseDir. It refuses to overwrite an existing skill.
func Scaffold(baseDir, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	skillPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(skillPath); err == nil {
		return "", fmt.Errorf("skill directory already exists: %s", skillPath)
	}

	if err := os.MkdirAll(skillPath, 0o755); err != nil {
		return "", fmt.Errorf("create skill directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(skillPath, "SKILL.md"), []byte(skillTemplate(name)), 0o644); err != nil {
		return "", fmt.Errorf("write SKILL.md: %w", err)
	}
	for _, sub := range subdirs {
		subPath := filepath.Join(skillPath, sub)
		if err := os.MkdirAll(subPath, 0o755); err != nil {
			return "", fmt.Errorf("create %s/: %w", sub, err)
		}
		if err := os.WriteFile(filepath.Join(subPath, "README.md"), []byte(subdirReadmes[sub]), 0o644); err != nil {
			return "", fmt.Errorf("write %s/README.md: %w", sub, err)
		}
	}

	return skillPath, nil
}

// ValidateSkill checks an existing skill directory and returns the problems
// found. An empty slice means the skill is valid.
func ValidateSkill(skillPath string) ([]string, error) {
	if _, err := os.Stat(skillPath); err != nil {
		return nil, fmt.Errorf("skill path does not exist: %s", skillPath)
	}

	data, err := os.ReadFile(filepath.Join(skillPath, "SKILL.md"))
	if err != nil {
		return []string{"SKILL.md not found"}, nil
	}

	var problems []string
	name, description, ok := parseFrontmatter(string(data))
	if !ok {
		problems = append(problems, "SKILL.md must start with YAML frontmatter delimited by ---")
		return problems, nil
	}

	if name == "" {
		problems = append(problems, "frontmatter missing required field: name")
	} else if err := ValidateName(name); err != nil {
		problems = append(problems, "invalid name: "+err.Error())
	}

	switch {
	case strings.TrimSpace(description) == "":
		problems = append(problems, "frontmatter missing required field: description")
	case len(description) > maxDescLen:
		problems = append(problems, fmt.Sprintf("description exceeds %d characters", maxDescLen))
	case strings.ContainsAny(description, "<>"):
		problems = append(problems, "description cannot contain XML tags")
	}

	return problems, nil
}

// parseFrontmatter extracts name and description from a leading YAML block.
// Only the flat key: value form the templates generate is understood.
func parseFrontmatter(content string) (name, description string, ok bool) {
	if !strings.HasPrefix(content, "---") {
		return "", "", false
	}
	rest := strings.TrimPrefix(content, "---")
	end := strings.Index(rest, "---")
	if end < 0 {
		return "", "", false
	}

	for _, line := range strings.Split(rest[:end], "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "name":
			name = strings.TrimSpace(value)
		case "description":
			description = strings.TrimSpace(value)
		}
	}
	return name, description, true
}
