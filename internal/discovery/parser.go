package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

var (
	// it("renders"), test('works'), it.each(...)("name"), test.skip(`x`)
	testCasePattern = regexp.MustCompile("(?m)^\\s*(?:it|test)(?:\\.(?:only|skip|todo|concurrent))?\\s*\\(\\s*([\"'`])(.+?)[\"'`]")
	// export const Primary: Story = ..., export const Disabled = {...}
	storyPattern = regexp.MustCompile(`(?m)^\s*export\s+const\s+([A-Z]\w*)\s*[:=]`)
)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds all it/test case names in a test file, sorted and de-duplicated
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	return p.find(filePath, testCasePattern, 2)
}

// FindStories finds the named story exports of a story file
func (p *Parser) FindStories(filePath string) ([]string, error) {
	return p.find(filePath, storyPattern, 1)
}

func (p *Parser) find(filePath string, pattern *regexp.Regexp, group int) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	for _, match := range pattern.FindAllStringSubmatch(string(content), -1) {
		if len(match) > group {
			seen[match[group]] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
