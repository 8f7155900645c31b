// Package docs holds the hyt documentation, one markdown file per topic.
//
// readme.md is the table of contents: every topic is listed there as a
// "* name: summary" line, in reading order.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var docs embed.FS

// All expands to every topic, in table of contents order.
const All = "*"

var tocEntry = regexp.MustCompile(`^\*\s+([^:]+):`)

// GetTopic returns the content of a documentation topic, or of every topic for All.
func GetTopic(topic string) (string, error) { return GetTopics(topic) }

// GetTopics returns the content of the topics concatenated in the given order.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		names := []string{topic}
		if topic == All {
			var err error
			if names, err = GetAllTopics(); err != nil {
				return "", err
			}
		}
		for _, name := range names {
			content, err := docs.ReadFile(name + ".md")
			if err != nil {
				return "", fmt.Errorf("topic %q not found: %w", name, err)
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the topics listed in the readme, in that order.
func GetAllTopics() ([]string, error) {
	readme, err := docs.ReadFile("readme.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	scanner := bufio.NewScanner(bytes.NewReader(readme))
	for scanner.Scan() {
		if m := tocEntry.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	return topics, scanner.Err()
}
