// Package docs holds the stockdata documentation topics.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Topic returns the content of a documentation topic.
func Topic(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// Topics returns the content of multiple documentation topics concatenated together.
//
// "*" stands for all the topics.
func Topics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			var err error
			if names, err = All(); err != nil {
				return "", err
			}
		}
		for _, name := range names {
			content, err := Topic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// All returns the sorted list of topics, the readme excluded.
func All() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	slices.Sort(topics)
	return topics, nil
}
