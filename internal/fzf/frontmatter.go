package fzf

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type FrontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

var fence = []byte("---")

// ParseFrontMatter reads a leading YAML block delimited by "---" lines.
// Notes without one, or with invalid YAML, yield the zero value.
func ParseFrontMatter(content []byte) FrontMatter {
	var fm FrontMatter

	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, fence) {
		return fm
	}

	rest := content[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm
	}
	rest = rest[nl+1:]
	if bytes.HasPrefix(rest, fence) {
		return fm
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return FrontMatter{}
	}
	return fm
}
