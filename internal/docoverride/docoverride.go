// Package docoverride implements the doc-override markdown workflow: a
// human-editable file per endpoint, keyed by its fingerprint, that can
// replace the description pulled straight from the OpenAPI document
// without the override silently going stale once the operation changes
// underneath it.
//
// File format:
//
//	---
//	endpoint: /pets/{petId}
//	method: GET
//	hash: 1a2b3c4d
//	operationId: getPet
//	---
//	## Default Description
//
//	Fetch a single pet by id.
//
//	## Override
//
//	```
//	Look up a pet. 404s if it does not exist.
//	```
package docoverride

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// placeholderOverride marks an override block deliberately left empty: the
// author has seen the default and chosen not to replace it, as distinct
// from a file that was never looked at.
const placeholderOverride = "<!-- Empty - no override -->"

// Frontmatter is the YAML block at the top of a doc-override file.
type Frontmatter struct {
	Endpoint    string `yaml:"endpoint"`
	Method      string `yaml:"method"`
	Hash        string `yaml:"hash"`
	Host        string `yaml:"host,omitempty"`
	Version     string `yaml:"version,omitempty"`
	OperationID string `yaml:"operationId,omitempty"`
}

// File is a parsed doc-override document.
type File struct {
	Frontmatter        Frontmatter
	DefaultDescription string
	Override           string // empty when no override fence was present or it held the placeholder
}

// Resolved returns the description that should win: the override when one
// is present and not the empty placeholder, otherwise the default.
func (f *File) Resolved() string {
	if strings.TrimSpace(f.Override) != "" {
		return f.Override
	}
	return f.DefaultDescription
}

// Parse reads one doc-override file's content.
func Parse(data []byte) (*File, error) {
	text := string(data)

	const delim = "---"
	if !strings.HasPrefix(text, delim) {
		return nil, fmt.Errorf("doc-override file missing frontmatter delimiter")
	}
	rest := text[len(delim):]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return nil, fmt.Errorf("doc-override file missing closing frontmatter delimiter")
	}
	fmText := rest[:end]
	body := rest[end+len("\n"+delim):]

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Endpoint == "" || fm.Method == "" || fm.Hash == "" {
		return nil, fmt.Errorf("doc-override frontmatter must set endpoint, method and hash")
	}

	defaultDesc, err := extractSection(body, "## Default Description", "## Override")
	if err != nil {
		return nil, err
	}
	overrideRaw, err := extractSection(body, "## Override", "")
	if err != nil {
		return nil, err
	}

	override := extractFence(overrideRaw)
	if strings.TrimSpace(override) == placeholderOverride {
		override = ""
	}

	return &File{
		Frontmatter:        fm,
		DefaultDescription: strings.TrimSpace(defaultDesc),
		Override:           strings.TrimSpace(override),
	}, nil
}

// extractSection returns the text between a heading and the next heading
// (or end of document when next == "").
func extractSection(body, heading, next string) (string, error) {
	idx := strings.Index(body, heading)
	if idx < 0 {
		return "", fmt.Errorf("doc-override file missing %q section", heading)
	}
	start := idx + len(heading)
	section := body[start:]
	if next != "" {
		if nidx := strings.Index(section, next); nidx >= 0 {
			section = section[:nidx]
		}
	}
	return section, nil
}

// extractFence pulls the content of the first fenced code block out of s,
// tolerating a fence with or without a language tag.
func extractFence(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return strings.TrimSpace(s)
	}
	afterOpen := s[start+3:]
	if nl := strings.IndexByte(afterOpen, '\n'); nl >= 0 {
		afterOpen = afterOpen[nl+1:]
	}
	end := strings.Index(afterOpen, "```")
	if end < 0 {
		return strings.TrimSpace(afterOpen)
	}
	return strings.TrimSpace(afterOpen[:end])
}

// Render serializes f back into the on-disk doc-override format, used to
// scaffold a fresh file or to rewrite one whose default description
// changed underneath an untouched override.
func Render(f *File) []byte {
	var b bytes.Buffer
	fmBytes, _ := yaml.Marshal(f.Frontmatter)
	b.WriteString("---\n")
	b.Write(fmBytes)
	b.WriteString("---\n\n")
	b.WriteString("## Default Description\n\n")
	b.WriteString(f.DefaultDescription)
	b.WriteString("\n\n## Override\n\n```\n")
	if strings.TrimSpace(f.Override) == "" {
		b.WriteString(placeholderOverride)
	} else {
		b.WriteString(f.Override)
	}
	b.WriteString("\n```\n")
	return b.Bytes()
}

// Path returns the conventional location of an endpoint's doc-override
// file within dir: {module}/{operation}.md.
func Path(dir, module, operation string) string {
	return filepath.Join(dir, module, operation+".md")
}

// Lookup reads the doc-override file for (module, operation) under dir, if
// one exists, and returns its resolved description when the file's
// recorded hash still matches currentHash. A stale hash is reported via
// ok=false so the caller falls back to the document's own description
// instead of serving content that no longer corresponds to the endpoint.
func Lookup(dir, module, operation, currentHash string) (description string, ok bool, err error) {
	p := Path(dir, module, operation)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read doc-override %s: %w", p, err)
	}

	f, err := Parse(data)
	if err != nil {
		return "", false, fmt.Errorf("parse doc-override %s: %w", p, err)
	}
	if f.Frontmatter.Hash != currentHash {
		return "", false, nil
	}
	return f.Resolved(), true, nil
}
