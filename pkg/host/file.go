// Copyright (c) 2025, KI7MT.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// Parser parses line-oriented configuration files such as os-release
// and /proc/modules.
type Parser struct {
	maxSize    int
	kvDelim    string
	vTrimChars string
}

// WithKVDelimiter sets the key-value delimiter used by GetMap. Default "=".
func WithKVDelimiter(delim string) ParserOption {
	return func(p *Parser) {
		p.kvDelim = delim
	}
}

// WithVTrimChars sets characters to trim from values in GetMap.
// Default is no trimming.
func WithVTrimChars(chars string) ParserOption {
	return func(p *Parser) {
		p.vTrimChars = chars
	}
}

// NewParser creates a parser with the provided options.
// Defaults: "=" key-value delimiter, 1MB maximum file size.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		maxSize: 1 << 20,
		kvDelim: "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads the file at path and returns its non-empty, non-comment
// lines with surrounding whitespace trimmed. An error is returned if the
// file cannot be read, exceeds the maximum size, or is not valid UTF-8.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	parts := strings.Split(string(b), "\n")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result, nil
}

// GetMap reads the file at path and parses each line into a key-value pair
// using the configured delimiter. Lines without the delimiter are skipped.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, p.kvDelim, 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if key == "" || value == "" {
			continue
		}

		result[key] = value
	}

	return result, nil
}
