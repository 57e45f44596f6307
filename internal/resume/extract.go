// Package resume pulls candidate contact details out of free-form
// resume text. The caller is expected to hand it plain text; binary
// formats are upstream concerns.
package resume

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	emailRe      = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phoneRe      = regexp.MustCompile(`\+?\d[\d\-\s()]{7,}\d`)
	nameLineRe   = regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)+$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Contact holds whatever contact details were found in the text. Any
// field can be empty; the interview flow prompts for the gaps.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Extract scans resume text for a name, email and phone number. The
// name heuristic takes the first line that looks like capitalized
// words ("Jane Doe"); email and phone are best-effort pattern matches.
func Extract(text string) Contact {
	var c Contact
	if m := emailRe.FindString(text); m != "" {
		c.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		c.Phone = strings.TrimSpace(whitespaceRe.ReplaceAllString(m, " "))
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if nameLineRe.MatchString(line) {
			c.Name = line
			break
		}
	}
	return c
}

// ExtractFile reads a plain-text resume from disk and extracts contact
// details from it.
func ExtractFile(path string) (Contact, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return Contact{}, "", err
	}
	defer f.Close()
	return ExtractReader(f)
}

// ExtractReader consumes the reader fully and extracts contact details
// from the text, returning the text alongside so callers can show it.
func ExtractReader(r io.Reader) (Contact, string, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return Contact{}, "", err
	}
	text := string(data)
	return Extract(text), text, nil
}
