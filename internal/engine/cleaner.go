// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SectionKind identifies one of the five generated sections.
type SectionKind int

const (
	SectionTitle SectionKind = iota
	SectionDescription
	SectionH1
	SectionPreview
	SectionContent
)

// String returns the section name used in logs.
func (k SectionKind) String() string {
	switch k {
	case SectionTitle:
		return "title"
	case SectionDescription:
		return "description"
	case SectionH1:
		return "h1"
	case SectionPreview:
		return "preview"
	case SectionContent:
		return "content"
	}
	return "unknown"
}

// Length limits, in characters.
const (
	MaxTitleLength       = 60
	MaxDescriptionLength = 160
	ellipsis             = "…"
)

var (
	whitespaceRe       = regexp.MustCompile(`\s+`)
	spaceBeforePunctRe = regexp.MustCompile(` +([.,;:!?)\]])`)
	doubleBreakRe      = regexp.MustCompile(`(?i)(<br\s*/?>\s*){2,}`)
	tagRe              = regexp.MustCompile(`<[^>]*>`)
)

// Clean normalizes generated text for a section. All sections get
// whitespace collapsing, punctuation spacing and <br> de-duplication.
// Title and description are additionally stripped of markup and truncated
// to 60 and 160 characters; H1 is stripped but not truncated. Preview and
// body keep their markup and length.
func Clean(text string, kind SectionKind) string {
	text = normalize(text)

	switch kind {
	case SectionTitle:
		return truncate(stripTags(text), MaxTitleLength)
	case SectionDescription:
		return truncate(stripTags(text), MaxDescriptionLength)
	case SectionH1:
		return stripTags(text)
	default:
		return text
	}
}

func normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = spaceBeforePunctRe.ReplaceAllString(text, "$1")
	text = doubleBreakRe.ReplaceAllString(text, "<br>")
	return strings.TrimSpace(text)
}

func stripTags(text string) string {
	text = tagRe.ReplaceAllString(text, " ")
	return normalize(text)
}

// truncate cuts text to at most limit characters, ending with an ellipsis
// when anything was removed.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimRight(string(runes[:limit-utf8.RuneCountInString(ellipsis)]), " ")
	return cut + ellipsis
}
