// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// BodyFormat indicates how the Content field of an SEO template is authored.
type BodyFormat string

const (
	BodyFormatHTML     BodyFormat = "html"
	BodyFormatMarkdown BodyFormat = "markdown"
)

// SeoTemplate is the per-range template holding the five raw text fields.
// Fields contain variable markers (#VMarque#), switch markers
// (#CompSwitch_1_45#) and link markers (#LinkGammeCar_45#). A range
// without a template is a normal state and triggers default synthesis.
type SeoTemplate struct {
	RangeID     int        `json:"range_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	H1          string     `json:"h1"`
	Preview     string     `json:"preview"`
	Content     string     `json:"content"`
	BodyFormat  BodyFormat `json:"body_format"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActiveRange is one entry of the directory of ranges eligible for
// internal link generation (displayable, nesting level 1 or 2).
type ActiveRange struct {
	RangeID int    `json:"range_id"`
	Alias   string `json:"alias"`
	Name    string `json:"name"`
}
