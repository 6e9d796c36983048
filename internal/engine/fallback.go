// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"fmt"

	"catalogseo/internal/models"
)

// genericTitle is used when no name at all is available.
const genericTitle = "Car spare parts"

// The fallback builders below never perform I/O and never fail. They
// accept partially populated variables and always return five non-empty
// fields.

// DefaultContent is the level-1 output, used when a range has no template.
func DefaultContent(v models.SeoVariables) models.GeneratedContent {
	title := firstNonEmpty(joinNonEmpty(" ", v.RangeName, v.MakeName, v.ModelName, v.TypeName), genericTitle)
	rangeName := firstNonEmpty(v.RangeName, "spare parts")
	vehicle := firstNonEmpty(vehicleLabel(v), "your vehicle")

	description := fmt.Sprintf("Buy your %s for %s at the best price. Quality parts from trusted brands, shipped fast.", rangeName, vehicle)
	preview := fmt.Sprintf("Find %s compatible with %s in our catalog.", rangeName, vehicle)
	body := fmt.Sprintf("<p>Looking for %s for your %s? Browse our selection of parts matched to your vehicle, "+
		"compare brands and prices, and order online with fast delivery.</p>", rangeName, vehicle)

	return finishFallback(models.GeneratedContent{
		Title:       title,
		H1:          title,
		Description: description,
		Preview:     preview,
		Content:     body,
		Keywords:    joinKeywords(v.RangeName, v.MakeName, v.ModelName),
	}, models.LevelDefault)
}

// FallbackContent is the level-2 output, used after an unexpected error or
// a timeout during generation.
func FallbackContent(v models.SeoVariables) models.GeneratedContent {
	title := firstNonEmpty(joinNonEmpty(" ", v.RangeName, v.MakeName, v.ModelName), genericTitle)

	return finishFallback(models.GeneratedContent{
		Title:       title,
		H1:          title,
		Description: "Quality car parts at low prices. Thousands of references in stock, fast delivery and secure payment.",
		Preview:     "Discover our wide range of spare parts for your car.",
		Content: "<p>We offer a wide range of original and equivalent quality spare parts for every make and model. " +
			"Find the right part for your vehicle and order online.</p>",
		Keywords: joinKeywords(v.MakeName, v.ModelName, "spare parts"),
	}, models.LevelFallback)
}

// EmergencyContent is the level-3 output returned alongside a validation
// error so that callers still have renderable text.
func EmergencyContent(v models.SeoVariables) models.GeneratedContent {
	title := firstNonEmpty(joinNonEmpty(" ", v.RangeName, v.MakeName, v.ModelName), genericTitle)

	return finishFallback(models.GeneratedContent{
		Title:       title,
		H1:          title,
		Description: "Car spare parts online.",
		Preview:     "Car spare parts online.",
		Content:     "<p>Car spare parts online.</p>",
		Keywords:    joinKeywords(v.MakeName, v.ModelName, "spare parts"),
	}, models.LevelEmergency)
}

// finishFallback cleans every section and stamps the level.
func finishFallback(c models.GeneratedContent, level models.FallbackLevel) models.GeneratedContent {
	c.Title = Clean(c.Title, SectionTitle)
	c.H1 = Clean(c.H1, SectionH1)
	c.Description = Clean(c.Description, SectionDescription)
	c.Preview = Clean(c.Preview, SectionPreview)
	c.Content = Clean(c.Content, SectionContent)
	c.Metadata = models.Metadata{
		Level:   level,
		Variant: level.Variant(),
		Version: Version,
	}
	return c
}
