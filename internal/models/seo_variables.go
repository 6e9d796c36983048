// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SeoVariables holds the caller-supplied facts about one (range, vehicle)
// pairing. Optional numeric fields are pointers so that "absent" and
// "zero" stay distinguishable. Values are validated once at the engine
// entry point and treated as immutable afterwards.
type SeoVariables struct {
	RangeName     string `json:"range"`
	RangeMeta     string `json:"rangeMeta,omitempty"`
	RangeAlias    string `json:"rangeAlias,omitempty"`
	MakeName      string `json:"make"`
	MakeMeta      string `json:"makeMeta,omitempty"`
	MakeMetaTitle string `json:"makeMetaTitle,omitempty"`
	ModelName     string `json:"model"`
	ModelMeta     string `json:"modelMeta,omitempty"`
	TypeName      string `json:"type"`
	TypeMeta      string `json:"typeMeta,omitempty"`
	BodyStyle     string `json:"body,omitempty"`
	FuelType      string `json:"fuel,omitempty"`
	EngineCode    string `json:"engineCode,omitempty"`
	MakeAlias     string `json:"makeAlias,omitempty"`
	ModelAlias    string `json:"modelAlias,omitempty"`
	TypeAlias     string `json:"typeAlias,omitempty"`

	Year          *int     `json:"year,omitempty"`
	Power         *int     `json:"power,omitempty"` // horsepower
	MakeID        *int     `json:"makeId,omitempty"`
	ModelID       *int     `json:"modelId,omitempty"`
	FamilyID      *int     `json:"familyId,omitempty"`
	ArticlesCount *int     `json:"articlesCount,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	SeoScore      *float64 `json:"seoScore,omitempty"`

	// Level is the range nesting level (1-3). Zero means unspecified.
	Level      int  `json:"level,omitempty"`
	IsTopRange bool `json:"isTopRange,omitempty"`
}

// Validate checks the required names and numeric constraints. The returned
// error is a validation.Errors map keyed by JSON field name.
func (v SeoVariables) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.RangeName, validation.By(notBlank)),
		validation.Field(&v.MakeName, validation.By(notBlank)),
		validation.Field(&v.ModelName, validation.By(notBlank)),
		validation.Field(&v.TypeName, validation.By(notBlank)),
		validation.Field(&v.Year, validation.By(nonNegativeInt)),
		validation.Field(&v.Power, validation.By(positiveInt)),
		validation.Field(&v.MakeID, validation.By(nonNegativeInt)),
		validation.Field(&v.ModelID, validation.By(nonNegativeInt)),
		validation.Field(&v.FamilyID, validation.By(nonNegativeInt)),
		validation.Field(&v.ArticlesCount, validation.By(nonNegativeInt)),
		validation.Field(&v.MinPrice, validation.By(positiveFloat)),
		validation.Field(&v.SeoScore, validation.By(nonNegativeFloat)),
		validation.Field(&v.Level, validation.In(1, 2, 3)),
	)
}

// EffectiveLevel returns the nesting level, defaulting to 1 when unset.
func (v SeoVariables) EffectiveLevel() int {
	if v.Level == 0 {
		return 1
	}
	return v.Level
}

// Articles returns the article count or zero when absent.
func (v SeoVariables) Articles() int {
	if v.ArticlesCount == nil {
		return 0
	}
	return *v.ArticlesCount
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("seo.variables.required", "cannot be blank")
	}
	return nil
}

func nonNegativeInt(value any) error {
	p, _ := value.(*int)
	if p != nil && *p < 0 {
		return validation.NewError("seo.variables.negative", "must be zero or positive")
	}
	return nil
}

func positiveInt(value any) error {
	p, _ := value.(*int)
	if p != nil && *p <= 0 {
		return validation.NewError("seo.variables.not_positive", "must be greater than zero")
	}
	return nil
}

func nonNegativeFloat(value any) error {
	p, _ := value.(*float64)
	if p != nil && *p < 0 {
		return validation.NewError("seo.variables.negative", "must be zero or positive")
	}
	return nil
}

func positiveFloat(value any) error {
	p, _ := value.(*float64)
	if p != nil && *p <= 0 {
		return validation.NewError("seo.variables.not_positive", "must be greater than zero")
	}
	return nil
}
