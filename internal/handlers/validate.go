// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalogseo/internal/engine"
)

// Limits for the cache log listing.
const (
	defaultLogLimit = 20
	maxLogLimit     = 200
)

// validateRequest checks the page identifiers and returns validation.Errors
// keyed by JSON field name, or nil. Variables are validated by the engine.
func validateRequest(req engine.Request) error {
	return validation.Errors{
		"rangeId":       validation.Validate(req.RangeID, validation.Required, validation.Min(1)),
		"vehicleTypeId": validation.Validate(req.VehicleTypeID, validation.Required, validation.Min(1)),
		"makeId":        validation.Validate(req.MakeID, validation.Min(0)),
		"modelId":       validation.Validate(req.ModelID, validation.Min(0)),
	}.Filter()
}
