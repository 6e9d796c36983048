// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SwitchKind tags which catalog a switch entry belongs to. The four kinds
// have different scoping rules and alias domains, so they are never mixed.
type SwitchKind string

const (
	// SwitchSimple entries are scoped to the page's own range.
	SwitchSimple SwitchKind = "simple"
	// SwitchRange entries are addressed by an explicit (alias, range) pair.
	SwitchRange SwitchKind = "range"
	// SwitchExternal entries form the global catalog of range-keyed fragments.
	SwitchExternal SwitchKind = "external"
	// SwitchFamily entries are keyed by family and alias 11..16.
	SwitchFamily SwitchKind = "family"
)

// Alias domains per catalog.
const (
	SimpleAliasMin   = 1
	SimpleAliasMax   = 3
	RangeAliasMin    = 1
	RangeAliasMax    = 3
	ExternalAliasMax = 3
	FamilyAliasMin   = 11
	FamilyAliasMax   = 16
)

// SwitchEntry is one pre-authored text fragment. ScopeID is the range the
// fragment applies to; for family switches zero means every range of the
// family.
type SwitchEntry struct {
	Kind     SwitchKind `json:"kind"`
	AliasID  int        `json:"alias_id"`
	ScopeID  int        `json:"scope_id"`
	FamilyID int        `json:"family_id,omitempty"`
	Content  string     `json:"content"`
}

// AliasInDomain reports whether alias is valid for the given catalog kind.
func AliasInDomain(kind SwitchKind, alias int) bool {
	switch kind {
	case SwitchSimple:
		return alias >= SimpleAliasMin && alias <= SimpleAliasMax
	case SwitchRange:
		return alias >= RangeAliasMin && alias <= RangeAliasMax
	case SwitchExternal:
		return alias >= 0 && alias <= ExternalAliasMax
	case SwitchFamily:
		return alias >= FamilyAliasMin && alias <= FamilyAliasMax
	}
	return false
}

// SwitchCatalog bundles the switch collections fetched for one generation.
type SwitchCatalog struct {
	Simple   []SwitchEntry
	External []SwitchEntry
	Family   []SwitchEntry
	Ranges   []ActiveRange
}

// Size returns the total number of switch entries in the catalog.
func (c SwitchCatalog) Size() int {
	return len(c.Simple) + len(c.External) + len(c.Family)
}
