// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

// TestGenerate covers range names, vehicle names, accents and the usual
// punctuation and whitespace edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Catalog names ---
		{name: "range with accent", input: "Filtres à huile", want: "filtres-a-huile"},
		{name: "make", input: "Renault", want: "renault"},
		{name: "model with numerals", input: "Clio III", want: "clio-iii"},
		{name: "engine type with dot", input: "1.5 dCi", want: "1-5-dci"},
		{name: "type with power", input: "2.0 TDI 140 ch", want: "2-0-tdi-140-ch"},
		{name: "hyphenated make", input: "Mercedes-Benz", want: "mercedes-benz"},
		{name: "slash", input: "Disques / Plaquettes", want: "disques-plaquettes"},
		{name: "parentheses", input: "Golf VI (5K1)", want: "golf-vi-5k1"},

		// --- Accents and ligatures ---
		{name: "french accents", input: "Amortisseur arrière électrique", want: "amortisseur-arriere-electrique"},
		{name: "cedilla", input: "Garçon", want: "garcon"},
		{name: "german umlauts", input: "Über die Brücke", want: "uber-die-brucke"},
		{name: "sharp s", input: "Straße", want: "strasse"},
		{name: "oe ligature", input: "Cœur de filtre", want: "coeur-de-filtre"},
		{name: "upper case accents", input: "ÉCLAIRAGE", want: "eclairage"},
		{name: "non latin stripped", input: "Filtre 滤清器", want: "filtre"},

		// --- Special characters ---
		{name: "punctuation", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "ampersand", input: "Freins & Embrayage", want: "freins-embrayage"},
		{name: "hash and euro", input: "Kit #2 à 49 €", want: "kit-2-a-49"},

		// --- Whitespace and hyphens ---
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "tabs and newlines", input: "hello\t\nworld", want: "hello-world"},
		{name: "multiple hyphens", input: "a---b", want: "a-b"},
		{name: "leading hyphen", input: "-abc-", want: "abc"},

		// --- Edge cases ---
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "only symbols", input: "!@#$%", want: ""},
		{name: "digits", input: "2012", want: "2012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that an alias maps to itself.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"filtres-a-huile", "clio-iii", "1-5-dci", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// TestGenerate_ConsistentCase verifies that aliases are always lowercase.
func TestGenerate_ConsistentCase(t *testing.T) {
	for _, input := range []string{"FILTRES À HUILE", "Filtres à huile", "fILTRES à HUILE"} {
		t.Run(input, func(t *testing.T) {
			if got := Generate(input); got != "filtres-a-huile" {
				t.Errorf("Generate(%q) = %q, want %q", input, got, "filtres-a-huile")
			}
		})
	}
}
