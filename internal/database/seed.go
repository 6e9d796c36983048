// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// seedStatements populate a small demo catalog: one vehicle, a few ranges,
// one template exercising every marker family, and matching switches.
var seedStatements = []string{
	`INSERT INTO vehicle_makes (make_id, name, alias, meta) VALUES
		(13, 'Renault', 'renault', 'Renault')`,
	`INSERT INTO vehicle_models (model_id, make_id, name, alias, meta) VALUES
		(45, 13, 'Clio III', 'clio-iii', 'Clio 3')`,
	`INSERT INTO vehicle_types (type_id, model_id, name, alias, body, fuel, engine_code, year_from, power_hp) VALUES
		(5, 45, '1.5 dCi', '1-5-dci', 'Berline', 'Diesel', 'K9K', 2005, 86)`,
	`INSERT INTO catalog_ranges (range_id, name, alias, meta, level, displayable, family_id, articles_count, sort_order) VALUES
		(10,  'Filtres à huile',     'filtres-a-huile',    'filtre à huile',  1, TRUE,  4, 150, 1),
		(7,   'Plaquettes de frein', 'plaquettes-de-frein', '',               1, TRUE,  2, 320, 2),
		(8,   'Disques de frein',    '',                    '',               2, TRUE,  2, 80,  3),
		(402, 'Vis de fixation',     'vis-de-fixation',    '',               3, TRUE,  2, 12,  4),
		(77,  'Archives',            'archives',           '',               1, FALSE, NULL, 0, 5)`,
	`INSERT INTO catalog_range_vehicles (range_id, type_id, articles_count) VALUES
		(10, 5, 42), (7, 5, 18), (8, 5, 0)`,
	`INSERT INTO seo_templates (range_id, title, description, h1, preview, content, body_format) VALUES
		(10,
		 '#Gamme# #VMarque# #VModele# #VType# #PrixPasCher#',
		 '#CompSwitch# #Gamme# pour #VMarque# #VModele# #VType# #VNbCh# ch, dès #MinPrice#.',
		 '#Gamme# #VMarque# #VModele# #VType#',
		 '#CompSwitch_2_10# #Gamme# pour votre #LinkCar#.',
		 '<p>#CompSwitch# Achetez vos #Gamme# pour #LinkCarAll#.</p>'
		 '<p>#CompSwitch_11_10#</p>'
		 '<p>Pensez aussi aux #LinkGammeCar_7# et aux #LinkGammeCar_8#. #CompSwitch_7#</p>'
		 '<p>Toute la gamme : #LinkGamme_7#.</p>',
		 'html')`,
	`INSERT INTO seo_range_switches (kind, alias_id, range_id, type_id, content, sort_order) VALUES
		('simple',   1, 10, NULL, 'Changez votre',              1),
		('simple',   1, 10, NULL, 'Remplacez votre',            2),
		('simple',   1, 10, NULL, 'Commandez votre',            3),
		('simple',   2, 10, NULL, 'Large choix de',             1),
		('simple',   2, 10, NULL, 'Sélection de',               2),
		('external', 1, 7,  NULL, 'Des plaquettes usées allongent la distance de freinage.', 1),
		('external', 2, 7,  NULL, 'Vérifiez vos plaquettes tous les 20 000 km.',           1)`,
	`INSERT INTO seo_family_switches (family_id, alias_id, range_id, content, sort_order) VALUES
		(4, 11, 0,  'Filtres d''origine et adaptables pour #VMarque#.', 1),
		(4, 11, 10, 'Toutes les références #VMarque# en stock.',         2)`,
}

// Seed populates the database with a demo catalog. It does nothing when
// ranges already exist.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_ranges").Scan(&count); err != nil {
		return fmt.Errorf("seed check ranges: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range seedStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo catalog", "ranges", 5, "templates", 1)
	return nil
}
