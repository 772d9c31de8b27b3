// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package config loads Clickrec configuration with Koanf v2.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults (structs provider)
//  2. Optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/clickrec/config.yaml
//  3. Environment variables, mapped explicitly (HTTP_PORT, LOG_LEVEL,
//     RECOMMEND_MAX_TOP_N, EVENTS_TRANSPORT, ...). Unknown variables are ignored.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
package config
