// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing from CLI flags and environment variables.

# Usage

	cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

# Configuration Sources

Configuration is resolved in order of precedence:

 1. CLI flags (highest priority)
 2. Environment variables (including those loaded from .env)
 3. Default values (lowest priority)

# Available Options

	Flag            Env Variable      Default           Description
	-p              PORT              3318              Server port
	-d              DATABASE_URL      (none)            Database URL; empty keeps state in memory
	-t              DATABASE_TYPE     sqlite            sqlite or postgres
	-vote-policy    VOTE_POLICY       one-per-address   one-per-address or allow-repeat
	-seed           SEED_SAMPLE       false             Load sample elections into an empty store
	-expiry         EXPIRY_INTERVAL   1m                Interval for ending expired elections (0 disables)
	-recent-window  RECENT_WINDOW     24h               Window for recently ended elections

# Config Struct

	type Config struct {
		Port           int
		DatabaseURL    string
		DatabaseType   string
		VotePolicy     string
		SeedSample     bool
		ExpiryInterval time.Duration
		RecentWindow   time.Duration
	}
*/
package cliparse
