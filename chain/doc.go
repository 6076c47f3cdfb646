// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chain provides the synthetic ledger helpers used by the election store.

There is no real ledger behind these functions. Transaction hashes are random
and addresses are only checked for shape.

# Transaction Hashes

	hash, err := chain.GenerateTxHash() // "0x" + 64 hex characters

# Addresses

	chain.IsAddress("0x52908400098527886E0F7030069857D2E4169EE7") // true
	chain.ShortenAddress("0x52908400098527886E0F7030069857D2E4169EE7") // "0x5290...9EE7"

# ID Generation

Random hex IDs:

	id, err := chain.GenerateID(16)  // 32 hex characters
*/
package chain
