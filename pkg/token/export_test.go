package token

// GenerateAt is exported for expiry tests that need a backdated issue time.
var GenerateAt = generateAt[string]

// Sign is exported so tests can forge signatures for tampered payloads.
var Sign = sign
