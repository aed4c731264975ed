package token

// Overridable in tests.
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)
