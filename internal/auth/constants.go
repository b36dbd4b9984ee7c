package auth

const (
	ContextKeyPrincipal = "principal"

	headerAPIKey = "X-API-Key"

	// SecretPrefix marks every issued secret. The stored lookup prefix
	// includes it, so prefix length counts these characters too.
	SecretPrefix = "sk_"

	DefaultPrefixLength = 8
	DefaultIterations   = 100000

	// MinIterations is the floor for the PBKDF2 work factor. Configs below
	// it are rejected at startup.
	MinIterations = 100000

	secretRandomBytes = 32
	saltRandomBytes   = 16
)

const (
	msgMissingAPIKey      = "API key is missing"
	msgInvalidAPIKey      = "Invalid API key"
	msgAPIKeyExpired      = "API key has expired"
	msgCredentialLookup   = "credential lookup failed"
	msgNoPrincipal        = "no authenticated principal in request context"
	msgInvalidPrincipal   = "invalid principal in request context"
	msgRootSecretRequired = "root secret must be configured"
)
