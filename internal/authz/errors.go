package authz

const (
	errRulePatternEmptyFmt   = "rule table: empty pattern for method %s"
	errRuleMethodEmptyFmt    = "rule table: empty method for pattern %q"
	errRuleMethodUnknownFmt  = "rule table: unknown HTTP method %q for pattern %q"
	errRuleMinRoleInvalidFmt = "rule table: invalid minimum role for %s %q"
	errRuleSegmentEmptyFmt   = "rule table: pattern %q contains an empty segment"
	errRuleParamEmptyFmt     = "rule table: pattern %q contains an unnamed parameter"
	errRuleIndistinctFmt     = "rule table: %s patterns %q and %q match the same paths with equal specificity"
	errMustNewTablePanicFmt  = "authz.MustNewTable: %v"
)

const (
	msgNoRule           = "Access denied: No permission rule found"
	msgInsufficientRole = "Access denied: Insufficient permissions"
	msgCrossTeam        = "Access denied: You can only access resources within your team"
	msgNotOwnUser       = "Access denied: You can only access your own information"
	msgUserOutsideTeam  = "Access denied: User does not belong to your team"
	msgNotOwnKey        = "Access denied: You can only access your own API keys"
	msgKeyOutsideTeam   = "Access denied: API key does not belong to your team"
	msgImageOutsideTeam = "Access denied: Image does not belong to your team"
	msgNotOwnImage      = "Access denied: You can only delete your own images"

	msgUserNotFound   = "User not found"
	msgAPIKeyNotFound = "API key not found"
	msgImageNotFound  = "Image not found"

	msgUserLookup  = "could not verify user ownership"
	msgKeyLookup   = "could not verify API key ownership"
	msgImageLookup = "could not verify image ownership"
)
