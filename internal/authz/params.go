package authz

// Well-known collection segments. A path segment immediately following one of
// these is recorded as the matching resource identifier.
const (
	segTeams   = "teams"
	segUsers   = "users"
	segImages  = "images"
	segAPIKeys = "api-keys"
)

// Params holds the resource identifiers extracted from a request path. Values
// are the raw path segments; identifier parsing happens at lookup time so a
// malformed id surfaces as an ordinary missing resource.
type Params struct {
	TeamID   string
	UserID   string
	ImageID  string
	APIKeyID string
}

// ExtractParams walks the path segments positionally and records the
// identifier following each well-known collection segment. Extraction is
// independent of the rule table; when a collection name appears twice the
// later occurrence wins.
func ExtractParams(path string) Params {
	var p Params
	fields := map[string]*string{
		segTeams:   &p.TeamID,
		segUsers:   &p.UserID,
		segImages:  &p.ImageID,
		segAPIKeys: &p.APIKeyID,
	}

	parts := splitPath(path)
	for i := 0; i+1 < len(parts); i++ {
		if dst, ok := fields[parts[i]]; ok {
			*dst = parts[i+1]
		}
	}
	return p
}
