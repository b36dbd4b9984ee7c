package handler

// Route parameter names. These must stay aligned with the patterns the
// authorization rule table is built from.
const (
	paramTeamID   = "team_id"
	paramUserID   = "user_id"
	paramImageID  = "image_id"
	paramAPIKeyID = "api_key_id"
)

const (
	queryParamLimit        = "limit"
	queryParamOffset       = "offset"
	queryParamSkip         = "skip"
	queryParamUserID       = "user_id"
	queryParamResourceType = "resource_type"
	queryParamAction       = "action"
	queryParamStatus       = "status"
	queryParamFromDate     = "from_date"
	queryParamToDate       = "to_date"
)

const (
	formFieldFile        = "file"
	formFieldTitle       = "title"
	formFieldDescription = "description"
)

const jsonKeyMessage = "message"

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "Invalid request body"
	msgInvalidPagination       = "Invalid pagination parameters"
	msgInvalidDateFilter       = "Invalid date filter, use RFC 3339"

	msgInvalidTeamID   = "Invalid team ID"
	msgInvalidUserID   = "Invalid user ID"
	msgInvalidImageID  = "Invalid image ID"
	msgInvalidAPIKeyID = "Invalid API key ID"

	msgTeamUpdated = "Team updated successfully"
	msgUserUpdated = "User updated successfully"

	msgInvalidRoleValue    = "Invalid role"
	msgRootRoleNotIssuable = "API keys cannot be issued with the root role"
	msgAPIKeyExpiryInPast  = "Expiry must be in the future"
	msgUserNotInTeam       = "User does not belong to this team"
	msgGenerateAPIKeyFail  = "Failed to generate API key"
	msgAPIKeyUpdated       = "API key updated successfully"
	msgAPIKeyRevoked       = "API key revoked successfully"

	msgFileRequired   = "Image file is required"
	msgFileNotImage   = "File is not a valid image"
	msgReadUploadFail = "Failed to read uploaded file"
	msgImageUpdated   = "Image updated successfully"
)
