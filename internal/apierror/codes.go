package apierror

// Error type URIs following the urn:babyinsights:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeInvalidSubject indicates the subject id is not a valid UUID (400)
	TypeInvalidSubject = "urn:babyinsights:error:invalid_subject"

	// TypeUnknownScope indicates an unsupported insight type (400)
	TypeUnknownScope = "urn:babyinsights:error:unknown_scope"

	// TypeNotFound indicates the subject does not exist (404)
	TypeNotFound = "urn:babyinsights:error:not_found"

	// TypeUnauthorized indicates a malformed Authorization header (401)
	TypeUnauthorized = "urn:babyinsights:error:unauthorized"

	// TypeUpstream indicates the record store failed (502)
	TypeUpstream = "urn:babyinsights:error:upstream"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:babyinsights:error:internal"
)

const (
	TitleInvalidSubject = "Invalid Subject ID"
	TitleUnknownScope   = "Unknown Insight Type"
	TitleNotFound       = "Subject Not Found"
	TitleUnauthorized   = "Authentication Required"
	TitleUpstream       = "Record Store Unavailable"
	TitleInternal       = "Internal Server Error"
)
