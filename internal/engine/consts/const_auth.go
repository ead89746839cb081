package consts

const (
	// CLAIMS holds the parsed *jwt.AuthClaims in fiber Locals
	CLAIMS = "claims"

	// REQUEST_ID holds the X-Request-Id value in fiber Locals
	REQUEST_ID = "request_id"
)

const (
	// UserIdentityKey caches a user's id and role names, suffixed by the business user id
	UserIdentityKey = "edo:user:identity:"
)
