package auth

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/pkg/util"
)

const sessionUserKey = "session_user_id"

// TokenHeader is the request header carrying the session token on mutation
// endpoints.
const TokenHeader = "auth-token"

// SessionMiddleware verifies session tokens and stashes the caller's user id.
type SessionMiddleware struct {
	tokens *TokenManager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Handle enforces a valid session for protected routes. The token is read
// from the auth-token header, falling back to a token field in the JSON body;
// older read endpoints send it in the body while mutation endpoints use the
// header, and both placements must keep working.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			token = body.Token
		}
	}
	if token == "" {
		return util.NewMissingCredential()
	}

	userID, err := m.tokens.Verify(token)
	if err != nil {
		return util.NewInvalidToken()
	}

	c.Locals(sessionUserKey, userID)
	return c.Next()
}

// SessionUserID retrieves the authenticated user id set by Handle.
func SessionUserID(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionUserKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
