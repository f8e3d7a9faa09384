package middleware

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/repositories"
)

// FirebaseAuthMiddleware verifies Firebase ID tokens and resolves the
// matching local account. It is an alternative to JWTAuthMiddleware for
// deployments that delegate sign-in to Firebase entirely.
func FirebaseAuthMiddleware(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed Authorization header")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := userRepo.GetUserByFirebaseUID(token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No account linked to this Firebase user")
			}

			c.Set("userID", user.ID)
			c.Set("username", user.Username)
			c.Set("firebaseUID", token.UID)

			return next(c)
		}
	}
}
