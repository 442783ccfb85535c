package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"patient-followup/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// FetchPublicKey fetches the RSA public key the identity provider signs
// tokens with.
func FetchPublicKey(url string) (*rsa.PublicKey, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}

	return rsaPubKey, nil
}

// VerifyJWT verifies a JWT token against the provider's public key and
// returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	publicKey, err := FetchPublicKey(os.Getenv("PUBLIC_KEY_URL"))
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid JWT token")
}

func hasPermission(jwtToken string, requiredPermissions []string) (jwt.MapClaims, bool) {
	claims, err := VerifyJWT(jwtToken)
	if err != nil {
		return nil, false
	}

	// "any" means a valid token is enough.
	for _, requiredPerm := range requiredPermissions {
		if requiredPerm == "any" {
			return claims, true
		}
	}

	permissionSet := extractUserPermissionsFromClaims(claims)
	for _, requiredPerm := range requiredPermissions {
		if permissionSet[requiredPerm] {
			return claims, true
		}
	}

	return claims, false
}

// IsAuthenticated is a middleware that checks for a valid JWT token carrying
// any of the required permissions.
func IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Cookie fallback for browser clients.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Authorization token missing",
				})
			}
		}

		decodedClaims, hasAccess := hasPermission(token, requiredPermissions)
		if !hasAccess {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "Insufficient permissions",
			})
		}

		if decodedClaims["username"] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", decodedClaims)
		c.Locals("permissions", extractUserPermissionsFromClaims(decodedClaims))

		return c.Next()
	}
}
