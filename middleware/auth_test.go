package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKid = "test-key-1"

func newTestJWKS(t *testing.T) (*httptest.Server, *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	doc := map[string]interface{}{
		"keys": []map[string]string{
			{
				"kty": "RSA",
				"kid": testKid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
			},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv, priv
}

func signToken(t *testing.T, priv *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func authRouter(jwks *JWKSClient, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Authenticate(jwks)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"role":   c.GetString(ContextRoleKey),
			"tenant": c.GetString(ContextTenantKey),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthenticate(t *testing.T) {
	srv, priv := newTestJWKS(t)
	jwks := NewJWKSClient(srv.URL)
	r := authRouter(jwks)

	validClaims := jwt.MapClaims{
		"sub":    "user-1",
		"role":   RoleManager,
		"tenant": float64(7),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}

	t.Run("valid bearer token passes and claims land on the context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, priv, testKid, validClaims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, RoleManager, resp["role"])
		// numeric tenant claims are normalized to strings
		assert.Equal(t, "7", resp["tenant"])
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("literal undefined bearer value is treated as missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer undefined")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie fallback works without a header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: signToken(t, priv, testKid, validClaims)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired token is a 401", func(t *testing.T) {
		expired := jwt.MapClaims{
			"role": RoleManager,
			"exp":  time.Now().Add(-time.Hour).Unix(),
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, priv, testKid, expired))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed by an unknown key is a 401", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, other, "rogue-kid", validClaims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("HMAC token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims)
		token.Header["kid"] = testKid
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	srv, priv := newTestJWKS(t)
	jwks := NewJWKSClient(srv.URL)

	tokenFor := func(role string) string {
		return signToken(t, priv, testKid, jwt.MapClaims{
			"role": role,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
	}

	t.Run("allowed role passes", func(t *testing.T) {
		r := authRouter(jwks, RoleAdmin, RoleManager)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(RoleManager))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer is rejected from admin-only routes", func(t *testing.T) {
		r := authRouter(jwks, RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(RoleCustomer))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestJWKSKeyRotation(t *testing.T) {
	priv1, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	priv2, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	docFor := func(kid string, priv *rsa.PrivateKey) map[string]interface{} {
		return map[string]interface{}{
			"keys": []map[string]string{
				{
					"kty": "RSA",
					"kid": kid,
					"n":   base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
					"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
				},
			},
		}
	}

	current := docFor("key-1", priv1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(current)
	}))
	defer srv.Close()

	jwks := NewJWKSClient(srv.URL)

	key, err := jwks.SigningKey("key-1")
	require.NoError(t, err)
	assert.Equal(t, 0, priv1.N.Cmp(key.N))

	// An unknown kid forces a refresh, picking up the rotated key.
	current = docFor("key-2", priv2)
	key, err = jwks.SigningKey("key-2")
	require.NoError(t, err)
	assert.Equal(t, 0, priv2.N.Cmp(key.N))

	_, err = jwks.SigningKey("key-3")
	assert.Error(t, err)
}
