package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp wires a minimal Iris app with the role middlewares and stub
// handlers so auth can be tested without a database.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	ok := func(ctx iris.Context) { ctx.JSON(iris.Map{"ok": true}) }

	app.Post("/api/offer", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, ok)
	app.Post("/api/rentalrequest", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, ok)

	app.Build()
	return app
}

// signTestToken returns a signed JWT for the given role
func signTestToken(isLandlord bool) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, IsLandlord: isLandlord})
	return string(token)
}

func TestOfferCreationRequiresLandlord(t *testing.T) {
	app := buildTestApp()

	// No token
	req := httptest.NewRequest(http.MethodPost, "/api/offer", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Tenant token -> 403
	req2 := httptest.NewRequest(http.MethodPost, "/api/offer", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(false))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tenant token, got %d", resp2.Code)
	}

	// Landlord token -> 200
	req3 := httptest.NewRequest(http.MethodPost, "/api/offer", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(true))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for landlord token, got %d", resp3.Code)
	}
}

func TestRentalRequestCreationRequiresTenant(t *testing.T) {
	app := buildTestApp()

	// Landlord token -> 403
	req := httptest.NewRequest(http.MethodPost, "/api/rentalrequest", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(true))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for landlord token, got %d", resp.Code)
	}

	// Tenant token -> 200
	req2 := httptest.NewRequest(http.MethodPost, "/api/rentalrequest", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(false))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 for tenant token, got %d", resp2.Code)
	}
}
