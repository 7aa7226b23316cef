package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satriadwi28/kabarproject/tests/integration/setup"
)

func TestRegisterAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err, "infrastructure should start successfully")
	defer infra.Terminate(ctx, t)

	t.Log("=== Running Database Migrations ===")
	require.NoError(t, setup.RunMigration(infra.PgURL, t))

	t.Log("=== Setting Up Test Application ===")
	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)
	defer db.Close()

	t.Log("=== Test 1: Successful Registration Returns The New Profile ===")
	reqBody := []byte(`{"name":"Alice","email":"ALICE@kabar.test","password":"password123"}`)
	req := setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	result := setup.ParseJSONResponse(t, resp)
	data := setup.GetDataAsMap(t, result)
	require.Equal(t, "Alice", data["name"])
	require.Equal(t, "alice@kabar.test", data["email"], "email is normalized to lower case")
	require.Equal(t, "USER", data["role"], "new accounts start as regular users")
	require.NotEmpty(t, data["id"])

	t.Log("=== Test 2: Duplicate Email Is Rejected ===")
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	code, message, param := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "VALIDATION_ERROR", code)
	require.Equal(t, "email", param)
	require.Contains(t, message, "already registered")

	t.Log("=== Test 3: Invalid Email Is Rejected ===")
	reqBody = []byte(`{"name":"Alice","email":"not-an-email","password":"password123"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	_, _, param = setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "email", param)

	t.Log("=== Test 4: Short Password Is Rejected ===")
	reqBody = []byte(`{"name":"Alice","email":"alice2@kabar.test","password":"short"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	_, _, param = setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "password", param)

	t.Log("=== Test 5: Short Name Is Rejected ===")
	reqBody = []byte(`{"name":"A","email":"alice3@kabar.test","password":"password123"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	_, _, param = setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "name", param)

	t.Log("=== Test 6: Login With Correct Credentials Succeeds ===")
	reqBody = []byte(`{"email":"alice@kabar.test","password":"password123"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	accessToken := setup.GetAccessTokenFromResponse(t, resp)
	require.NotEmpty(t, accessToken)

	t.Log("=== Test 7: Login With Wrong Password Fails ===")
	reqBody = []byte(`{"email":"alice@kabar.test","password":"wrongpassword"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	message = setup.ParseErrorMessage(t, setup.ParseJSONResponse(t, resp))
	require.Contains(t, message, "incorrect")

	t.Log("=== Test 8: Login With Unknown Email Fails ===")
	reqBody = []byte(`{"email":"nobody@kabar.test","password":"password123"}`)
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	t.Log("=== Test 9: Profile Is Readable With A Valid Token ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data = setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "Alice", data["name"])
	require.Equal(t, "alice@kabar.test", data["email"])
	require.Equal(t, "USER", data["role"])
	require.Nil(t, data["avatarUrl"], "no avatar uploaded yet")

	t.Log("=== Test 10: Profile Is Not Readable Without A Token ===")
	req = setup.CreateJSONRequest(http.MethodGet, "/api/users/me", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	t.Log("=== Test 11: Logout Invalidates The Access Token ===")
	req = setup.CreateAuthRequest(http.MethodPost, "/api/users/logout", nil, accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode, "a logged out token must be refused")
}

func TestProfileManagement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err, "infrastructure should start successfully")
	defer infra.Terminate(ctx, t)

	t.Log("=== Running Database Migrations ===")
	require.NoError(t, setup.RunMigration(infra.PgURL, t))

	t.Log("=== Setting Up Test Application ===")
	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)
	defer db.Close()

	token := registerAndLogin(t, app, "Charlie", "charlie@kabar.test", "password123")

	t.Log("=== Test 1: Updating The Display Name ===")
	reqBody := []byte(`{"name":"Charlie Updated"}`)
	req := setup.CreateAuthRequest(http.MethodPatch, "/api/users/me", reqBody, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data := setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "Charlie Updated", data["name"])

	t.Log("=== Test 2: A Too Short Name Is Rejected ===")
	reqBody = []byte(`{"name":"C"}`)
	req = setup.CreateAuthRequest(http.MethodPatch, "/api/users/me", reqBody, token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	t.Log("=== Test 3: Fetching An Avatar That Was Never Uploaded Returns 404 ===")
	var userId string
	err = db.QueryRow(ctx, "SELECT id FROM users WHERE email=$1", "charlie@kabar.test").Scan(&userId)
	require.NoError(t, err)

	req = setup.CreateJSONRequest(http.MethodGet, "/api/users/"+userId+"/avatar", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)

	t.Log("=== Test 4: Deleting The Account Removes The User ===")
	req = setup.CreateAuthRequest(http.MethodDelete, "/api/users/me", nil, token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var count int
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE email=$1", "charlie@kabar.test").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	t.Log("=== Test 5: The Deleted Account's Token No Longer Works ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	t.Log("=== Test 6: Malformed Bearer Header Is Rejected ===")
	req = setup.CreateJSONRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}
