package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/satriadwi28/kabarproject/tests/integration/setup"
)

// registerAndLogin creates a user through the public API and returns its access token
func registerAndLogin(t *testing.T, app *fiber.App, name, email, password string) string {
	reqBody := []byte(fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password))
	req := setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err := app.Test(req)
	require.NoError(t, err, "register request should complete")
	require.Equal(t, 200, resp.StatusCode, "register should return 200")

	loginBody := []byte(fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", loginBody)
	resp, err = app.Test(req)
	require.NoError(t, err, "login request should complete")
	require.Equal(t, 200, resp.StatusCode, "login should return 200")

	return setup.GetAccessTokenFromResponse(t, resp)
}

// registerAdmin creates a user, promotes it to ADMIN directly in the
// database and returns its access token
func registerAdmin(t *testing.T, app *fiber.App, db *pgxpool.Pool, ctx context.Context, name, email, password string) string {
	reqBody := []byte(fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password))
	req := setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", reqBody)
	resp, err := app.Test(req)
	require.NoError(t, err, "register request should complete")
	require.Equal(t, 200, resp.StatusCode, "register should return 200")

	setup.PromoteToAdmin(t, db, ctx, email)

	loginBody := []byte(fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	req = setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", loginBody)
	resp, err = app.Test(req)
	require.NoError(t, err, "login request should complete")
	require.Equal(t, 200, resp.StatusCode, "login should return 200")

	return setup.GetAccessTokenFromResponse(t, resp)
}

func createTestCategory(t *testing.T, app *fiber.App, adminToken, name string) string {
	reqBody := []byte(fmt.Sprintf(`{"name":%q}`, name))
	req := setup.CreateAuthRequest(http.MethodPost, "/api/categories", reqBody, adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err, "create category request should complete")
	require.Equal(t, 200, resp.StatusCode, "create category should return 200")

	data := setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	categoryId, ok := data["id"].(string)
	require.True(t, ok, "category id should be a string")

	return categoryId
}

func createTestArticle(t *testing.T, app *fiber.App, adminToken, categoryId, title string) string {
	reqBody := []byte(fmt.Sprintf(`{"title":%q,"content":"This is the article body used in tests.","categoryId":%q}`, title, categoryId))
	req := setup.CreateAuthRequest(http.MethodPost, "/api/articles", reqBody, adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err, "create article request should complete")
	require.Equal(t, 200, resp.StatusCode, "create article should return 200")

	data := setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	articleId, ok := data["id"].(string)
	require.True(t, ok, "article id should be a string")

	return articleId
}

// createComment posts a comment (or a reply when parentId is not empty) and
// returns the comment id
func createComment(t *testing.T, app *fiber.App, token, articleId, content, parentId string) string {
	var reqBody []byte
	if parentId == "" {
		reqBody = []byte(fmt.Sprintf(`{"content":%q}`, content))
	} else {
		reqBody = []byte(fmt.Sprintf(`{"content":%q,"parentId":%q}`, content, parentId))
	}

	url := fmt.Sprintf("/api/articles/%s/comments", articleId)
	req := setup.CreateAuthRequest(http.MethodPost, url, reqBody, token)
	resp, err := app.Test(req)
	require.NoError(t, err, "create comment request should complete")
	require.Equal(t, 200, resp.StatusCode, "create comment should return 200")

	data := setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	commentId, ok := data["id"].(string)
	require.True(t, ok, "comment id should be a string")

	return commentId
}

func listComments(t *testing.T, app *fiber.App, articleId string) []interface{} {
	url := fmt.Sprintf("/api/articles/%s/comments", articleId)
	req := setup.CreateJSONRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	require.NoError(t, err, "list comments request should complete")
	require.Equal(t, 200, resp.StatusCode, "list comments should return 200")

	return setup.GetDataAsArray(t, setup.ParseJSONResponse(t, resp))
}
