package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/satriadwi28/kabarproject/tests/integration/setup"
)

func TestCommentLifecycle(t *testing.T) {
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

	t.Log("=== Setup: Users, Category and Article ===")
	adminToken := registerAdmin(t, app, db, ctx, "Site Admin", "admin@kabar.test", "password123")
	aliceToken := registerAndLogin(t, app, "Alice", "alice@kabar.test", "password123")
	bobToken := registerAndLogin(t, app, "Bob", "bob@kabar.test", "password123")

	categoryId := createTestCategory(t, app, adminToken, "Technology")
	articleId := createTestArticle(t, app, adminToken, categoryId, "A headline about technology")

	t.Log("=== Test 1: Created Comment Appears In The List ===")
	c1 := createComment(t, app, aliceToken, articleId, "Great article!", "")

	comments := listComments(t, app, articleId)
	require.Len(t, comments, 1, "one top-level comment expected")

	first := comments[0].(map[string]interface{})
	require.Equal(t, c1, first["id"], "listed comment id should match")
	require.Equal(t, "Great article!", first["content"])
	require.Nil(t, first["parentId"], "top-level comment has no parent")

	author := first["author"].(map[string]interface{})
	require.Equal(t, "Alice", author["name"], "comment carries its author")

	replies := first["replies"].([]interface{})
	require.Empty(t, replies, "no replies yet")

	t.Log("=== Test 2: Replies Are Ordered Oldest First Under Their Parent ===")
	r1 := createComment(t, app, bobToken, articleId, "Agreed!", c1)
	time.Sleep(10 * time.Millisecond)
	r2 := createComment(t, app, aliceToken, articleId, "Me too", c1)

	comments = listComments(t, app, articleId)
	require.Len(t, comments, 1)

	first = comments[0].(map[string]interface{})
	replies = first["replies"].([]interface{})
	require.Len(t, replies, 2, "both replies should be nested under the parent")
	require.Equal(t, r1, replies[0].(map[string]interface{})["id"], "older reply comes first")
	require.Equal(t, r2, replies[1].(map[string]interface{})["id"], "newer reply comes last")

	t.Log("=== Test 3: Top-Level Comments Are Ordered Newest First ===")
	time.Sleep(10 * time.Millisecond)
	c2 := createComment(t, app, bobToken, articleId, "A later comment", "")
	time.Sleep(10 * time.Millisecond)
	c3 := createComment(t, app, aliceToken, articleId, "The latest comment", "")

	comments = listComments(t, app, articleId)
	require.Len(t, comments, 3)
	require.Equal(t, c3, comments[0].(map[string]interface{})["id"])
	require.Equal(t, c2, comments[1].(map[string]interface{})["id"])
	require.Equal(t, c1, comments[2].(map[string]interface{})["id"])

	t.Log("=== Test 4: Owner Can Edit A Comment ===")
	reqBody := []byte(`{"content":"Great article! (edited)"}`)
	req := setup.CreateAuthRequest(http.MethodPatch, fmt.Sprintf("/api/comments/%s", c1), reqBody, aliceToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode, "owner update should succeed")

	data := setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "Great article! (edited)", data["content"])

	t.Log("=== Test 5: Deleting A Parent Removes The Whole Thread Atomically ===")
	req = setup.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("/api/comments/%s", c1), nil, aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode, "owner delete should succeed")

	data = setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	require.EqualValues(t, 3, data["deletedCount"], "parent plus two replies should be deleted")

	comments = listComments(t, app, articleId)
	require.Len(t, comments, 2, "only the two later top-level comments remain")
	for _, c := range comments {
		require.NotEqual(t, c1, c.(map[string]interface{})["id"], "deleted thread must not reappear")
	}

	t.Log("=== Test 6: Deleting An Already Deleted Comment Returns 404 ===")
	req = setup.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("/api/comments/%s", c1), nil, aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode, "repeat delete should report not found")

	code, _, _ := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "NOT_FOUND_ERROR", code)

	t.Log("=== Test 7: Deleting A Reply Removes Only That Reply ===")
	c4 := createComment(t, app, aliceToken, articleId, "Another thread", "")
	r3 := createComment(t, app, bobToken, articleId, "A reply to it", c4)

	req = setup.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("/api/comments/%s", r3), nil, bobToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data = setup.GetDataAsMap(t, setup.ParseJSONResponse(t, resp))
	require.EqualValues(t, 1, data["deletedCount"], "a reply deletes only itself")
}

func TestCommentAuthorization(t *testing.T) {
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

	t.Log("=== Setup: Users, Category and Article ===")
	adminToken := registerAdmin(t, app, db, ctx, "Site Admin", "admin@kabar.test", "password123")
	aliceToken := registerAndLogin(t, app, "Alice", "alice@kabar.test", "password123")
	bobToken := registerAndLogin(t, app, "Bob", "bob@kabar.test", "password123")

	categoryId := createTestCategory(t, app, adminToken, "Politics")
	articleId := createTestArticle(t, app, adminToken, categoryId, "A headline about politics")

	aliceComment := createComment(t, app, aliceToken, articleId, "Alice wrote this", "")

	t.Log("=== Test 1: Unauthenticated Create Is Rejected With 401 ===")
	reqBody := []byte(`{"content":"no token"}`)
	req := setup.CreateJSONRequest(http.MethodPost, fmt.Sprintf("/api/articles/%s/comments", articleId), reqBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	code, _, _ := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "UNAUTHORIZED_ERROR", code)

	t.Log("=== Test 2: Unauthenticated Edit Is Rejected With 401 ===")
	reqBody = []byte(`{"content":"no token edit"}`)
	req = setup.CreateJSONRequest(http.MethodPatch, fmt.Sprintf("/api/comments/%s", aliceComment), reqBody)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	t.Log("=== Test 3: Garbage Token Is Rejected With 401 ===")
	req = setup.CreateAuthRequest(http.MethodPatch, fmt.Sprintf("/api/comments/%s", aliceComment), reqBody, "not-a-jwt")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	t.Log("=== Test 4: Editing Someone Else's Comment Is Rejected With 403 ===")
	reqBody = []byte(`{"content":"bob tries to edit"}`)
	req = setup.CreateAuthRequest(http.MethodPatch, fmt.Sprintf("/api/comments/%s", aliceComment), reqBody, bobToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode, "a known user without ownership gets forbidden, not unauthorized")

	code, _, param := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
	require.Equal(t, "FORBIDDEN_ERROR", code)
	require.Equal(t, "commentId", param)

	t.Log("=== Test 5: Deleting Someone Else's Comment Is Rejected With 403 ===")
	req = setup.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("/api/comments/%s", aliceComment), nil, bobToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	t.Log("=== Test 6: Failed Attempts Left The Comment Untouched ===")
	comments := listComments(t, app, articleId)
	require.Len(t, comments, 1)
	require.Equal(t, "Alice wrote this", comments[0].(map[string]interface{})["content"])
}

func TestCommentValidation(t *testing.T) {
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

	t.Log("=== Setup: Users, Categories and Articles ===")
	adminToken := registerAdmin(t, app, db, ctx, "Site Admin", "admin@kabar.test", "password123")
	aliceToken := registerAndLogin(t, app, "Alice", "alice@kabar.test", "password123")

	categoryId := createTestCategory(t, app, adminToken, "Science")
	articleId := createTestArticle(t, app, adminToken, categoryId, "A headline about science")
	otherArticleId := createTestArticle(t, app, adminToken, categoryId, "A different science headline")

	commentsUrl := fmt.Sprintf("/api/articles/%s/comments", articleId)

	postComment := func(body string) (*http.Response, map[string]interface{}) {
		req := setup.CreateAuthRequest(http.MethodPost, commentsUrl, []byte(body), aliceToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp, setup.ParseJSONResponse(t, resp)
	}

	t.Log("=== Test 1: Empty Content Is Rejected ===")
	resp, result := postComment(`{"content":""}`)
	require.Equal(t, 400, resp.StatusCode)
	code, _, param := setup.ParseErrorDetail(t, result)
	require.Equal(t, "VALIDATION_ERROR", code)
	require.Equal(t, "content", param)

	t.Log("=== Test 2: Whitespace Only Content Is Rejected ===")
	resp, result = postComment(`{"content":"   \n\t  "}`)
	require.Equal(t, 400, resp.StatusCode)
	_, _, param = setup.ParseErrorDetail(t, result)
	require.Equal(t, "content", param)

	t.Log("=== Test 3: Content Over 500 Characters Is Rejected ===")
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	resp, result = postComment(fmt.Sprintf(`{"content":%q}`, string(long)))
	require.Equal(t, 400, resp.StatusCode)
	_, _, param = setup.ParseErrorDetail(t, result)
	require.Equal(t, "content", param)

	t.Log("=== Test 4: Exactly 500 Characters After Trim Is Accepted ===")
	exact := make([]byte, 500)
	for i := range exact {
		exact[i] = 'b'
	}
	resp, result = postComment(fmt.Sprintf(`{"content":%q}`, "  "+string(exact)+"  "))
	require.Equal(t, 200, resp.StatusCode)
	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, string(exact), data["content"], "stored content is the trimmed value")

	t.Log("=== Test 5: Commenting On A Missing Article Returns 404 ===")
	missingUrl := "/api/articles/3f8e9a10-1a2b-4c3d-8e9f-000000000000/comments"
	req := setup.CreateAuthRequest(http.MethodPost, missingUrl, []byte(`{"content":"hello"}`), aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)

	t.Log("=== Test 6: Invalid Article Id Returns 400 ===")
	req = setup.CreateAuthRequest(http.MethodPost, "/api/articles/not-a-uuid/comments", []byte(`{"content":"hello"}`), aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	t.Log("=== Test 7: Reply To A Reply Is Rejected ===")
	parent := createComment(t, app, aliceToken, articleId, "top", "")
	reply := createComment(t, app, aliceToken, articleId, "first level reply", parent)

	resp, result = postComment(fmt.Sprintf(`{"content":"second level","parentId":%q}`, reply))
	require.Equal(t, 400, resp.StatusCode, "nesting deeper than one level is rejected")
	_, _, param = setup.ParseErrorDetail(t, result)
	require.Equal(t, "parentId", param)

	t.Log("=== Test 8: Parent From Another Article Is Rejected ===")
	otherParent := createComment(t, app, aliceToken, otherArticleId, "lives elsewhere", "")
	resp, result = postComment(fmt.Sprintf(`{"content":"cross-article reply","parentId":%q}`, otherParent))
	require.Equal(t, 400, resp.StatusCode)
	_, _, param = setup.ParseErrorDetail(t, result)
	require.Equal(t, "parentId", param)

	t.Log("=== Test 9: Unknown Parent Is Rejected ===")
	resp, result = postComment(`{"content":"orphan reply","parentId":"3f8e9a10-1a2b-4c3d-8e9f-000000000001"}`)
	require.Equal(t, 400, resp.StatusCode)
	_, _, param = setup.ParseErrorDetail(t, result)
	require.Equal(t, "parentId", param)

	t.Log("=== Test 10: Editing A Missing Comment Returns 404 ===")
	req = setup.CreateAuthRequest(http.MethodPatch, "/api/comments/3f8e9a10-1a2b-4c3d-8e9f-000000000002", []byte(`{"content":"hello"}`), aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}
