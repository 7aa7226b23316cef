package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables truncates all tables in correct order (children first, then parents)
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	t.Log("Truncating all database tables...")

	tables := []string{
		"comments",
		"articles",
		"categories",
		"user_profile_images",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	t.Log("All database tables truncated successfully")
}

// PromoteToAdmin flips the role of a registered user directly in the database
func PromoteToAdmin(t *testing.T, db *pgxpool.Pool, ctx context.Context, email string) {
	tag, err := db.Exec(ctx, "UPDATE users SET role='ADMIN' WHERE email=$1", email)
	require.NoError(t, err, "failed to promote user to admin")
	require.EqualValues(t, 1, tag.RowsAffected(), "expected exactly one user to be promoted")
}

// CreateMultipartFormData creates multipart form data for file upload
// requests. The file part carries the content type matching its extension.
func CreateMultipartFormData(t *testing.T, fieldName, fileName string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))

	partContentType := mime.TypeByExtension(filepath.Ext(fileName))
	if partContentType == "" {
		partContentType = "application/octet-stream"
	}
	partHeader.Set("Content-Type", partContentType)

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err, "failed to create form file field")

	_, err = part.Write(fileData)
	require.NoError(t, err, "failed to write file data")

	for key, value := range fields {
		err = writer.WriteField(key, value)
		require.NoError(t, err, "failed to write form field %s", key)
	}

	err = writer.Close()
	require.NoError(t, err, "failed to close multipart writer")

	contentType := writer.FormDataContentType()
	return body, contentType
}

// CreateJSONRequest creates a test request with JSON body
func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthRequest creates a test request with JSON body and Authorization header
func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

// ParseJSONResponse helper to parse JSON response body
func ParseJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response")

	return result
}

// GetAccessTokenFromResponse extracts access token from a login response
func GetAccessTokenFromResponse(t *testing.T, resp *http.Response) string {
	result := ParseJSONResponse(t, resp)

	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response data should be an object")

	accessToken, ok := data["accessToken"].(string)
	require.True(t, ok, "accessToken should be a string")
	require.NotEmpty(t, accessToken, "accessToken should not be empty")

	return accessToken
}

// GenerateRandomString generates a random string of specified length
// Uses lowercase letters and numbers for test data generation
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		// #nosec G404 -- Weak randomness is acceptable for non-security test data
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ParseErrorMessage extracts error message from error response
func ParseErrorMessage(t *testing.T, result map[string]interface{}) string {
	errResp := ParseErrorResponse(t, result)
	return errResp.Message
}

// ParseErrorDetail extracts complete error details (code, message, param)
func ParseErrorDetail(t *testing.T, result map[string]interface{}) (code, message, param string) {
	errResp := ParseErrorResponse(t, result)
	return errResp.Code, errResp.Message, errResp.Param
}

// ParseErrorResponse parses error response into ErrorResponse struct
func ParseErrorResponse(t *testing.T, result map[string]interface{}) ErrorResponse {
	require.Contains(t, result, "error", "response should contain error field")

	errObj, ok := result["error"].(map[string]interface{})
	require.True(t, ok, "error field should be an object")

	errResp := ErrorResponse{}

	if code, ok := errObj["code"].(string); ok {
		errResp.Code = code
	}

	if message, ok := errObj["message"].(string); ok {
		errResp.Message = message
	}

	if param, ok := errObj["param"].(string); ok {
		errResp.Param = param
	}

	return errResp
}

// GetDataAsMap extracts the data field as a map (for single object responses)
func GetDataAsMap(t *testing.T, result map[string]interface{}) map[string]interface{} {
	require.Contains(t, result, "data", "response should contain data field")
	dataMap, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "data field should be an object/map")
	return dataMap
}

// GetDataAsArray extracts the data field as an array (for list responses)
func GetDataAsArray(t *testing.T, result map[string]interface{}) []interface{} {
	require.Contains(t, result, "data", "response should contain data field")
	dataArray, ok := result["data"].([]interface{})
	require.True(t, ok, "data field should be an array")
	return dataArray
}
