package constant

const (
	MAX_FILE_SIZE       = 5 * 1024 * 1024
	MAX_LIMIT           = 50
	DEFAULT_LIMIT       = 10
	MAX_COMMENT_LENGTH  = 500
	MIN_TITLE_LENGTH    = 5
	MIN_CONTENT_LENGTH  = 10
	MIN_NAME_LENGTH     = 2
	MIN_PASSWORD_LENGTH = 8
)
