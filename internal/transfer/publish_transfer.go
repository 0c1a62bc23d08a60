package transfer

// Error codes shared by the publishing pipeline. Every component returns a
// tagged result carrying one of these instead of letting errors cross
// component boundaries.
const (
	PublishErrMissingCredentials   = "missing_credentials"
	PublishErrImageRequired        = "image_required"
	PublishErrDownloadFailed       = "download_failed"
	PublishErrPutFailed            = "put_failed"
	PublishErrStorageUnavailable   = "storage_unavailable"
	PublishErrContainerCreateFail  = "container_create_failed"
	PublishErrContainerTimeout     = "container_timeout"
	PublishErrContainerError       = "container_error"
	PublishErrPublishFailed        = "publish_failed"
	PublishErrAccountNotConfigured = "account_not_configured"
	PublishErrAccountDisabled      = "account_disabled"
	PublishErrNotImplemented       = "not_implemented"
)

// PublishResult is the uniform outcome of one publish attempt, whichever
// adapter ran.
type PublishResult struct {
	Success        bool   `json:"success"`
	PlatformPostID string `json:"platform_post_id,omitempty"`
	ErrorCode      string `json:"error_code,omitempty"`
	Error          string `json:"error,omitempty"`
}

func PublishSuccess(platformPostID string) *PublishResult {
	return &PublishResult{Success: true, PlatformPostID: platformPostID}
}

func PublishFailure(code, message string) *PublishResult {
	return &PublishResult{ErrorCode: code, Error: message}
}

// UploadResult is the outcome of one rehost/upload attempt.
type UploadResult struct {
	Success    bool   `json:"success"`
	StorageKey string `json:"storage_key,omitempty"`
	PublicURL  string `json:"public_url,omitempty"`
	FileType   string `json:"file_type,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

func UploadFailure(code, message string) *UploadResult {
	return &UploadResult{ErrorCode: code, Error: message}
}
