package transfer

// GraphResponse is the generic Meta Graph API success shape: an object id.
type GraphResponse struct {
	ID    string      `json:"id"`
	Error *GraphError `json:"error,omitempty"`
}

type GraphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FbtraceID    string `json:"fbtrace_id"`
}

// ContainerStatusResponse is the poll shape for an Instagram media
// container: GET /<container-id>?fields=status.
type ContainerStatusResponse struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Error  *GraphError `json:"error,omitempty"`
}

// Instagram container processing states. Anything unrecognized is treated
// as UNKNOWN, which polls the same as IN_PROGRESS.
const (
	ContainerInProgress = "IN_PROGRESS"
	ContainerFinished   = "FINISHED"
	ContainerError      = "ERROR"
	ContainerUnknown    = "UNKNOWN"
)

// NormalizeContainerStatus maps a raw status string onto the closed state
// set.
func NormalizeContainerStatus(raw string) string {
	switch raw {
	case ContainerInProgress, ContainerFinished, ContainerError:
		return raw
	default:
		return ContainerUnknown
	}
}

// MetaTokenResponse is the Graph OAuth token exchange shape.
type MetaTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// MetaPage is one entry of GET /me/accounts.
type MetaPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

type MetaPagesResponse struct {
	Data  []MetaPage  `json:"data"`
	Error *GraphError `json:"error,omitempty"`
}
