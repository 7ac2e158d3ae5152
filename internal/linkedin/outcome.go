package linkedin

// Status enumerates the terminal classifications of one post attempt.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusAuthRequired   Status = "auth_required"
	StatusEditorNotFound Status = "editor_not_found"
	StatusSubmitNotFound Status = "submit_not_found"
	StatusIndeterminate  Status = "indeterminate"
	StatusError          Status = "error"
)

// Outcome is the single, total result of a post attempt. Exactly one status
// applies. DiagnosticPath is set only for StatusError, and only when the
// diagnostic screenshot capture succeeded.
type Outcome struct {
	Status         Status `json:"status"`
	Message        string `json:"message,omitempty"`
	DiagnosticPath string `json:"diagnostic_path,omitempty"`
}

// OK reports confirmed success.
func (o Outcome) OK() bool { return o.Status == StatusSuccess }

// User-facing messages for the expected negative outcomes.
const (
	msgPosted = "Successfully posted on LinkedIn!"

	msgManualLogin = "Please log into LinkedIn in the browser window that opened. " +
		"No post was made; run the post again once logged in."

	msgEditorNotFound = "Could not find the post editor. " +
		"Ensure you are logged into LinkedIn and try again."

	msgSubmitNotFound = "Could not find the post button. " +
		"Check the browser window and post manually."

	msgIndeterminate = "Post may have been published, but couldn't confirm. " +
		"Please check your LinkedIn feed."
)
