package model

type AuditActor struct {
	Subject string `json:"subject,omitempty"`
	Role    string `json:"role,omitempty"`
	IP      string `json:"ip,omitempty"`
}

type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt string     `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Error      string     `json:"error,omitempty"`
}

const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"

	AuditActionLogin          = "auth.login"
	AuditActionUpload         = "media.upload"
	AuditActionLocationCreate = "location.create"
	AuditActionLocationUpdate = "location.update"
	AuditActionLocationDelete = "location.delete"
)
