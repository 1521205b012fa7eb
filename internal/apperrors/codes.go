package apperrors

const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeUpload              = "UPLOAD_ERROR"
	CodePersistence         = "PERSISTENCE_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternalServer      = "INTERNAL_SERVER"
	CodeEventPublishError   = "EVENT_PUBLISH_ERROR"
	CodeObjectMarshalError  = "OBJECT_MARSHALL_ERROR"
	CodeRedisOperationError = "REDIS_ERROR"
)
