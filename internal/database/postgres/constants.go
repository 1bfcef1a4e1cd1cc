package postgres

// PostgreSQL Error Codes
const (
	PgErrorCodeUniqueViolation   = "23505"
	PgErrorCodeNumericOutOfRange = "22003"
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
	ErrMsgGetProject               = "failed to get project"
	ErrMsgInsertProject            = "failed to insert project"
	ErrMsgUpdateProject            = "failed to update project"
	ErrMsgNextProjectID            = "failed to allocate project id"
	ErrMsgListProjects             = "failed to list projects"
	ErrMsgGetBox                   = "failed to get box"
	ErrMsgInsertBox                = "failed to insert box"
	ErrMsgUpdateBox                = "failed to update box"
	ErrMsgListBoxes                = "failed to list boxes"
	ErrMsgBalance                  = "failed to read balance"
	ErrMsgDebit                    = "failed to debit account"
	ErrMsgCredit                   = "failed to credit account"
)
