package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeEmptyPriceTable      ErrorCode = 102
	ErrCodeMissingColumn        ErrorCode = 103
	ErrCodeInvalidPair          ErrorCode = 104
	ErrCodeInvalidQuantity      ErrorCode = 105
	ErrCodeInvalidTimeIndex     ErrorCode = 106

	// Data integrity errors (200-299)
	ErrCodeSymbolNotFound      ErrorCode = 200
	ErrCodeDateNotFound        ErrorCode = 201
	ErrCodeColumnAllMissing    ErrorCode = 202
	ErrCodeInsufficientSymbols ErrorCode = 203
	ErrCodeLengthMismatch      ErrorCode = 204

	// Feature generation errors (300-399)
	ErrCodeFeatureGeneration ErrorCode = 300
	ErrCodeInsufficientData  ErrorCode = 301
	ErrCodeUnknownIndicator  ErrorCode = 302
	ErrCodeInvalidFillMethod ErrorCode = 303

	// Signal errors (400-499)
	ErrCodeSignalShapeUnknown ErrorCode = 400
	ErrCodeSignalParseFailed  ErrorCode = 401
	ErrCodeStrategyFailed     ErrorCode = 402

	// Ledger errors (500-599)
	ErrCodePositionNotFound    ErrorCode = 500
	ErrCodePositionAlreadyOpen ErrorCode = 501
	ErrCodeInsufficientCapital ErrorCode = 502
	ErrCodeTradeLogFailed      ErrorCode = 503

	// Engine errors (600-699)
	ErrCodeEngineConfigError ErrorCode = 600
	ErrCodeEngineStateNil    ErrorCode = 601
	ErrCodeStepFailed        ErrorCode = 602
	ErrCodeRiskLimitBreach   ErrorCode = 603

	// Report errors (700-799)
	ErrCodeReportBuildFailed ErrorCode = 700
	ErrCodeReportWriteFailed ErrorCode = 701
)
