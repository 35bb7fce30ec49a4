package store

const (
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgDBExecFailed     = "database statement execution failed"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgRollbackFailed   = "failed to roll back transaction"
	logMsgBeginFailed      = "failed to begin transaction"
	logMsgCommitFailed     = "failed to commit transaction"
	logMsgSQLExecuted      = "executed sql"
	logMsgConnected        = "connected to database"
	logMsgConnectFailed    = "failed to connect to database"
	logMsgTableDropped     = "table dropped"
	logMsgTableCreated     = "table created"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDialect         = "dialect"
	logAttrDriver          = "driver"
	logAttrCockroach       = "cockroachdb"
	logAttrTable           = "table"
)

func (s *Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
