package engine

const (
	logMsgBatchProgress  = "inserted rows"
	logMsgBatchFinished  = "batch worker finished"
	logMsgWorkerFailed   = "worker stopped on transaction error"
	logMsgLimiterStarted = "limiter started"
	logMsgLimiterStopped = "limiter stopped"
	logMsgTokenDropped   = "token queue full, dropped token"
	logAttrWorker        = "worker"
	logAttrRows          = "rows"
	logAttrTotalRows     = "total_rows"
	logAttrService       = "service"
	logAttrError         = "error"
	logAttrIssued        = "issued"
	logAttrDropped       = "dropped"
	logAttrTokensPerTick = "tokens_per_tick"
)
