package ports

import "farmverse/internal/domain/farm"

type ActionMetrics interface {
	RecordSuccess(resultCode farm.ResultCode)
	RecordConflict()
	RecordFailure()
}

type SessionMetrics interface {
	RecordDayAdvance()
	RecordSave(ok bool)
	RecordSaveRetry()
	RecordLoad(ok bool)
}
