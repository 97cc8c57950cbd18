package inmemory

import (
	"sync"

	"farmverse/internal/domain/farm"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByResultCode   map[string]uint64 `json:"by_result_code"`

	DayAdvances uint64 `json:"day_advances"`
	SavesOK     uint64 `json:"saves_ok"`
	SavesFailed uint64 `json:"saves_failed"`
	SaveRetries uint64 `json:"save_retries"`
	LoadsOK     uint64 `json:"loads_ok"`
	LoadsFailed uint64 `json:"loads_failed"`
}

// Recorder satisfies both the action and the session metrics ports with
// plain counters behind one mutex.
type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	byResult map[string]uint64

	dayAdvances uint64
	savesOK     uint64
	savesFailed uint64
	saveRetries uint64
	loadsOK     uint64
	loadsFailed uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(resultCode farm.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordDayAdvance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dayAdvances++
}

func (r *Recorder) RecordSave(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.savesOK++
	} else {
		r.savesFailed++
	}
}

func (r *Recorder) RecordSaveRetry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveRetries++
}

func (r *Recorder) RecordLoad(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.loadsOK++
	} else {
		r.loadsFailed++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.conflict + r.failure,
		ByResultCode:   make(map[string]uint64, len(r.byResult)),
		DayAdvances:    r.dayAdvances,
		SavesOK:        r.savesOK,
		SavesFailed:    r.savesFailed,
		SaveRetries:    r.saveRetries,
		LoadsOK:        r.loadsOK,
		LoadsFailed:    r.loadsFailed,
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
