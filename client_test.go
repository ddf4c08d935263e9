package kvbench

import (
	"sync"
	"testing"

	"github.com/hhkbp2/testify/require"
)

// recordingDB counts backend calls and remembers every key it was handed.
// Every operation returns a fixed status.
type recordingDB struct {
	*DBBase
	status  StatusType
	lock    sync.Mutex
	inserts []string
	ops     map[OperationType]int64
}

func newRecordingDB(status StatusType) *recordingDB {
	return &recordingDB{
		DBBase: NewDBBase(),
		status: status,
		ops:    make(map[OperationType]int64),
	}
}

func (self *recordingDB) record(op OperationType) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.ops[op]++
}

func (self *recordingDB) Init() error {
	return nil
}

func (self *recordingDB) Cleanup() error {
	return nil
}

func (self *recordingDB) Read(key string) (Fields, StatusType) {
	self.record(OperationRead)
	return nil, self.status
}

func (self *recordingDB) Update(key string, values Fields) StatusType {
	self.record(OperationUpdate)
	return self.status
}

func (self *recordingDB) Insert(key string, values Fields) StatusType {
	self.lock.Lock()
	self.inserts = append(self.inserts, key)
	self.ops[OperationInsert]++
	self.lock.Unlock()
	return self.status
}

func (self *recordingDB) Delete(key string) StatusType {
	return self.status
}

func (self *recordingDB) Scan(startKey string, recordCount int64) ([]Fields, StatusType) {
	self.record(OperationScan)
	return nil, self.status
}

func (self *recordingDB) ReadModifyWrite(key string, values Fields) StatusType {
	self.record(OperationReadModifyWrite)
	return self.status
}

func loadTestProperties(recordCount, threadCount string) Properties {
	props := NewProperties()
	props.Add(PropertyRecordCount, recordCount)
	props.Add(PropertyThreadCount, threadCount)
	props.Add(PropertyFieldCount, "2")
	props.Add(PropertyFieldLength, "4")
	props.Add(PropertyLogLevel, "quiet")
	return props
}

func TestRunLoadPhaseKeys(t *testing.T) {
	props := loadTestProperties("100", "1")
	workload := NewCoreWorkload()
	require.Nil(t, workload.Init(props))
	db := newRecordingDB(StatusOK)
	ms, elapsed, err := RunLoadPhase(workload, db, 1, props)
	require.Nil(t, err)
	require.True(t, elapsed > 0)
	require.Equal(t, int64(100), ms.TotalCount())
	require.Equal(t, 100, len(db.inserts))
	seen := make(map[string]bool)
	for _, key := range db.inserts {
		seen[key] = true
	}
	for i := int64(0); i < 100; i++ {
		require.True(t, seen[BuildKeyName(i)], "missing %s", BuildKeyName(i))
	}
	m := ms.GetOpMeasurement(OperationInsert)
	require.Equal(t, int64(100), m.GetStatusCounts()[StatusOK])
}

func TestRunLoadPhaseMultiThreaded(t *testing.T) {
	props := loadTestProperties("500", "8")
	workload := NewCoreWorkload()
	require.Nil(t, workload.Init(props))
	db := newRecordingDB(StatusOK)
	ms, _, err := RunLoadPhase(workload, db, 8, props)
	require.Nil(t, err)
	require.Equal(t, int64(500), ms.TotalCount())
	// Exactly user0..user499, no duplicates, regardless of thread count.
	require.Equal(t, 500, len(db.inserts))
	seen := make(map[string]bool)
	for _, key := range db.inserts {
		require.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
	require.Equal(t, 500, len(seen))
}

func TestRunLoadPhaseRecordsFailures(t *testing.T) {
	// A failing backend still gets every insert attempted and measured.
	SetLogLevel("quiet")
	defer SetLogLevel("info")
	props := loadTestProperties("50", "1")
	workload := NewCoreWorkload()
	require.Nil(t, workload.Init(props))
	db := newRecordingDB(StatusError)
	ms, _, err := RunLoadPhase(workload, db, 1, props)
	require.Nil(t, err)
	require.Equal(t, int64(50), ms.TotalCount())
	m := ms.GetOpMeasurement(OperationInsert)
	require.Equal(t, int64(50), m.GetCount())
	require.Equal(t, int64(50), m.GetStatusCounts()[StatusError])
}

func TestRunTransactionPhaseAllReads(t *testing.T) {
	props := loadTestProperties("100", "1")
	props.Add(PropertyOperationCount, "50")
	props.Add(PropertyReadProportion, "1.0")
	props.Add(PropertyUpdateProportion, "0")
	workload := NewCoreWorkload()
	require.Nil(t, workload.Init(props))
	db := newRecordingDB(StatusOK)
	ms, _, err := RunTransactionPhase(workload, db, 1, props)
	require.Nil(t, err)
	require.Equal(t, int64(50), ms.TotalCount())
	require.Equal(t, int64(50), db.ops[OperationRead])
	require.Equal(t, int64(50), ms.GetOpMeasurement(OperationRead).GetCount())
	require.Nil(t, ms.GetOpMeasurement(OperationUpdate))
}

func TestRunTransactionPhaseMix(t *testing.T) {
	props := loadTestProperties("100", "4")
	props.Add(PropertyOperationCount, "400")
	props.Add(PropertyReadProportion, "0.4")
	props.Add(PropertyUpdateProportion, "0.2")
	props.Add(PropertyInsertProportion, "0.1")
	props.Add(PropertyScanProportion, "0.1")
	props.Add(PropertyReadModifyWriteProportion, "0.2")
	props.Add(PropertySeed, "11")
	workload := NewCoreWorkload()
	require.Nil(t, workload.Init(props))
	db := newRecordingDB(StatusOK)
	ms, _, err := RunTransactionPhase(workload, db, 4, props)
	require.Nil(t, err)
	require.Equal(t, int64(400), ms.TotalCount())
	var opTotal int64
	for _, count := range db.ops {
		opTotal += count
	}
	require.Equal(t, int64(400), opTotal)
	// Transactional inserts continue the key sequence past the loaded
	// records and never collide.
	seen := make(map[string]bool)
	for _, key := range db.inserts {
		require.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestSetupUnknownDB(t *testing.T) {
	props := loadTestProperties("10", "1")
	props.Add(PropertyDB, "no-such-adapter")
	_, _, _, err := setup(props)
	require.NotNil(t, err)
}

func TestSetupBasicDB(t *testing.T) {
	props := loadTestProperties("10", "2")
	props.Add(PropertyDB, "basic")
	workload, db, threads, err := setup(props)
	require.Nil(t, err)
	require.Equal(t, int64(10), workload.RecordCount())
	require.Equal(t, int64(2), threads)
	_, ok := db.(*BasicDB)
	require.True(t, ok)
}
