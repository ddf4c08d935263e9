package kvbench

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	g "github.com/kvbench/kvbench/generator"
)

// Client is one top-level command of the benchmark binary.
type Client interface {
	Main()
}

// runPhase drives total operations across the configured number of
// worker routines. Work items are handed out through a shared atomic
// counter, so the partition is exact at any thread count. Each worker
// owns a private Measurements instance; the merge of all of them is
// returned together with the phase's wall-clock duration.
func runPhase(props Properties, phase string, total, threads int64, doOne func(seq int64, ms *Measurements)) (*Measurements, time.Duration, error) {
	if threads <= 0 {
		threads = 1
	}
	statusInterval, err := props.GetInt64(PropertyStatusInterval, PropertyStatusIntervalDefault)
	if err != nil {
		return nil, 0, err
	}
	if statusInterval <= 0 {
		statusInterval = 1000
	}
	merged, err := NewMeasurements(props)
	if err != nil {
		return nil, 0, err
	}
	workerMeasurements := make([]*Measurements, threads)
	for i := range workerMeasurements {
		ms, err := NewMeasurements(props)
		if err != nil {
			return nil, 0, err
		}
		workerMeasurements[i] = ms
	}

	sequence := g.NewCounterGenerator(0)
	var completed int64
	var wg sync.WaitGroup
	start := time.Now()
	for t := int64(0); t < threads; t++ {
		wg.Add(1)
		go func(ms *Measurements) {
			defer wg.Done()
			for {
				seq := sequence.NextInt()
				if seq >= total {
					return
				}
				doOne(seq, ms)
				if done := atomic.AddInt64(&completed, 1); done%statusInterval == 0 {
					StatusPrintf("%s: %d/%d operations completed", phase, done, total)
				}
			}
		}(workerMeasurements[t])
	}
	wg.Wait()
	elapsed := time.Since(start)

	for _, ms := range workerMeasurements {
		if err := merged.Merge(ms); err != nil {
			return nil, 0, err
		}
	}
	return merged, elapsed, nil
}

// RunLoadPhase populates the backend: recordcount inserts with keys
// exactly user0 .. user{recordcount-1}, every attempt timed into the
// INSERT bucket. A non-OK status is logged and the loop continues, so
// isolated backend errors never shorten the measured window.
func RunLoadPhase(workload *CoreWorkload, db DB, threads int64, props Properties) (*Measurements, time.Duration, error) {
	return runPhase(props, "load", workload.RecordCount(), threads,
		func(seq int64, ms *Measurements) {
			key := BuildKeyName(seq)
			values := workload.BuildValues()
			start := time.Now()
			status := db.Insert(key, values)
			latency := time.Since(start).Microseconds()
			ms.Measure(OperationInsert, latency)
			ms.ReportStatus(OperationInsert, status)
			if status != StatusOK {
				Errorf("INSERT failed for key %s: %s", key, status)
			}
		})
}

// RunTransactionPhase performs operationcount operations, each drawn
// from the workload's operation mix. Key and value synthesis happen
// outside the timed window; the latency of the backend call itself is
// recorded into the sampled kind's bucket whatever the returned status.
func RunTransactionPhase(workload *CoreWorkload, db DB, threads int64, props Properties) (*Measurements, time.Duration, error) {
	return runPhase(props, "run", workload.OperationCount(), threads,
		func(seq int64, ms *Measurements) {
			op := workload.NextOperation()
			var key string
			var status StatusType
			var start time.Time
			switch op {
			case OperationRead:
				key = workload.NextKeyForTransaction()
				start = time.Now()
				_, status = db.Read(key)
			case OperationUpdate:
				key = workload.NextKeyForTransaction()
				values := workload.BuildValues()
				start = time.Now()
				status = db.Update(key, values)
			case OperationInsert:
				key = workload.NextKeyForInsert()
				values := workload.BuildValues()
				start = time.Now()
				status = db.Insert(key, values)
			case OperationScan:
				key = workload.NextKeyForTransaction()
				scanLength := workload.NextScanLength()
				start = time.Now()
				_, status = db.Scan(key, scanLength)
			default:
				key = workload.NextKeyForTransaction()
				values := workload.BuildValues()
				start = time.Now()
				status = db.ReadModifyWrite(key, values)
			}
			latency := time.Since(start).Microseconds()
			ms.Measure(op, latency)
			ms.ReportStatus(op, status)
			if status != StatusOK {
				Errorf("%s failed for key %s: %s", op, key, status)
			}
		})
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// report writes the phase results. The human-readable report goes to
// stdout; when an export file is configured the chosen exporter
// additionally writes there, and a non-text exporter without an export
// file replaces the stdout report with machine output.
func report(props Properties, ms *Measurements, elapsed time.Duration) error {
	exporterName := props.GetDefault(PropertyExporter, PropertyExporterDefault)
	exportFile := props.GetDefault(PropertyExportFile, PropertyExportFileDefault)
	if len(exportFile) == 0 {
		if exporterName == "text" {
			ms.WriteReport(os.Stdout, elapsed)
			return nil
		}
		exporter, err := NewMeasurementExporter(exporterName, nopWriteCloser{os.Stdout})
		if err != nil {
			return err
		}
		if err := ms.ExportMeasurements(exporter, elapsed); err != nil {
			exporter.Close()
			return err
		}
		return exporter.Close()
	}
	ms.WriteReport(os.Stdout, elapsed)
	f, err := os.Create(exportFile)
	if err != nil {
		return err
	}
	exporter, err := NewMeasurementExporter(exporterName, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := ms.ExportMeasurements(exporter, elapsed); err != nil {
		exporter.Close()
		return err
	}
	return exporter.Close()
}

// setup builds the workload and adapter shared by Loader and Runner.
func setup(props Properties) (*CoreWorkload, DB, int64, error) {
	SetLogLevel(props.GetDefault(PropertyLogLevel, PropertyLogLevelDefault))
	workload := NewCoreWorkload()
	if err := workload.Init(props); err != nil {
		return nil, nil, 0, err
	}
	threads, err := props.GetInt64(PropertyThreadCount, PropertyThreadCountDefault)
	if err != nil {
		return nil, nil, 0, err
	}
	db, err := NewDB(props.GetDefault(PropertyDB, PropertyDBDefault), props)
	if err != nil {
		return nil, nil, 0, err
	}
	return workload, db, threads, nil
}

// Loader executes the load phase.
type Loader struct {
	args *Arguments
}

func NewLoader(args *Arguments) *Loader {
	return &Loader{
		args: args,
	}
}

func (self *Loader) Main() {
	props := self.args.Properties
	workload, db, threads, err := setup(props)
	if err != nil {
		ExitOnError("%s", err)
	}
	if err = db.Init(); err != nil {
		ExitOnError("fail to init database: %s", err)
	}
	Printf("Inserting %d records...", workload.RecordCount())
	ms, elapsed, err := RunLoadPhase(workload, db, threads, props)
	if cerr := db.Cleanup(); cerr != nil {
		Errorf("fail to cleanup database: %s", cerr)
	}
	if err != nil {
		ExitOnError("load phase failed: %s", err)
	}
	Printf("Load phase completed")
	if err = report(props, ms, elapsed); err != nil {
		ExitOnError("fail to write report: %s", err)
	}
}

// Runner executes the transaction phase.
type Runner struct {
	args *Arguments
}

func NewRunner(args *Arguments) *Runner {
	return &Runner{
		args: args,
	}
}

func (self *Runner) Main() {
	props := self.args.Properties
	workload, db, threads, err := setup(props)
	if err != nil {
		ExitOnError("%s", err)
	}
	if err = db.Init(); err != nil {
		ExitOnError("fail to init database: %s", err)
	}
	Printf("Running %d operations...", workload.OperationCount())
	ms, elapsed, err := RunTransactionPhase(workload, db, threads, props)
	if cerr := db.Cleanup(); cerr != nil {
		Errorf("fail to cleanup database: %s", cerr)
	}
	if err != nil {
		ExitOnError("run phase failed: %s", err)
	}
	Printf("Run phase completed")
	if err = report(props, ms, elapsed); err != nil {
		ExitOnError("fail to write report: %s", err)
	}
}
