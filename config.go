package kvbench

const (
	// Client
	// The number of records to load into the database initially.
	PropertyRecordCount        = "recordcount"
	PropertyRecordCountDefault = "1000"
	// The target number of operations to perform during the run phase.
	PropertyOperationCount        = "operationcount"
	PropertyOperationCountDefault = "1000"
	// The database adapter to be used.
	PropertyDB        = "db"
	PropertyDBDefault = "pebble"
	// The path of the backing store for embedded adapters.
	PropertyDBPath        = "db.path"
	PropertyDBPathDefault = "/tmp/kvbench"
	// The number of client routines to run.
	PropertyThreadCount        = "threadcount"
	PropertyThreadCountDefault = "1"
	// How many completed operations between progress lines on stderr.
	PropertyStatusInterval        = "status.interval"
	PropertyStatusIntervalDefault = "1000"
	// The log verbosity: quiet, error, warn, info, debug or verbose.
	PropertyLogLevel        = "loglevel"
	PropertyLogLevelDefault = "info"

	// Workload
	// The name of the database table to run queries against. Only adapters
	// with a table concept (mysql) consume it.
	PropertyTableName        = "table"
	PropertyTableNameDefault = "usertable"
	// The number of fields in a record.
	PropertyFieldCount        = "fieldcount"
	PropertyFieldCountDefault = "10"
	// The length of a field value in characters.
	PropertyFieldLength        = "fieldlength"
	PropertyFieldLengthDefault = "100"
	// The proportion of run-phase operations that are reads.
	PropertyReadProportion        = "readproportion"
	PropertyReadProportionDefault = "0.5"
	// The proportion of run-phase operations that are updates.
	PropertyUpdateProportion        = "updateproportion"
	PropertyUpdateProportionDefault = "0.5"
	// The proportion of run-phase operations that are inserts.
	PropertyInsertProportion        = "insertproportion"
	PropertyInsertProportionDefault = "0.0"
	// The proportion of run-phase operations that are scans.
	PropertyScanProportion        = "scanproportion"
	PropertyScanProportionDefault = "0.0"
	// The proportion of run-phase operations that are read-modify-writes.
	PropertyReadModifyWriteProportion        = "readmodifywriteproportion"
	PropertyReadModifyWriteProportionDefault = "0.0"
	// The number of records a scan asks the backend for.
	PropertyMaxScanLength        = "maxscanlength"
	PropertyMaxScanLengthDefault = "100"
	// How scan lengths are chosen: "constant" always asks for
	// maxscanlength records, "uniform" draws from [1, maxscanlength].
	PropertyScanLengthDistribution        = "scanlengthdistribution"
	PropertyScanLengthDistributionDefault = "constant"
	// Seed for the workload's random source. 0 seeds from the clock;
	// anything else makes key and value choices reproducible.
	PropertySeed        = "workload.seed"
	PropertySeedDefault = "0"

	// Measurement
	// How latencies are collected: "raw" keeps every sample and computes
	// exact percentiles, "hdrhistogram" trades exactness for O(1) memory.
	PropertyMeasurementType        = "measurementtype"
	PropertyMeasurementTypeDefault = "raw"
	// Which percentiles besides P50 to include in the report.
	PropertyPercentiles        = "percentiles"
	PropertyPercentilesDefault = "95,99"
	// The exporter used for the final report: "text" or "json". With no
	// exportfile set, a non-text exporter replaces the human-readable
	// stdout report with its machine output; with an exportfile the
	// stdout report is printed and the exporter writes to the file.
	PropertyExporter        = "exporter"
	PropertyExporterDefault = "text"
	// If set to the path of a file, the exporter additionally writes
	// the measurements there.
	PropertyExportFile        = "exportfile"
	PropertyExportFileDefault = ""

	// BasicDB
	ConfigBasicDBVerbose        = "basicdb.verbose"
	ConfigBasicDBVerboseDefault = "false"
	ConfigSimulateDelay         = "basicdb.simulatedelay"
	ConfigSimulateDelayDefault  = "0"
	ConfigRandomizeDelay        = "basicdb.randomizedelay"
	ConfigRandomizeDelayDefault = "true"
)
