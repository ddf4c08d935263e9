package kvbench

import (
	"fmt"

	g "github.com/kvbench/kvbench/generator"
)

type OperationType string

const (
	OperationRead            OperationType = "READ"
	OperationUpdate          OperationType = "UPDATE"
	OperationInsert          OperationType = "INSERT"
	OperationScan            OperationType = "SCAN"
	OperationReadModifyWrite OperationType = "READ_MODIFY_WRITE"
)

// OperationTypes lists every operation kind in the order proportions are
// tested by the sampler and buckets appear in the report.
var OperationTypes = []OperationType{
	OperationRead,
	OperationUpdate,
	OperationInsert,
	OperationScan,
	OperationReadModifyWrite,
}

// CoreWorkload is the benchmark scenario: simple CRUD operations against
// a key-value backend, with the relative proportion of the operation
// kinds and the record shape controlled by properties.
//
// After Init the workload is immutable except for the insert key
// sequence, an atomic counter continuing past recordcount, so one
// instance can feed any number of client routines.
//
// Properties to control the workload:
//
//	recordcount: records inserted by the load phase (default: 1000)
//	operationcount: operations performed by the run phase (default: 1000)
//	fieldcount: the number of fields in a record (default: 10)
//	fieldlength: the size of each field value (default: 100)
//	readproportion: what proportion of operations should be reads
//	                (default: 0.5)
//	updateproportion: what proportion should be updates (default: 0.5)
//	insertproportion: what proportion should be inserts (default: 0)
//	scanproportion: what proportion should be scans (default: 0)
//	readmodifywriteproportion: what proportion should read a record,
//	                modify it and write it back (default: 0)
//	maxscanlength: the most records a scan asks for (default: 100)
//	scanlengthdistribution: how scan lengths are chosen, "constant"
//	                (always maxscanlength, the default) or "uniform"
//	                (drawn from [1, maxscanlength])
//	workload.seed: seed for the random source, 0 = from the clock
//
// Proportions are not required to sum to 1: any excess draw mass falls
// through to READ. That fall-through is part of the operation-mix
// contract and must not be normalized away.
type CoreWorkload struct {
	recordCount       int64
	operationCount    int64
	fieldCount        int64
	fieldNames        []string
	fieldLength       int64
	maxScanLength     int64
	random            *g.Random
	operationChooser  *g.DiscreteGenerator
	keyChooser        g.IntegerGenerator
	scanLengthChooser g.IntegerGenerator
	insertKeySequence *g.CounterGenerator
}

func NewCoreWorkload() *CoreWorkload {
	return &CoreWorkload{}
}

func (self *CoreWorkload) Init(p Properties) error {
	recordCount, err := p.GetInt64(PropertyRecordCount, PropertyRecordCountDefault)
	if err != nil {
		return err
	}
	if recordCount <= 0 {
		return g.NewErrorf("invalid %s: %d", PropertyRecordCount, recordCount)
	}
	operationCount, err := p.GetInt64(PropertyOperationCount, PropertyOperationCountDefault)
	if err != nil {
		return err
	}
	fieldCount, err := p.GetInt64(PropertyFieldCount, PropertyFieldCountDefault)
	if err != nil {
		return err
	}
	fieldNames := make([]string, 0, fieldCount)
	for i := int64(0); i < fieldCount; i++ {
		fieldNames = append(fieldNames, FieldName(i))
	}
	fieldLength, err := p.GetInt64(PropertyFieldLength, PropertyFieldLengthDefault)
	if err != nil {
		return err
	}
	readProportion, err := p.GetFloat64(PropertyReadProportion, PropertyReadProportionDefault)
	if err != nil {
		return err
	}
	updateProportion, err := p.GetFloat64(PropertyUpdateProportion, PropertyUpdateProportionDefault)
	if err != nil {
		return err
	}
	insertProportion, err := p.GetFloat64(PropertyInsertProportion, PropertyInsertProportionDefault)
	if err != nil {
		return err
	}
	scanProportion, err := p.GetFloat64(PropertyScanProportion, PropertyScanProportionDefault)
	if err != nil {
		return err
	}
	readModifyWriteProportion, err := p.GetFloat64(PropertyReadModifyWriteProportion, PropertyReadModifyWriteProportionDefault)
	if err != nil {
		return err
	}
	maxScanLength, err := p.GetInt64(PropertyMaxScanLength, PropertyMaxScanLengthDefault)
	if err != nil {
		return err
	}
	scanLengthDistribution := p.GetDefault(
		PropertyScanLengthDistribution, PropertyScanLengthDistributionDefault)
	seed, err := p.GetInt64(PropertySeed, PropertySeedDefault)
	if err != nil {
		return err
	}

	random := g.NewRandom(seed)

	var scanLengthChooser g.IntegerGenerator
	switch scanLengthDistribution {
	case "constant":
		scanLengthChooser = g.NewConstantIntegerGenerator(maxScanLength)
	case "uniform":
		scanLengthChooser = g.NewUniformIntegerGenerator(1, maxScanLength, random)
	default:
		return g.NewErrorf("invalid %s: %s",
			PropertyScanLengthDistribution, scanLengthDistribution)
	}

	// Proportions are tested in this fixed order regardless of how the
	// property file orders them. READ goes first so it is also the
	// fall-through target for draws beyond the cumulative sum.
	operationChooser := g.NewDiscreteGenerator(random)
	operationChooser.AddValue(readProportion, string(OperationRead))
	operationChooser.AddValue(updateProportion, string(OperationUpdate))
	operationChooser.AddValue(insertProportion, string(OperationInsert))
	operationChooser.AddValue(scanProportion, string(OperationScan))
	operationChooser.AddValue(readModifyWriteProportion, string(OperationReadModifyWrite))

	self.recordCount = recordCount
	self.operationCount = operationCount
	self.fieldCount = fieldCount
	self.fieldNames = fieldNames
	self.fieldLength = fieldLength
	self.maxScanLength = maxScanLength
	self.random = random
	self.operationChooser = operationChooser
	self.keyChooser = g.NewUniformIntegerGenerator(0, recordCount-1, random)
	self.scanLengthChooser = scanLengthChooser
	self.insertKeySequence = g.NewCounterGenerator(recordCount)
	return nil
}

func (self *CoreWorkload) RecordCount() int64 {
	return self.recordCount
}

func (self *CoreWorkload) OperationCount() int64 {
	return self.operationCount
}

func (self *CoreWorkload) FieldCount() int64 {
	return self.fieldCount
}

func (self *CoreWorkload) MaxScanLength() int64 {
	return self.maxScanLength
}

// NextOperation draws the kind of the next run-phase operation.
func (self *CoreWorkload) NextOperation() OperationType {
	return OperationType(self.operationChooser.NextString())
}

// BuildKeyName formats a key number into the key namespace.
func BuildKeyName(keyNumber int64) string {
	return fmt.Sprintf("user%d", keyNumber)
}

func FieldName(index int64) string {
	return fmt.Sprintf("field%d", index)
}

// NextKeyForTransaction chooses a key uniformly over the initially loaded
// key space. Used by READ, UPDATE, SCAN and READ_MODIFY_WRITE.
func (self *CoreWorkload) NextKeyForTransaction() string {
	return BuildKeyName(self.keyChooser.NextInt())
}

// NextScanLength draws how many records the next SCAN asks for.
func (self *CoreWorkload) NextScanLength() int64 {
	return self.scanLengthChooser.NextInt()
}

// NextKeyForInsert continues the key sequence past the loaded records.
// The underlying counter is atomic, so inserted keys stay unique at any
// thread count.
func (self *CoreWorkload) NextKeyForInsert() string {
	return BuildKeyName(self.insertKeySequence.NextInt())
}

// RandomValue produces one field value: fieldlength characters drawn
// uniformly from [0-9A-Za-z].
func (self *CoreWorkload) RandomValue() string {
	return self.random.NextAlphanumericString(self.fieldLength)
}

// BuildValues synthesizes a full record's worth of random fields.
func (self *CoreWorkload) BuildValues() Fields {
	values := make(Fields, len(self.fieldNames))
	for _, name := range self.fieldNames {
		values[name] = self.RandomValue()
	}
	return values
}
