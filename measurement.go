package kvbench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	g "github.com/kvbench/kvbench/generator"
)

// Latencies are measured and reported in microseconds. The hdr variant
// needs a fixed trackable range; an hour per operation is beyond any
// realistic backend call.
const maxTrackableLatencyUS = int64(time.Hour / time.Microsecond)

// OneMeasurement collects the latency samples of a single operation kind,
// such as READ. Implementations also count the backend status codes seen
// for that kind.
type OneMeasurement interface {
	// Measure records one latency sample, in microseconds, regardless of
	// how the operation ended.
	Measure(latency int64)
	GetName() string
	GetCount() int64
	GetAverage() float64
	GetMin() int64
	GetMax() int64
	// GetPercentile returns the latency below which fraction p of the
	// samples fall, p in [0, 1].
	GetPercentile(p float64) float64
	// ReportStatus counts a backend return code.
	ReportStatus(status StatusType)
	GetStatusCounts() map[StatusType]int64
	// Merge folds another worker's measurement of the same kind into
	// this one.
	Merge(other OneMeasurement) error
}

type OneMeasurementBase struct {
	name        string
	returnCodes map[StatusType]int64
	lock        sync.Mutex
}

func NewOneMeasurementBase(name string) *OneMeasurementBase {
	return &OneMeasurementBase{
		name:        name,
		returnCodes: make(map[StatusType]int64),
	}
}

func (self *OneMeasurementBase) GetName() string {
	return self.name
}

func (self *OneMeasurementBase) ReportStatus(status StatusType) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.returnCodes[status]++
}

func (self *OneMeasurementBase) GetStatusCounts() map[StatusType]int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	counts := make(map[StatusType]int64, len(self.returnCodes))
	for status, count := range self.returnCodes {
		counts[status] = count
	}
	return counts
}

func (self *OneMeasurementBase) mergeStatusCounts(other OneMeasurement) {
	for status, count := range other.GetStatusCounts() {
		self.lock.Lock()
		self.returnCodes[status] += count
		self.lock.Unlock()
	}
}

// OneMeasurementRaw keeps every latency sample. Exact but O(n) memory,
// and every percentile query sorts a fresh copy, so percentiles are for
// report time, not for the hot path.
type OneMeasurementRaw struct {
	*OneMeasurementBase
	count        int64
	totalLatency int64
	min          int64
	max          int64
	samples      []int64
}

func NewOneMeasurementRaw(name string) *OneMeasurementRaw {
	return &OneMeasurementRaw{
		OneMeasurementBase: NewOneMeasurementBase(name),
		min:                -1,
		max:                -1,
	}
}

func (self *OneMeasurementRaw) Measure(latency int64) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.count++
	self.totalLatency += latency
	if (self.min < 0) || (latency < self.min) {
		self.min = latency
	}
	if latency > self.max {
		self.max = latency
	}
	self.samples = append(self.samples, latency)
}

func (self *OneMeasurementRaw) GetCount() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.count
}

func (self *OneMeasurementRaw) GetAverage() float64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.count == 0 {
		return 0
	}
	return float64(self.totalLatency) / float64(self.count)
}

func (self *OneMeasurementRaw) GetMin() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.min < 0 {
		return 0
	}
	return self.min
}

func (self *OneMeasurementRaw) GetMax() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.max < 0 {
		return 0
	}
	return self.max
}

func (self *OneMeasurementRaw) GetPercentile(p float64) float64 {
	self.lock.Lock()
	sorted := make([]int64, len(self.samples))
	copy(sorted, self.samples)
	self.lock.Unlock()
	if len(sorted) == 0 {
		return 0
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return float64(sorted[index])
}

func (self *OneMeasurementRaw) Merge(other OneMeasurement) error {
	raw, ok := other.(*OneMeasurementRaw)
	if !ok {
		return g.NewErrorf("cannot merge %T into raw measurement", other)
	}
	raw.lock.Lock()
	count := raw.count
	totalLatency := raw.totalLatency
	min := raw.min
	max := raw.max
	samples := raw.samples
	raw.lock.Unlock()

	self.lock.Lock()
	self.count += count
	self.totalLatency += totalLatency
	if min >= 0 && (self.min < 0 || min < self.min) {
		self.min = min
	}
	if max > self.max {
		self.max = max
	}
	self.samples = append(self.samples, samples...)
	self.lock.Unlock()
	self.mergeStatusCounts(other)
	return nil
}

// OneMeasurementHdr keeps a fixed-size histogram instead of raw samples.
// Percentiles become approximate but memory stays constant and worker
// fan-in is a histogram merge.
type OneMeasurementHdr struct {
	*OneMeasurementBase
	histogram *hdrhistogram.Histogram
}

func NewOneMeasurementHdr(name string) *OneMeasurementHdr {
	return &OneMeasurementHdr{
		OneMeasurementBase: NewOneMeasurementBase(name),
		histogram:          hdrhistogram.New(1, maxTrackableLatencyUS, 3),
	}
}

func (self *OneMeasurementHdr) Measure(latency int64) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.histogram.RecordValue(latency)
}

func (self *OneMeasurementHdr) GetCount() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.histogram.TotalCount()
}

func (self *OneMeasurementHdr) GetAverage() float64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.histogram.TotalCount() == 0 {
		return 0
	}
	return self.histogram.Mean()
}

func (self *OneMeasurementHdr) GetMin() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.histogram.TotalCount() == 0 {
		return 0
	}
	return self.histogram.Min()
}

func (self *OneMeasurementHdr) GetMax() int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.histogram.TotalCount() == 0 {
		return 0
	}
	return self.histogram.Max()
}

func (self *OneMeasurementHdr) GetPercentile(p float64) float64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.histogram.TotalCount() == 0 {
		return 0
	}
	return float64(self.histogram.ValueAtQuantile(p * 100.0))
}

func (self *OneMeasurementHdr) Merge(other OneMeasurement) error {
	hdr, ok := other.(*OneMeasurementHdr)
	if !ok {
		return g.NewErrorf("cannot merge %T into hdr measurement", other)
	}
	self.lock.Lock()
	self.histogram.Merge(hdr.histogram)
	self.lock.Unlock()
	self.mergeStatusCounts(other)
	return nil
}

// Measurements groups one OneMeasurement per operation kind. Each worker
// routine owns a private instance; the Merge of all workers yields the
// run totals.
type Measurements struct {
	measurementType string
	percentiles     []float64
	data            map[OperationType]OneMeasurement
	lock            sync.RWMutex
}

func NewMeasurements(props Properties) (*Measurements, error) {
	measurementType := props.GetDefault(PropertyMeasurementType, PropertyMeasurementTypeDefault)
	switch measurementType {
	case "raw", "hdrhistogram":
	default:
		return nil, g.NewErrorf("unknown %s: %s", PropertyMeasurementType, measurementType)
	}
	prop := props.GetDefault(PropertyPercentiles, PropertyPercentilesDefault)
	percentiles, err := parsePercentiles(prop)
	if err != nil {
		return nil, err
	}
	return &Measurements{
		measurementType: measurementType,
		percentiles:     percentiles,
		data:            make(map[OperationType]OneMeasurement),
	}, nil
}

// parsePercentiles reads a comma-separated percentile list like "95,99"
// or "95,99,99.9". Values are kept as percents.
func parsePercentiles(prop string) ([]float64, error) {
	parts := strings.Split(prop, ",")
	ret := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		if v <= 0 || v >= 100 {
			return nil, g.NewErrorf("percentile out of range (0, 100): %g", v)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func (self *Measurements) constructOneMeasurement(op OperationType) OneMeasurement {
	switch self.measurementType {
	case "hdrhistogram":
		return NewOneMeasurementHdr(string(op))
	default:
		return NewOneMeasurementRaw(string(op))
	}
}

func (self *Measurements) getOpMeasurement(op OperationType) OneMeasurement {
	self.lock.RLock()
	m, ok := self.data[op]
	self.lock.RUnlock()
	if !ok {
		self.lock.Lock()
		m, ok = self.data[op]
		if !ok {
			m = self.constructOneMeasurement(op)
			self.data[op] = m
		}
		self.lock.Unlock()
	}
	return m
}

// Measure records one latency sample for the given operation kind.
func (self *Measurements) Measure(op OperationType, latency int64) {
	self.getOpMeasurement(op).Measure(latency)
}

// ReportStatus counts a backend return code for the given kind.
func (self *Measurements) ReportStatus(op OperationType, status StatusType) {
	self.getOpMeasurement(op).ReportStatus(status)
}

// GetOpMeasurement returns the measurement for op, or nil if the kind
// never ran.
func (self *Measurements) GetOpMeasurement(op OperationType) OneMeasurement {
	self.lock.RLock()
	defer self.lock.RUnlock()
	return self.data[op]
}

// TotalCount sums the operation counts of every kind.
func (self *Measurements) TotalCount() int64 {
	self.lock.RLock()
	defer self.lock.RUnlock()
	var total int64
	for _, m := range self.data {
		total += m.GetCount()
	}
	return total
}

// Merge folds another worker's measurements into this set. Kinds the
// other set saw and this one did not are adopted wholesale.
func (self *Measurements) Merge(other *Measurements) error {
	other.lock.RLock()
	defer other.lock.RUnlock()
	for op, om := range other.data {
		self.lock.Lock()
		m, ok := self.data[op]
		if !ok {
			self.data[op] = om
			self.lock.Unlock()
			continue
		}
		self.lock.Unlock()
		if err := m.Merge(om); err != nil {
			return err
		}
	}
	return nil
}

// formatPercentile renders a percent value as its report label:
// 95 -> "95", 99.9 -> "99.9".
func formatPercentile(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// WriteReport prints the human-readable report: per operation kind with a
// non-zero count, the count, throughput over the phase wall-clock time,
// average/min/max latency and P50 plus the configured percentiles, then
// one overall throughput line.
func (self *Measurements) WriteReport(w io.Writer, elapsed time.Duration) {
	elapsedSec := elapsed.Seconds()
	for _, op := range OperationTypes {
		m := self.GetOpMeasurement(op)
		if m == nil || m.GetCount() == 0 {
			continue
		}
		name := m.GetName()
		fmt.Fprintf(w, "[%s] Operations: %d\n", name, m.GetCount())
		fmt.Fprintf(w, "[%s] Throughput: %.2f ops/sec\n", name, float64(m.GetCount())/elapsedSec)
		fmt.Fprintf(w, "[%s] Average Latency: %.2f us\n", name, m.GetAverage())
		fmt.Fprintf(w, "[%s] Min Latency: %d us\n", name, m.GetMin())
		fmt.Fprintf(w, "[%s] Max Latency: %d us\n", name, m.GetMax())
		fmt.Fprintf(w, "[%s] P50 Latency: %.2f us\n", name, m.GetPercentile(0.5))
		for _, p := range self.percentiles {
			fmt.Fprintf(w, "[%s] P%s Latency: %.2f us\n", name, formatPercentile(p), m.GetPercentile(p/100.0))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "[OVERALL] Throughput: %.2f ops/sec\n", float64(self.TotalCount())/elapsedSec)
	fmt.Fprintf(w, "Total time: %.2f seconds\n", elapsedSec)
}

// ExportMeasurements writes the same figures through an exporter, plus
// the per-kind status-code counts.
func (self *Measurements) ExportMeasurements(exporter MeasurementExporter, elapsed time.Duration) error {
	elapsedSec := elapsed.Seconds()
	for _, op := range OperationTypes {
		m := self.GetOpMeasurement(op)
		if m == nil || m.GetCount() == 0 {
			continue
		}
		name := m.GetName()
		if err := exporter.Write(name, "Operations", m.GetCount()); err != nil {
			return err
		}
		if err := exporter.Write(name, "Throughput(ops/sec)", float64(m.GetCount())/elapsedSec); err != nil {
			return err
		}
		if err := exporter.Write(name, "AverageLatency(us)", m.GetAverage()); err != nil {
			return err
		}
		if err := exporter.Write(name, "MinLatency(us)", m.GetMin()); err != nil {
			return err
		}
		if err := exporter.Write(name, "MaxLatency(us)", m.GetMax()); err != nil {
			return err
		}
		if err := exporter.Write(name, "P50Latency(us)", m.GetPercentile(0.5)); err != nil {
			return err
		}
		for _, p := range self.percentiles {
			label := fmt.Sprintf("P%sLatency(us)", formatPercentile(p))
			if err := exporter.Write(name, label, m.GetPercentile(p/100.0)); err != nil {
				return err
			}
		}
		for status, count := range m.GetStatusCounts() {
			if err := exporter.Write(name, fmt.Sprintf("Return=%s", status), count); err != nil {
				return err
			}
		}
	}
	if err := exporter.Write("OVERALL", "Throughput(ops/sec)", float64(self.TotalCount())/elapsedSec); err != nil {
		return err
	}
	return exporter.Write("OVERALL", "RunTime(s)", elapsedSec)
}

// MeasurementExporter writes the collected measurements into a useful
// format, for example human readable text or machine readable JSON.
type MeasurementExporter interface {
	// Write a measurement to the exported format. v should be int64 or
	// float64.
	Write(metric string, measurement string, v interface{}) error
	io.Closer
}

func NewMeasurementExporter(name string, w io.WriteCloser) (MeasurementExporter, error) {
	switch name {
	case "text":
		return NewTextMeasurementExporter(w), nil
	case "json":
		return NewJSONMeasurementExporter(w), nil
	default:
		return nil, g.NewErrorf("unsupported measurement exporter: %s", name)
	}
}

// TextMeasurementExporter writes one "[METRIC], measurement, value" line
// per figure.
type TextMeasurementExporter struct {
	w   io.WriteCloser
	buf *bufio.Writer
}

func NewTextMeasurementExporter(w io.WriteCloser) *TextMeasurementExporter {
	return &TextMeasurementExporter{
		w:   w,
		buf: bufio.NewWriter(w),
	}
}

func (self *TextMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	_, err := fmt.Fprintf(self.buf, "[%s], %s, %v\n", metric, measurement, v)
	return err
}

func (self *TextMeasurementExporter) Close() error {
	err := self.buf.Flush()
	err2 := self.w.Close()
	if err != nil {
		return err
	}
	return err2
}

type innerJSONMeasurement struct {
	Metric      string      `json:"metric"`
	Measurement string      `json:"measurement"`
	Value       interface{} `json:"value"`
}

// JSONMeasurementExporter writes one JSON object per line.
type JSONMeasurementExporter struct {
	w   io.WriteCloser
	buf *bufio.Writer
}

func NewJSONMeasurementExporter(w io.WriteCloser) *JSONMeasurementExporter {
	return &JSONMeasurementExporter{
		w:   w,
		buf: bufio.NewWriter(w),
	}
}

func (self *JSONMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	b, err := json.Marshal(&innerJSONMeasurement{
		Metric:      metric,
		Measurement: measurement,
		Value:       v,
	})
	if err != nil {
		return err
	}
	if _, err = self.buf.Write(b); err != nil {
		return err
	}
	return self.buf.WriteByte('\n')
}

func (self *JSONMeasurementExporter) Close() error {
	err := self.buf.Flush()
	err2 := self.w.Close()
	if err != nil {
		return err
	}
	return err2
}
