package kvbench

import (
	"bytes"
	"sort"
	"strings"
)

// SerializeFields encodes a record as the concatenation of
// "<field>=<value>;" pairs in field-name order. The delimiters are not
// escaped: a '=' or ';' inside a value corrupts the encoding. Generated
// workload values are alphanumeric so the benchmark never produces such a
// byte, and the format is kept for parity with existing result sets.
func SerializeFields(fields Fields) []byte {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteString("=")
		buf.WriteString(fields[name])
		buf.WriteString(";")
	}
	return buf.Bytes()
}

// DeserializeFields decodes data produced by SerializeFields: split on
// ';', then on the first '='. Malformed segments are dropped.
func DeserializeFields(data []byte) Fields {
	fields := make(Fields)
	for _, segment := range strings.Split(string(data), ";") {
		if len(segment) == 0 {
			continue
		}
		index := strings.Index(segment, "=")
		if index < 0 {
			continue
		}
		fields[segment[:index]] = segment[index+1:]
	}
	return fields
}
