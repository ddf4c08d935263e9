package kvbench

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Properties is the flat key=value configuration shared by the workload,
// the client and the database adapters.
type Properties map[string]string

func NewProperties() Properties {
	return make(Properties)
}

func (self Properties) Get(key string) string {
	v, _ := self[key]
	return v
}

func (self Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := self[key]; ok {
		return v
	}
	return defaultValue
}

func (self Properties) Add(key, value string) {
	self[key] = value
}

func (self Properties) Merge(other Properties) {
	for k, v := range other {
		self[k] = v
	}
}

func (self Properties) GetInt64(key string, defaultValue string) (int64, error) {
	return strconv.ParseInt(self.GetDefault(key, defaultValue), 0, 64)
}

func (self Properties) GetFloat64(key string, defaultValue string) (float64, error) {
	return strconv.ParseFloat(self.GetDefault(key, defaultValue), 64)
}

// LoadProperties reads a property file: one key=value per line, blank
// lines and lines starting with '#' ignored. Any key is accepted; keys
// nothing reads are retained but have no effect.
func LoadProperties(path string) (Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	props := NewProperties()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		index := strings.Index(line, "=")
		if index < 0 {
			continue
		}
		props[line[:index]] = line[index+1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return props, nil
}
