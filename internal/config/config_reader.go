package config

import (
	"bytes"
	"io"
	"os"
)

func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	var defaultConfigYaml = `logging:
  level: "info"
  output: "cooptask.log"
runtime:
  poll_interval: 1ms
workload:
  bcrypt_cost: 10
  max_payload: "4KB"
  compression: "zstd"
`

	var bb bytes.Buffer
	if _, err = bb.WriteString(defaultConfigYaml); err != nil {
		return nil, err
	}

	return io.NopCloser(&bb), nil
}
