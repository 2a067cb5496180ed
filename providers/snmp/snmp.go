package snmp

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Host-resources OIDs; MikroTik exposes CPU load and RAM through the standard
// HOST-RESOURCES-MIB (storage index 65536 is main memory).
const (
	oidCPULoad      = ".1.3.6.1.2.1.25.3.3.1.2.1"
	oidMemTotalSize = ".1.3.6.1.2.1.25.2.3.1.5.65536"
	oidMemUsedSize  = ".1.3.6.1.2.1.25.2.3.1.6.65536"
)

type Config struct {
	Target         string
	Port           uint16
	Version        string
	Community      string
	TimeoutSeconds int
	Retries        int
}

type RouterHealth struct {
	CPUUsage float64 `json:"cpu_usage"`
	MemUsage float64 `json:"mem_usage"`
}

// GetRouterHealth polls the hotspot router for CPU and memory utilisation.
func GetRouterHealth(cfg Config) (*RouterHealth, error) {
	g, err := prepareConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("snmp connect: %w", err)
	}
	defer g.Conn.Close()

	result, err := g.Get([]string{oidCPULoad, oidMemTotalSize, oidMemUsedSize})
	if err != nil {
		return nil, fmt.Errorf("snmp get: %w", err)
	}

	var cpu, memTotal, memUsed float64
	for _, variable := range result.Variables {
		value := toFloat(variable.Value)
		switch variable.Name {
		case oidCPULoad:
			cpu = value
		case oidMemTotalSize:
			memTotal = value
		case oidMemUsedSize:
			memUsed = value
		}
	}

	health := &RouterHealth{CPUUsage: cpu}
	if memTotal > 0 {
		health.MemUsage = (memUsed / memTotal) * 100
	}
	return health, nil
}

func prepareConnection(cfg Config) (*gosnmp.GoSNMP, error) {
	version := gosnmp.Version2c
	if cfg.Version == "v1" {
		version = gosnmp.Version1
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	g := &gosnmp.GoSNMP{
		Target:    cfg.Target,
		Port:      cfg.Port,
		Version:   version,
		Community: cfg.Community,
		Timeout:   time.Duration(timeout) * time.Second,
		Retries:   cfg.Retries,
		MaxOids:   gosnmp.MaxOids,
	}

	if err := g.Connect(); err != nil {
		return nil, err
	}
	return g, nil
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case int:
		return float64(value)
	case uint:
		return float64(value)
	case uint64:
		return float64(value)
	case int64:
		return float64(value)
	}
	return 0
}
