package core

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

const (
	ConfigPath      = "/.config/chrombench/"
	ConfigFilename  = "config.json"
	ConfigFilePerms = 0600
)

// ConfigEnv overrides the config file location.
const ConfigEnv = "CHROMBENCH_CONFIG"

// Fixed resource request used when a cluster entry does not override it.
// The constraint list ORs the GPU memory sizes and SKUs the scoring models
// are known to fit on.
var (
	DefaultPartitions     = []string{"akundaje", "gpu", "owners"}
	DefaultGPUConstraints = []string{
		"GPU_MEM:24GB",
		"GPU_MEM:32GB",
		"GPU_MEM:40GB",
		"GPU_MEM:80GB",
		"GPU_SKU:A100_SXM4",
		"GPU_SKU:A100_PCIE",
		"GPU_SKU:V100_SXM2",
		"GPU_SKU:V100_PCIE",
		"GPU_SKU:TITAN_V",
	}
)

const (
	DefaultTimeLimit = "24:00:00"
	DefaultMemory    = "60G"
	DefaultGPUs      = 1

	DefaultSbatch  = "sbatch"
	DefaultSqueue  = "squeue"
	DefaultScancel = "scancel"
)

// Cluster holds the submission defaults for one cluster entry.
type Cluster struct {
	Partitions  []string `json:"partitions,omitempty"`
	TimeLimit   string   `json:"time_limit,omitempty"`
	GPUs        int      `json:"gpus,omitempty"`
	Constraints []string `json:"gpu_constraints,omitempty"`
	Memory      string   `json:"memory,omitempty"`
	Script      string   `json:"script,omitempty"`
	Sbatch      string   `json:"sbatch,omitempty"`
	Squeue      string   `json:"squeue,omitempty"`
	Scancel     string   `json:"scancel,omitempty"`
}

// Config maps cluster labels to their submission defaults.
type Config map[string]Cluster

// DefaultCluster returns the fixed flag set used without a config file.
func DefaultCluster() Cluster {
	return Cluster{}.WithDefaults()
}

// WithDefaults fills any unset field with the fixed default.
func (c Cluster) WithDefaults() Cluster {
	if len(c.Partitions) == 0 {
		c.Partitions = append([]string{}, DefaultPartitions...)
	}
	if len(c.TimeLimit) == 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if c.GPUs == 0 {
		c.GPUs = DefaultGPUs
	}
	if len(c.Constraints) == 0 {
		c.Constraints = append([]string{}, DefaultGPUConstraints...)
	}
	if len(c.Memory) == 0 {
		c.Memory = DefaultMemory
	}
	if len(c.Script) == 0 {
		c.Script = DefaultScript
	}
	if len(c.Sbatch) == 0 {
		c.Sbatch = DefaultSbatch
	}
	if len(c.Squeue) == 0 {
		c.Squeue = DefaultSqueue
	}
	if len(c.Scancel) == 0 {
		c.Scancel = DefaultScancel
	}
	return c
}

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from environment or use backup under $HOME
func getConfigPath() string {
	configPath := os.Getenv(ConfigEnv)
	if len(configPath) > 0 {
		return configPath
	}
	backupPath := os.Getenv("HOME") + ConfigPath
	if err := os.MkdirAll(backupPath, 0744); err != nil {
		return ConfigFilename
	}
	return backupPath + ConfigFilename
}

// WriteConfig persists the cluster defaults with owner-only permissions.
func WriteConfig(config Config) error {
	configFile := getConfigPath()
	file, err := json.MarshalIndent(config, "", "	")
	if err != nil {
		return errors.Wrap(err, "config: marshal")
	}
	// Ensure config file uses proper permissions
	os.Chmod(configFile, ConfigFilePerms)
	return ioutil.WriteFile(configFile, file, ConfigFilePerms)
}

// ReadConfig loads the config file. A missing file yields an empty config.
func ReadConfig() (Config, error) {
	filename := getConfigPath()
	if !fileExist(filename) {
		return Config{}, nil
	}
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	// a file holding JSON null decodes into a nil map
	if config == nil {
		config = Config{}
	}
	return config, nil
}

// GetClusterConfig resolves one cluster entry with defaults applied. The
// "default" entry always resolves, config file or not.
func GetClusterConfig(name string) (Cluster, error) {
	config, err := ReadConfig()
	if err != nil {
		return Cluster{}, err
	}
	cluster, ok := config[name]
	if !ok {
		if name == "default" {
			return DefaultCluster(), nil
		}
		return Cluster{}, errors.Errorf("config: no cluster entry %q", name)
	}
	return cluster.WithDefaults(), nil
}
