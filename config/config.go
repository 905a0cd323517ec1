package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config 保存所有配置项的顶级结构
type Config struct {
	Intersection IntersectionConfig `json:"intersection" yaml:"intersection"`
	Simulation   SimulationConfig   `json:"simulation" yaml:"simulation"`
	Policy       PolicyConfig       `json:"policy" yaml:"policy"`
	Arrival      ArrivalConfig      `json:"arrival" yaml:"arrival"`
	Logging      LoggingConfig      `json:"logging" yaml:"logging"`
	Record       RecordConfig       `json:"record" yaml:"record"`
}

// IntersectionConfig 保存路口相关的配置项
type IntersectionConfig struct {
	Name string `json:"name" yaml:"name"`
	// 按相位顺序排列的车道名称，最多4个，缺省部分使用默认名称
	LaneNames []string `json:"laneNames" yaml:"laneNames"`
}

// SimulationConfig 保存模拟相关的配置项
// 命令行参数优先于这里的值
type SimulationConfig struct {
	Cycles       int   `json:"cycles" yaml:"cycles"`
	InitialLanes []int `json:"initialLanes" yaml:"initialLanes"`
	// 随机种子，0表示使用当前时间
	Seed uint64 `json:"seed" yaml:"seed"`
}

// PolicyConfig 绿灯时长策略: t = BaseGreen + PerVehicle*waiting，限制在 [BaseGreen, MaxGreen]
type PolicyConfig struct {
	BaseGreen  int `json:"baseGreen" yaml:"baseGreen"`
	MaxGreen   int `json:"maxGreen" yaml:"maxGreen"`
	PerVehicle int `json:"perVehicle" yaml:"perVehicle"`
}

// ArrivalConfig 保存周期间车辆到达相关的配置项
type ArrivalConfig struct {
	// 每个车道每周期到达车辆数在 [0, MaxPerLane] 内均匀分布
	// 未设置时使用默认值，显式设置为0表示不注入到达车辆
	MaxPerLane *int `json:"maxPerLane" yaml:"maxPerLane"`
}

// LoggingConfig 保存日志记录相关的配置项
type LoggingConfig struct {
	// 运行日志目录，为空时只输出到控制台
	LogDir string `json:"logDir" yaml:"logDir"`
	// 是否在控制台打印每个周期前后的路口状态
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// RecordConfig 保存统计数据输出相关的配置项
type RecordConfig struct {
	StatisticsFile string `json:"statisticsFile" yaml:"statisticsFile"`
	CycleData      bool   `json:"cycleData" yaml:"cycleData"`
	DataDir        string `json:"dataDir" yaml:"dataDir"`
}

const (
	DefaultName           = "Main_1"
	DefaultBaseGreen      = 5
	DefaultMaxGreen       = 40
	DefaultPerVehicle     = 2
	DefaultMaxPerLane     = 3
	DefaultStatisticsFile = "traffic_stats.txt"
	DefaultDataDir        = "data"
)

var globalConfig *Config

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// LoadConfig loads configuration from the specified JSON or YAML file
func LoadConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	config := &Config{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("yaml unmarshal %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("json unmarshal %s: %w", filename, err)
		}
	}

	applyDefaults(config)
	if err := config.Validate(); err != nil {
		return err
	}

	globalConfig = config
	return nil
}

// GetConfig returns the global configuration instance, or the defaults if none was loaded
func GetConfig() *Config {
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}

func applyDefaults(config *Config) {
	if config.Intersection.Name == "" {
		config.Intersection.Name = DefaultName
	}

	// 绿灯策略默认值
	if config.Policy.BaseGreen <= 0 {
		config.Policy.BaseGreen = DefaultBaseGreen
	}
	if config.Policy.MaxGreen <= 0 {
		config.Policy.MaxGreen = DefaultMaxGreen
	}
	if config.Policy.PerVehicle <= 0 {
		config.Policy.PerVehicle = DefaultPerVehicle
	}

	if config.Arrival.MaxPerLane == nil {
		maxPerLane := DefaultMaxPerLane
		config.Arrival.MaxPerLane = &maxPerLane
	}

	if config.Record.StatisticsFile == "" {
		config.Record.StatisticsFile = DefaultStatisticsFile
	}
	if config.Record.DataDir == "" {
		config.Record.DataDir = DefaultDataDir
	}
}

// Validate 检查配置项的合法性
func (c *Config) Validate() error {
	if len(c.Intersection.LaneNames) > 4 {
		return fmt.Errorf("%w: %d lane names given, at most 4", ErrInvalidConfig, len(c.Intersection.LaneNames))
	}
	if c.Policy.MaxGreen < c.Policy.BaseGreen {
		return fmt.Errorf("%w: maxGreen %d below baseGreen %d", ErrInvalidConfig, c.Policy.MaxGreen, c.Policy.BaseGreen)
	}
	if c.Arrival.MaxPerLane != nil && *c.Arrival.MaxPerLane < 0 {
		return fmt.Errorf("%w: maxPerLane %d", ErrInvalidConfig, *c.Arrival.MaxPerLane)
	}
	if c.Simulation.Cycles < 0 {
		return fmt.Errorf("%w: cycles %d", ErrInvalidConfig, c.Simulation.Cycles)
	}
	if n := len(c.Simulation.InitialLanes); n != 0 && n != 4 {
		return fmt.Errorf("%w: initialLanes needs 4 values, got %d", ErrInvalidConfig, n)
	}
	for i, v := range c.Simulation.InitialLanes {
		if v < 0 {
			return fmt.Errorf("%w: initialLanes[%d] = %d", ErrInvalidConfig, i, v)
		}
	}
	return nil
}

// MaxArrivals 返回每个车道每周期的最大到达车辆数
func (c *Config) MaxArrivals() int {
	if c.Arrival.MaxPerLane == nil {
		return DefaultMaxPerLane
	}
	return *c.Arrival.MaxPerLane
}

// LaneNames 返回补齐为4个的车道名称，空字符串表示使用默认名称
func (c *Config) LaneNames() [4]string {
	var names [4]string
	copy(names[:], c.Intersection.LaneNames)
	return names
}
