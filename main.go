package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"intersectionSim/config"
	"intersectionSim/element"
	"intersectionSim/log"
	"intersectionSim/recorder"
	"intersectionSim/simulator"
)

// options 命令行参数，非空时覆盖配置文件
type options struct {
	configFile string
	lanes      string
	cycles     string
	seed       string
	name       string
	stats      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("intersectionSim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "配置文件路径 (.json/.yaml)")
	fs.StringVar(&opts.lanes, "lanes", "", "四个车道的初始排队车辆数，逗号分隔，例如 2,0,5,1")
	fs.StringVar(&opts.cycles, "cycles", "", "模拟周期数（正整数）")
	fs.StringVar(&opts.seed, "seed", "", "随机种子，缺省时使用当前时间")
	fs.StringVar(&opts.name, "name", "", "路口名称")
	fs.StringVar(&opts.stats, "stats", "", "统计日志文件路径")
	err := fs.Parse(args)
	return opts, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 1
	}

	// 加载配置文件
	cfg := config.Default()
	if opts.configFile != "" {
		if err := config.LoadConfig(opts.configFile); err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return 1
		}
		cfg = config.GetConfig()
	}
	if opts.name != "" {
		cfg.Intersection.Name = opts.name
	}
	if opts.stats != "" {
		cfg.Record.StatisticsFile = opts.stats
	}

	// 生成唯一的初始化时间标识
	initTime := time.Now().Format("20060102150405")

	log.SetOutput(stderr)
	if err := initializeLog(cfg, initTime); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize log: %v\n", err)
		return 1
	}
	defer log.CloseLog()
	log.LogEnvironment()

	// 读取初始条件
	lanes, cycles, err := readInitialConditions(cfg, opts, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid input: %v\n", err)
		return 1
	}

	seed, err := resolveSeed(cfg, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid input: %v\n", err)
		return 1
	}

	sim, err := initializeSimulation(cfg, lanes, seed)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize simulation: %v\n", err)
		return 1
	}
	if !cfg.Logging.Quiet {
		sim.SetReportWriter(stdout)
	}
	if cfg.Record.CycleData {
		cycleFile := filepath.Join(cfg.Record.DataDir, fmt.Sprintf("%s_CycleData.csv", initTime))
		cycleRecorder, err := recorder.NewCycleDataRecorder(cycleFile)
		if err != nil {
			log.WarnError(err, "Cycle data recording disabled")
		} else {
			sim.SetCycleRecorder(cycleRecorder)
		}
	}

	log.LogSimParameters(cfg.Intersection.Name, cycles, lanes,
		cfg.Policy.BaseGreen, cfg.Policy.MaxGreen, cfg.Policy.PerVehicle, cfg.MaxArrivals(), seed)

	// 开始模拟
	log.WriteLog("----------------------------------Simulation Start----------------------------------")
	summary, err := sim.Run(cycles)
	if err != nil {
		fmt.Fprintf(stderr, "Simulation failed: %v\n", err)
		return 1
	}
	summary.LogStatus(stdout)

	// 统计日志写入失败不影响退出状态
	_ = simulator.FinishSimulation(cfg.Record.StatisticsFile, sim.Intersection().Name(), summary)

	log.WriteLog("---------------------------------- Completed ----------------------------------")
	return 0
}

// 初始化日志
func initializeLog(cfg *config.Config, initTime string) error {
	if cfg.Logging.LogDir == "" {
		return log.InitLog("")
	}
	return log.InitLog(filepath.Join(cfg.Logging.LogDir, initTime+".log"))
}

// 依次从命令行参数、配置文件、交互式输入获取初始车道车辆数和周期数
func readInitialConditions(cfg *config.Config, opts options, stdin io.Reader, stdout io.Writer) ([element.NumLanes]int, int, error) {
	var lanes [element.NumLanes]int
	prompter := config.NewPrompter(stdin, stdout)

	switch {
	case opts.lanes != "":
		counts, err := config.ParseLaneCounts(opts.lanes)
		if err != nil {
			return lanes, 0, err
		}
		lanes = counts
	case len(cfg.Simulation.InitialLanes) == element.NumLanes:
		copy(lanes[:], cfg.Simulation.InitialLanes)
	default:
		counts, err := prompter.LaneCounts(cfg.LaneNames())
		if err != nil {
			return lanes, 0, err
		}
		lanes = counts
	}

	var cycles int
	var err error
	switch {
	case opts.cycles != "":
		cycles, err = config.ParseCycleCount(opts.cycles)
	case cfg.Simulation.Cycles > 0:
		cycles = cfg.Simulation.Cycles
	default:
		cycles, err = prompter.CycleCount()
	}
	if err != nil {
		return lanes, 0, err
	}
	return lanes, cycles, nil
}

func resolveSeed(cfg *config.Config, opts options) (uint64, error) {
	if opts.seed != "" {
		seed, err := strconv.ParseUint(opts.seed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", opts.seed, err)
		}
		return seed, nil
	}
	if cfg.Simulation.Seed != 0 {
		return cfg.Simulation.Seed, nil
	}
	return simulator.TimeSeed(), nil
}

// 初始化路口和模拟器
func initializeSimulation(cfg *config.Config, lanes [element.NumLanes]int, seed uint64) (*simulator.Simulator, error) {
	policy, err := simulator.NewGreenPolicy(cfg.Policy.BaseGreen, cfg.Policy.MaxGreen, cfg.Policy.PerVehicle)
	if err != nil {
		return nil, err
	}
	injector, err := simulator.NewArrivalInjector(seed, cfg.MaxArrivals())
	if err != nil {
		return nil, err
	}

	in := element.NewIntersection(cfg.Intersection.Name, cfg.LaneNames())
	if err := in.SeedLanes(lanes); err != nil {
		return nil, errors.Join(config.ErrInvalidLaneCount, err)
	}

	return simulator.NewSimulator(in, policy, injector)
}
