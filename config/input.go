package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"intersectionSim/log"
)

var (
	ErrInvalidCycleCount = errors.New("config: cycle count must be a positive integer")
	ErrInvalidLaneCount  = errors.New("config: lane vehicle count must be an integer")
)

// ParseCycleCount 解析模拟周期数，必须为正整数
func ParseCycleCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCycleCount, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCycleCount, n)
	}
	return n, nil
}

// ParseLaneCount 解析单个车道的初始车辆数
// 负数按0处理并记录警告，只有非数字输入才返回错误
func ParseLaneCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLaneCount, s)
	}
	if n < 0 {
		log.Warn(fmt.Sprintf("Negative lane vehicle count %d clamped to 0", n))
		return 0, nil
	}
	return n, nil
}

// ParseLaneCounts 解析逗号分隔的4个车道初始车辆数，例如 "2,0,5,1"
func ParseLaneCounts(s string) ([4]int, error) {
	var counts [4]int
	fields := strings.Split(s, ",")
	if len(fields) != len(counts) {
		return counts, fmt.Errorf("%w: need 4 comma-separated values, got %q", ErrInvalidLaneCount, s)
	}
	for i, field := range fields {
		n, err := ParseLaneCount(field)
		if err != nil {
			return counts, fmt.Errorf("lane %d: %w", i, err)
		}
		counts[i] = n
	}
	return counts, nil
}

// Prompter 从交互式输入读取初始条件
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter 创建一个读取 r、提示写到 w 的 Prompter
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(r), out: w}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return p.scanner.Text(), nil
}

// LaneCounts 依次提示输入每个车道的初始车辆数
func (p *Prompter) LaneCounts(laneNames [4]string) ([4]int, error) {
	var counts [4]int
	for i := range counts {
		name := laneNames[i]
		if name == "" {
			name = fmt.Sprintf("lane %d", i)
		}
		line, err := p.readLine(fmt.Sprintf("Initial vehicles waiting on %s: ", name))
		if err != nil {
			return counts, fmt.Errorf("%w: %v", ErrInvalidLaneCount, err)
		}
		n, err := ParseLaneCount(line)
		if err != nil {
			return counts, err
		}
		counts[i] = n
	}
	return counts, nil
}

// CycleCount 提示输入模拟周期数
func (p *Prompter) CycleCount() (int, error) {
	line, err := p.readLine("Number of cycles to simulate: ")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCycleCount, err)
	}
	return ParseCycleCount(line)
}
