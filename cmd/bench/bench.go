package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/evaluating"
	"github.com/spacemeshos/bits/parsing"
	"github.com/spacemeshos/bits/persistence"
)

var samples = []string{
	"D2FE28",
	"38006F45291200",
	"EE00D40C823060",
	"8A004A801A8002F478",
	"620080001611562C8802118E34",
	"C0015000016115A2E0802F182340",
	"A0016C880162017C3686B18A3D4780",
	"C200B40A82",
	"04005AC33890",
	"880086C3E88112",
	"CE00C43D881120",
	"D8005AC2A8F0",
	"F600BC2D8F",
	"9C005AC2F8F0",
	"9C0141080250320F1802104A08",
}

type benchCase struct {
	name     string
	messages []string
	maxDepth int
}

func main() {
	file := flag.String("file", "", "benchmark the transmissions in this file instead of the built-in samples")
	iterations := flag.Int("iterations", 10000, "number of passes over the transmissions")
	depth := flag.Int("depth", 1000, "nesting depth of the generated deep transmission (0 - skip)")
	flag.Parse()

	cases, err := genTestCases(*file, *depth)
	if err != nil {
		log.Fatal(err)
	}

	data := make([][]string, 0)
	for _, c := range cases {
		for _, strategy := range []config.Strategy{config.StrategyRecursive, config.StrategyStack} {
			log.Printf("bench %v/%v starting...", c.name, strategy)
			row, err := run(c, strategy, *iterations)
			if err != nil {
				log.Fatalf("bench %v/%v failed: %v", c.name, strategy, err)
			}
			data = append(data, row)
		}
	}

	header := []string{"case", "strategy", "messages", "input", "parse", "eval", "parse/s"}
	report(*iterations, header, data)
}

func run(c benchCase, strategy config.Strategy, iterations int) ([]string, error) {
	size := inputSize(c.messages)

	var eParse, eEval time.Duration
	for i := 0; i < iterations; i++ {
		for _, m := range c.messages {
			t := time.Now()
			p, err := parsing.Parse(m, parsing.WithStrategy(strategy), parsing.WithMaxDepth(c.maxDepth))
			if err != nil {
				return nil, err
			}
			eParse += time.Since(t)

			t = time.Now()
			evaluating.SumVersions(p)
			if _, err := evaluating.Evaluate(p); err != nil {
				return nil, err
			}
			eEval += time.Since(t)
		}
	}

	throughput := float64(size) * float64(iterations) / eParse.Seconds()
	return []string{
		c.name,
		string(strategy),
		strconv.Itoa(len(c.messages)),
		bytefmt.ByteSize(size),
		eParse.Round(time.Millisecond).String(),
		eEval.Round(time.Millisecond).String(),
		bytefmt.ByteSize(uint64(throughput)),
	}, nil
}

// inputSize returns the decoded size of messages in bytes. A trailing odd hex
// digit counts as a whole byte.
func inputSize(messages []string) uint64 {
	var size uint64
	for _, m := range messages {
		size += uint64((len(m) + 1) / 2)
	}
	return size
}

func report(iterations int, header []string, data [][]string) {
	model := "unknown"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}
	fmt.Printf("\n\nBENCHMARKS: iterations=%v, cpu=%v, numcpu=%v\n", iterations, model, runtime.NumCPU())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

func genTestCases(file string, depth int) ([]benchCase, error) {
	cases := make([]benchCase, 0)

	if file != "" {
		messages, err := persistence.ReadLines(file)
		if err != nil {
			return nil, err
		}
		cases = append(cases, benchCase{name: file, messages: messages, maxDepth: config.DefaultMaxDepth})
	} else {
		cases = append(cases, benchCase{name: "samples", messages: samples, maxDepth: config.DefaultMaxDepth})
	}

	if depth > 0 {
		cases = append(cases, benchCase{
			name:     fmt.Sprintf("depth-%d", depth),
			messages: []string{nested(depth)},
			maxDepth: depth,
		})
	}
	return cases, nil
}

// nested returns a transmission of depth-1 single-child sum operators around
// a literal.
func nested(depth int) string {
	var bits strings.Builder
	for i := 1; i < depth; i++ {
		// version 0, sum, counted, 1 subpacket
		bits.WriteString("000" + "000" + "1" + "00000000001")
	}
	// version 0, literal 1
	bits.WriteString("000" + "100" + "00001")
	for bits.Len()%4 != 0 {
		bits.WriteByte('0')
	}

	s := bits.String()
	var hex strings.Builder
	for i := 0; i < len(s); i += 4 {
		v, _ := strconv.ParseUint(s[i:i+4], 2, 8)
		hex.WriteString(strings.ToUpper(strconv.FormatUint(v, 16)))
	}
	return hex.String()
}
