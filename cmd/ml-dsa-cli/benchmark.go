package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/sign"
)

// benchResult holds per-operation latencies and the rejection-loop
// attempt count of every signature.
type benchResult struct {
	Level    mldsa.SecurityLevel
	KeyGen   []time.Duration
	Sign     []time.Duration
	Verify   []time.Duration
	Attempts []int
}

func average(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

func runBenchmark(level mldsa.SecurityLevel, iterations int) (*benchResult, error) {
	res := &benchResult{Level: level}
	testMessage := bytes.Repeat([]byte("Hello, ML-DSA!"), 10)

	var kp *sign.KeyPair
	for i := 0; i < iterations; i++ {
		start := time.Now()
		next, err := sign.GenerateKeyPair(level)
		res.KeyGen = append(res.KeyGen, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("keygen: %w", err)
		}
		if kp != nil {
			kp.Destroy()
		}
		kp = next
	}
	defer kp.Destroy()

	var sig []byte
	for i := 0; i < iterations; i++ {
		start := time.Now()
		s, attempts, err := sign.SignWithAttempts(kp.SecretKey, testMessage, nil)
		res.Sign = append(res.Sign, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("sign: %w", err)
		}
		res.Attempts = append(res.Attempts, attempts)
		sig = s
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		valid := sign.Verify(kp.PublicKey, testMessage, sig, nil)
		res.Verify = append(res.Verify, time.Since(start))
		if !valid {
			return nil, fmt.Errorf("verify: %w", sign.ErrVerificationFailed)
		}
	}
	return res, nil
}

// parseIterations reads --iterations, defaulting to 10.
func parseIterations(s string) (int, error) {
	if s == "" {
		return 10, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --iterations %q: want a positive integer", s)
	}
	return n, nil
}

func handleBenchmark(args []string) {
	config := parseConfig(args)
	iterationsStr := getArg(args, "--iterations", "-n")
	chartFile := getArg(args, "--chart", "")

	iterations, err := parseIterations(iterationsStr)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("ML-DSA Benchmark Results\n")
	fmt.Printf("========================\n")
	fmt.Printf("Security Level: %s\n", config.SecurityLevel)
	fmt.Printf("Iterations: %d\n\n", iterations)

	res, err := runBenchmark(config.SecurityLevel, iterations)
	if err != nil {
		fail("%v", err)
	}

	total := 0
	for _, a := range res.Attempts {
		total += a
	}
	fmt.Printf("  KeyGen:      %v (avg)\n", average(res.KeyGen))
	fmt.Printf("  Sign:        %v (avg, %.2f attempts)\n", average(res.Sign), float64(total)/float64(len(res.Attempts)))
	fmt.Printf("  Verify:      %v (avg)\n", average(res.Verify))
	fmt.Println()

	if chartFile != "" {
		f, err := os.Create(chartFile)
		if err != nil {
			fail("creating chart file: %v", err)
		}
		defer f.Close()
		if err := renderBenchmark(f, res); err != nil {
			fail("rendering chart: %v", err)
		}
		fmt.Printf("Chart written to %s\n", chartFile)
	}
	fmt.Println("Benchmark complete!")
}

// attemptHistogram counts signatures per attempt count, keyed in ascending order.
func attemptHistogram(attempts []int) ([]string, []opts.BarData) {
	counts := make(map[int]int)
	for _, a := range attempts {
		counts[a]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	labels := make([]string, len(keys))
	items := make([]opts.BarData, len(keys))
	for i, k := range keys {
		labels[i] = strconv.Itoa(k)
		items[i] = opts.BarData{Value: counts[k]}
	}
	return labels, items
}

func newAttemptsChart(res *benchResult) *charts.Bar {
	labels, items := attemptHistogram(res.Attempts)
	title := fmt.Sprintf("%s signing attempts", res.Level)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("n=%d", len(res.Attempts))}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "attempts"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "signatures"}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return bar
}

func newLatencyChart(res *benchResult) *charts.Bar {
	micros := func(d time.Duration) opts.BarData {
		return opts.BarData{Value: d.Microseconds()}
	}
	title := fmt.Sprintf("%s mean latency (µs)", res.Level)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"keygen", "sign", "verify"}).
		AddSeries("µs", []opts.BarData{
			micros(average(res.KeyGen)),
			micros(average(res.Sign)),
			micros(average(res.Verify)),
		})
	return bar
}

// renderBenchmark writes an HTML page with the attempt histogram and the
// latency summary.
func renderBenchmark(w io.Writer, res *benchResult) error {
	page := components.NewPage().SetPageTitle(fmt.Sprintf("%s benchmark", res.Level))
	page.AddCharts(newAttemptsChart(res), newLatencyChart(res))
	return page.Render(w)
}
