package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarchlab/steptrace"
	"github.com/sarchlab/steptrace/executor"
	"github.com/sarchlab/steptrace/hooking"
	"github.com/sarchlab/steptrace/instruments"
	"github.com/sarchlab/steptrace/tracing"
	"github.com/spf13/cobra"
)

// Tracing modes.
const (
	modeTask = "task"
	modeStep = "step"
	modeBoth = "both"
)

// Environment variables that provide defaults for the run flags.
const (
	envTraceDB  = "STEPTRACE_TRACE_DB"
	envTraceCSV = "STEPTRACE_TRACE_CSV"
	envMode     = "STEPTRACE_MODE"
)

// errInvalidConfig is returned when the run flags are inconsistent.
var errInvalidConfig = errors.New("invalid run configuration")

type runConfig struct {
	tasks      int
	steps      int
	mode       string
	traceDB    string
	traceCSV   string
	metricsOut string
	maxTicks   uint64
	quiet      bool
}

var runFlags = runConfig{
	tasks: 4,
	steps: 3,
	mode:  modeBoth,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch of traced demo tasks",
	Long: `Run spawns a number of countdown tasks on a cooperative executor. ` +
		`Task i completes after (i mod steps)+1 steps. Each task is traced ` +
		`at the task level, the step level, or both, and a summary of the ` +
		`collected spans is printed when all the tasks complete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg := runFlags
		applyEnv(cmd, &cfg)

		logOut := io.Writer(os.Stderr)
		if cfg.quiet {
			logOut = io.Discard
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		s, err := runDemo(ctx, cfg, logOut)
		if s != nil {
			err = errors.Join(err, s.render(cmd.OutOrStdout()))
		}

		return err
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.tasks, "tasks", runFlags.tasks,
		"number of tasks to spawn")
	f.IntVar(&runFlags.steps, "steps", runFlags.steps,
		"maximum number of steps of a task")
	f.StringVar(&runFlags.mode, "mode", runFlags.mode,
		"tracing mode: task, step, or both (env "+envMode+")")
	f.StringVar(&runFlags.traceDB, "trace-db", "",
		"write spans to this SQLite database (env "+envTraceDB+")")
	f.StringVar(&runFlags.traceCSV, "trace-csv", "",
		"write spans to this CSV file (env "+envTraceCSV+")")
	f.StringVar(&runFlags.metricsOut, "metrics-out", "",
		"write Prometheus metrics to this file")
	f.Uint64Var(&runFlags.maxTicks, "max-ticks", 0,
		"stop after this many ticks, 0 means no limit")
	f.BoolVar(&runFlags.quiet, "quiet", false,
		"do not log span enters and exits")

	rootCmd.AddCommand(runCmd)
}

// applyEnv fills the flags that are not set on the command line from the
// environment.
func applyEnv(cmd *cobra.Command, cfg *runConfig) {
	fromEnv := func(flag, env string, dst *string) {
		if cmd.Flags().Changed(flag) {
			return
		}

		if v, ok := os.LookupEnv(env); ok {
			*dst = v
		}
	}

	fromEnv("trace-db", envTraceDB, &cfg.traceDB)
	fromEnv("trace-csv", envTraceCSV, &cfg.traceCSV)
	fromEnv("mode", envMode, &cfg.mode)
}

func (c runConfig) validate() error {
	if c.tasks < 1 {
		return fmt.Errorf("%w: tasks must be positive, got %d",
			errInvalidConfig, c.tasks)
	}

	if c.steps < 1 {
		return fmt.Errorf("%w: steps must be positive, got %d",
			errInvalidConfig, c.steps)
	}

	switch c.mode {
	case modeTask, modeStep, modeBoth:
	default:
		return fmt.Errorf("%w: unknown mode %q", errInvalidConfig, c.mode)
	}

	return nil
}

func kindIs(kind string) hooking.SpanFilter {
	return func(s hooking.SpanEnter) bool {
		return s.Kind == kind
	}
}

// demo holds everything that observes a run.
type demo struct {
	cfg      runConfig
	executor *executor.Executor
	registry *prometheus.Registry
	metrics  *instruments.MetricsVec

	taskCounter *instruments.Counter
	stepCounter *instruments.Counter

	taskBusyTime    *tracing.BusyTimeTracer
	taskAverageTime *tracing.AverageTimeTracer
	stepTotalTime   *tracing.TotalTimeTracer
	spanCount       *tracing.SpanCountTracer
	dbTracers       []*tracing.DBTracer

	completed int
}

func newDemo(cfg runConfig, logOut io.Writer) (*demo, error) {
	d := &demo{
		cfg:         cfg,
		executor:    executor.NewExecutor("Executor"),
		registry:    prometheus.NewRegistry(),
		taskCounter: instruments.NewCounter(),
		stepCounter: instruments.NewCounter(),
	}
	d.executor.MaxTicks = cfg.maxTicks

	metrics, err := instruments.NewMetricsVec(d.registry, "steptrace")
	if err != nil {
		return nil, err
	}
	d.metrics = metrics

	e := d.executor
	d.taskBusyTime = tracing.NewBusyTimeTracer(e, kindIs(hooking.KindTask))
	d.taskAverageTime = tracing.NewAverageTimeTracer(
		e, kindIs(hooking.KindTask))
	d.stepTotalTime = tracing.NewTotalTimeTracer(e, kindIs(hooking.KindStep))
	d.spanCount = tracing.NewSpanCountTracer(nil)

	e.AcceptHook(hooking.NewSpanLogger(log.New(logOut, "", 0), e))
	e.AcceptHook(d.taskBusyTime)
	e.AcceptHook(d.taskAverageTime)
	e.AcceptHook(d.stepTotalTime)
	e.AcceptHook(d.spanCount)

	if cfg.traceDB != "" {
		path := strings.TrimSuffix(cfg.traceDB, ".sqlite3")
		d.addDBTracer(tracing.NewSQLiteTraceWriter(path))
	}

	if cfg.traceCSV != "" {
		path := strings.TrimSuffix(cfg.traceCSV, ".csv")
		d.addDBTracer(tracing.NewCSVTraceWriter(path))
	}

	return d, nil
}

func (d *demo) addDBTracer(w tracing.TraceWriter) {
	t := tracing.NewDBTracer(d.executor, w)
	d.executor.AcceptHook(t)
	d.dbTracers = append(d.dbTracers, t)
}

func (d *demo) spawn(i int) {
	e := d.executor
	task := executor.NewCountdown(i%d.cfg.steps, i)
	onDone := func(int) { d.completed++ }

	switch d.cfg.mode {
	case modeTask:
		executor.Spawn(e, steptrace.TraceTask[int](
			task, d.instrument(hooking.KindTask, i)), onDone)
	case modeStep:
		executor.Spawn(e, steptrace.TraceStep[int](
			task, d.instrument(hooking.KindStep, i)), onDone)
	case modeBoth:
		executor.Spawn(e, steptrace.TraceTaskAndStep[int](
			task,
			d.instrument(hooking.KindTask, i),
			d.instrument(hooking.KindStep, i),
		), onDone)
	}
}

// instrument builds the instrument of the i-th task for the given kind of
// span. The span is named after the kind and the task index.
func (d *demo) instrument(kind string, i int) steptrace.Instrument {
	counter := d.taskCounter
	if kind == hooking.KindStep {
		counter = d.stepCounter
	}

	name := fmt.Sprintf("%s-%d", kind, i)

	return instruments.Multi(
		instruments.NewHookInstrument(d.executor, kind, name),
		counter,
		d.metrics.Instrument(name),
	)
}

func (d *demo) terminate() error {
	d.taskBusyTime.TerminateAllSpans()

	for _, t := range d.dbTracers {
		t.Terminate()
	}

	if d.cfg.metricsOut == "" {
		return nil
	}

	err := prometheus.WriteToTextfile(d.cfg.metricsOut, d.registry)
	if err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	return nil
}

// runDemo runs the demo tasks and returns the summary of the run. The summary
// is also returned when the run stops early.
func runDemo(
	ctx context.Context,
	cfg runConfig,
	logOut io.Writer,
) (*summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d, err := newDemo(cfg, logOut)
	if err != nil {
		return nil, err
	}

	for i := 0; i < cfg.tasks; i++ {
		d.spawn(i)
	}

	runErr := d.executor.Run(ctx)
	termErr := d.terminate()

	return d.summarize(), errors.Join(runErr, termErr)
}
