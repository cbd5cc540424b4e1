package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

type spanCount struct {
	name    string
	entered uint64
	exited  uint64
}

// summary is what a run reports.
type summary struct {
	mode      string
	tasks     int
	completed int
	ticks     float64

	taskEnters, taskExits uint64
	stepEnters, stepExits uint64

	taskBusyTime    float64
	taskAverageTime float64
	stepTotalTime   float64

	spans []spanCount
}

func (d *demo) summarize() *summary {
	s := &summary{
		mode:            d.cfg.mode,
		tasks:           d.cfg.tasks,
		completed:       d.completed,
		ticks:           d.executor.Now(),
		taskEnters:      d.taskCounter.Enters(),
		taskExits:       d.taskCounter.Exits(),
		stepEnters:      d.stepCounter.Enters(),
		stepExits:       d.stepCounter.Exits(),
		taskBusyTime:    d.taskBusyTime.BusyTime(),
		taskAverageTime: d.taskAverageTime.AverageTime(),
		stepTotalTime:   d.stepTotalTime.TotalTime(),
	}

	for _, name := range d.spanCount.Names() {
		s.spans = append(s.spans, spanCount{
			name:    name,
			entered: d.spanCount.EnterCount(name),
			exited:  d.spanCount.ExitCount(name),
		})
	}

	return s
}

// render prints the summary tables.
func (s *summary) render(out io.Writer) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	rows := [][]string{
		{"Mode", s.mode},
		{"Tasks", fmt.Sprintf("%d/%d completed", s.completed, s.tasks)},
		{"Ticks", fmt.Sprintf("%.0f", s.ticks)},
		{"Task spans", fmt.Sprintf("%d entered, %d exited", s.taskEnters, s.taskExits)},
		{"Step spans", fmt.Sprintf("%d entered, %d exited", s.stepEnters, s.stepExits)},
		{"Task busy time", fmt.Sprintf("%.2f", s.taskBusyTime)},
		{"Task average time", fmt.Sprintf("%.2f", s.taskAverageTime)},
		{"Step total time", fmt.Sprintf("%.2f", s.stepTotalTime)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}

	if len(s.spans) == 0 {
		return nil
	}

	spans := tablewriter.NewWriter(out)
	spans.Header("Span", "Entered", "Exited")
	for _, c := range s.spans {
		err := spans.Append([]string{
			c.name,
			fmt.Sprintf("%d", c.entered),
			fmt.Sprintf("%d", c.exited),
		})
		if err != nil {
			return fmt.Errorf("rendering span counts: %w", err)
		}
	}

	if err := spans.Render(); err != nil {
		return fmt.Errorf("rendering span counts: %w", err)
	}

	return nil
}
