package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/welltris/sim"
)

// PerformanceStats keeps a ring of frame times next to the game scheduler's
// per-system timings.
type PerformanceStats struct {
	scheduler     *sim.Scheduler
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	lastFrame     time.Time
}

func NewPerformanceStats(scheduler *sim.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler:     scheduler,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame time in milliseconds.
func (ps *PerformanceStats) Record(ms float32) {
	ps.frameHistory[ps.frameIndex] = ms
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// Average returns the mean of the recorded frame times.
func (ps *PerformanceStats) Average() float32 {
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Item() ImguiItem {
	return ImguiItem{Render: ps.render}
}

func (ps *PerformanceStats) render() {
	now := time.Now()
	if !ps.lastFrame.IsZero() {
		ps.Record(float32(now.Sub(ps.lastFrame).Seconds() * 1000))
	}
	ps.lastFrame = now

	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 300), imgui.CondOnce)

	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Ticks: %d  Systems: %d", stats.Ticks, stats.SystemCount))

	avg := ps.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Min (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableHeadersRow()

		systems := stats.Systems
		if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			SortSystems(systems, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
		}

		for _, sys := range systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(millis(sys.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(millis(sys.MinDuration))
			imgui.TableNextColumn()
			imgui.Text(millis(sys.MaxDuration))
		}
		imgui.EndTable()
	}

	imgui.End()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

// SortSystems orders systems by a table column: name, runs, avg, min, max.
func SortSystems(systems []sim.SystemStats, column int, descending bool) {
	sort.SliceStable(systems, func(i, j int) bool {
		left, right := systems[i], systems[j]
		var less bool
		switch column {
		case 0:
			less = left.Name < right.Name
		case 1:
			less = left.ExecutionCount < right.ExecutionCount
		case 2:
			less = left.AvgDuration < right.AvgDuration
		case 3:
			less = left.MinDuration < right.MinDuration
		case 4:
			less = left.MaxDuration < right.MaxDuration
		}
		if descending {
			return !less
		}
		return less
	})
}
