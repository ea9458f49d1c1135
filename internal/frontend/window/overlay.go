package window

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/ecs/debugui"
	debugui_ebiten "github.com/plus3/snek/ecs/debugui/ebiten"
	"github.com/plus3/snek/internal/game"
)

// overlay runs its own scheduler every frame so the debug windows refresh
// at the display rate while the game ticks at its level's rate.
type overlay struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
}

func newOverlay(g *game.Game, title string, width, height int) *overlay {
	storage := ecs.NewStorage()
	o := &overlay{
		backend: ecs.NewSingleton(storage, debugui_ebiten.New(title, width, height)),
		input:   ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	stats := debugui.NewSchedulerStatsWindow(120)
	timer := debugui.NewFrameTimer()
	inspector := debugui.NewSingletonInspector()

	debugui.AddItem(storage, debugui.ImguiItem{
		Name: "session",
		Render: func() {
			renderSession(g)
		},
	})
	debugui.AddItem(storage, debugui.ImguiItem{
		Name: "scheduler",
		Render: func() {
			stats.Render(g.SchedulerStats(), g.Storage().CollectStats(), timer.GetDeltaTime())
		},
	})
	debugui.AddItem(storage, debugui.ImguiItem{
		Name: "singletons",
		Render: func() {
			inspector.Render(g.Storage())
		},
	})

	o.scheduler = ecs.NewScheduler(storage)
	o.scheduler.Register(&debugui.ImguiSystem{})
	return o
}

func renderSession(g *game.Game) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}
	scene := g.Scene()
	imgui.Text(fmt.Sprintf("Level: %d  Rate: %d/s", scene.Level, scene.TickRate))
	imgui.Text(fmt.Sprintf("Length: %d  Best: %d", len(scene.Snake), scene.Stats.BestLength))
	imgui.Text(fmt.Sprintf("Apples: %d  Deaths: %d", scene.Stats.Apples, scene.Stats.Deaths))
	imgui.Text(fmt.Sprintf("Hazards: %d (active %t)", len(scene.Hazards), scene.HazardsActive))
	imgui.Text(fmt.Sprintf("Heading: %s  Food: %s", scene.Direction, scene.Food))
	imgui.End()
}

func (o *overlay) update(dt time.Duration) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(dt.Seconds())
	backend.EndFrame()
}

func (o *overlay) draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *overlay) layout(width, height int) {
	o.backend.Get().Layout(width, height)
}

func (o *overlay) wantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
