// Package app wires the platform HAL to the render pipeline and the demo
// scene. It owns startup order and nothing else: the pipeline and scene
// never see each other's construction.
package app

import (
	"fmt"

	"halo/hal"
	"halo/pipeline"
	"halo/scene"
)

type system struct {
	coord *pipeline.Coordinator
	clock *pipeline.Clock
}

// Config selects the pipeline configuration.
type Config struct {
	// Preset picks one of the measured pipeline configurations; zero
	// selects the best-performing one.
	Preset pipeline.Preset
}

// New initializes and starts the firmware with the default preset.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the firmware and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg Config) *system {
	log := h.Logger()

	if cfg.Preset == 0 {
		cfg.Preset = pipeline.PresetHalfFrame
	}
	pcfg := cfg.Preset.Config()
	if log != nil {
		log.WriteLineString(fmt.Sprintf("app: preset %v", cfg.Preset))
	}

	w, height := h.Display().Size()
	pcfg.Width, pcfg.Height = w, height

	clock := pipeline.NewClock(h.Time())
	stage := scene.New(w, height, log)

	coord, err := pipeline.New(pcfg, h.Display(), stage, clock, log)
	if err != nil {
		// No buffers or no bus means nothing to limp along with.
		panic(err)
	}

	if t := h.Touch(); t != nil {
		coord.SetTouchPoller(touchPoller(t))
	}
	if led := h.LED(); led != nil {
		led.High()
	}

	go protect(log, coord.Run)

	return &system{coord: coord, clock: clock}
}

func touchPoller(t hal.Touch) pipeline.TouchPoller {
	return func() (int16, int16, bool) {
		st, err := t.Read()
		if err != nil {
			// Read timeouts mean "no touch"; the driver throttles its
			// own warnings.
			return 0, 0, false
		}
		return st.X, st.Y, st.Pressed
	}
}
