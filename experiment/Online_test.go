package experiment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/agent/linear/value"
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/experiment/checkpointer"
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/samuelfneumann/enduro/experiment/trackers"
	"github.com/samuelfneumann/enduro/state"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeEnv is an Environment which rewards every tick with 1 and
// perceives a fixed set of cars
type fakeEnv struct {
	tick    int
	resets  int
	steps   []environment.Action
	cars    environment.Cars
	stepErr error
}

func (f *fakeEnv) Tick() int { return f.tick }

func (f *fakeEnv) Step(a environment.Action) (float64, error) {
	if f.stepErr != nil {
		return 0, f.stepErr
	}
	f.tick++
	f.steps = append(f.steps, a)
	return 1.0, nil
}

func (f *fakeEnv) Reset() error {
	f.resets++
	return nil
}

func (f *fakeEnv) Extract(bool, float64) (environment.Perception, error) {
	return environment.Perception{Cars: f.cars}, nil
}

type callback struct {
	learn   bool
	episode int
	tick    int
}

// recorder is an agent which records the calls made to it and always
// accelerates
type recorder struct {
	calls     []string
	callbacks []callback
	speeds    []int
	action    environment.Action
	initErr   error
	finished  int
}

func (r *recorder) Initialise(p environment.Perception, speed int) error {
	r.calls = append(r.calls, "initialise")
	r.speeds = append(r.speeds, speed)
	return r.initErr
}

func (r *recorder) Act(m agent.Mover) error {
	r.calls = append(r.calls, "act")
	_, err := m.Move(r.action)
	return err
}

func (r *recorder) Sense(p environment.Perception, speed int) error {
	r.calls = append(r.calls, "sense")
	r.speeds = append(r.speeds, speed)
	return nil
}

func (r *recorder) Learn() error {
	r.calls = append(r.calls, "learn")
	return nil
}

func (r *recorder) Callback(learn bool, episode, tick int) {
	r.calls = append(r.calls, "callback")
	r.callbacks = append(r.callbacks, callback{learn, episode, tick})
}

func (r *recorder) Finish() {
	r.finished++
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

// saveCounter is a checkpointer.Serializable which counts its saves
type saveCounter struct {
	filenames []string
}

func (s *saveCounter) Save(filename string) error {
	s.filenames = append(s.filenames, filename)
	return nil
}

func newTestOnline(e *fakeEnv, a agent.Agent, c Config,
	t []tracker.Tracker, check []checkpointer.Checkpointer) *Online {
	o, err := NewOnline(e, e, a, c, t, check)
	if err != nil {
		panic(err)
	}
	return o
}

func TestOnline(t *testing.T) {
	Convey("Given an online experiment", t, func() {
		env := &fakeEnv{cars: environment.Cars{
			Self: environment.Box{X: 50, Y: 100},
		}}
		rec := &recorder{action: environment.Accelerate}
		config := Config{Episodes: 2, EpisodeTicks: 10, Learn: true, Scale: 1}

		Convey("When the experiment is run", func() {
			ret := trackers.NewReturn("")
			o := newTestOnline(env, rec, config, []tracker.Tracker{ret}, nil)
			So(o.Run(context.Background()), ShouldBeNil)

			Convey("Each episode lasts the configured number of ticks", func() {
				So(o.TotalSteps(), ShouldEqual, 20)
				So(env.tick, ShouldEqual, 20)
				So(env.resets, ShouldEqual, 2)
				So(rec.count("initialise"), ShouldEqual, 2)
				So(rec.count("act"), ShouldEqual, 20)
			})

			Convey("Each tick acts, senses, learns, and reports in order", func() {
				So(rec.calls[:5], ShouldResemble, []string{
					"initialise", "act", "sense", "learn", "callback",
				})
				So(rec.calls[40], ShouldEqual, "callback")
				So(rec.calls[41], ShouldEqual, "initialise")
			})

			Convey("Callbacks receive the episode and tick in the episode", func() {
				So(len(rec.callbacks), ShouldEqual, 20)
				So(rec.callbacks[0], ShouldResemble, callback{true, 1, 1})
				So(rec.callbacks[9], ShouldResemble, callback{true, 1, 10})
				So(rec.callbacks[10], ShouldResemble, callback{true, 2, 1})
				So(rec.callbacks[19], ShouldResemble, callback{true, 2, 10})
			})

			Convey("Each episode starts at the minimum speed", func() {
				So(rec.speeds[0], ShouldEqual, -state.SpeedRange)
				So(rec.speeds[1], ShouldEqual, -state.SpeedRange+1)
				So(rec.speeds[11], ShouldEqual, -state.SpeedRange)
			})

			Convey("The agent is finished once", func() {
				So(rec.finished, ShouldEqual, 1)
			})

			Convey("Trackers receive every tick", func() {
				So(ret.Data(), ShouldResemble, []float64{10, 10})
			})
		})

		Convey("When learning is disabled", func() {
			config.Learn = false
			o := newTestOnline(env, rec, config, nil, nil)
			So(o.Run(context.Background()), ShouldBeNil)

			So(rec.count("learn"), ShouldEqual, 0)
			So(rec.callbacks[0].learn, ShouldBeFalse)
		})

		Convey("When the nearest car is directly ahead", func() {
			env.cars.Others = []environment.Box{{X: 50, Y: 90}}
			collisions := trackers.NewCollisions("")
			o := newTestOnline(env, rec, config,
				[]tracker.Tracker{collisions}, nil)
			So(o.Run(context.Background()), ShouldBeNil)

			Convey("The speed is forced to the minimum", func() {
				for _, s := range rec.speeds {
					So(s, ShouldEqual, -state.SpeedRange)
				}
				So(o.Speed(), ShouldEqual, -state.SpeedRange)
			})

			Convey("Every tick is a collision", func() {
				So(collisions.Data(), ShouldResemble, []float64{10, 10})
			})
		})

		Convey("When a checkpointer is registered", func() {
			saver := &saveCounter{}
			check := checkpointer.NewNStep(5, saver,
				checkpointer.FilenameEnumerator(0, "weights", ".bin"))
			o := newTestOnline(env, rec, config, nil,
				[]checkpointer.Checkpointer{check})
			So(o.Run(context.Background()), ShouldBeNil)

			So(saver.filenames, ShouldResemble, []string{
				"weights1.bin", "weights2.bin", "weights3.bin", "weights4.bin",
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			o := newTestOnline(env, rec, config, nil, nil)
			err := o.Run(ctx)

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(rec.count("act"), ShouldEqual, 0)
			So(rec.finished, ShouldEqual, 0)
		})

		Convey("When the agent rejects the perception", func() {
			rec.initErr = fmt.Errorf("build: %w", state.ErrPrecondition)
			o := newTestOnline(env, rec, config, nil, nil)
			err := o.Run(context.Background())

			So(errors.Is(err, state.ErrPrecondition), ShouldBeTrue)
			So(rec.count("act"), ShouldEqual, 0)
		})

		Convey("When the agent takes an invalid action", func() {
			rec.action = environment.Action(7)
			o := newTestOnline(env, rec, config, nil, nil)

			err := o.Run(context.Background())
			So(errors.Is(err, value.ErrConfiguration), ShouldBeTrue)
			So(env.tick, ShouldEqual, 0)
		})

		Convey("When the environment fails to step", func() {
			env.stepErr = errors.New("emulator crashed")
			o := newTestOnline(env, rec, config, nil, nil)

			So(o.Run(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestOnlineEpisodeTicks(t *testing.T) {
	Convey("Given the default experiment configuration", t, func() {
		env := &fakeEnv{}
		rec := &recorder{action: environment.Brake}
		config := DefaultConfig()
		config.Episodes = 1

		Convey("An episode lasts exactly 6500 ticks", func() {
			o := newTestOnline(env, rec, config, nil, nil)
			So(o.Run(context.Background()), ShouldBeNil)

			So(len(rec.callbacks), ShouldEqual, 6500)
			So(rec.callbacks[6499].tick, ShouldEqual, 6500)
			So(env.resets, ShouldEqual, 1)
		})
	})
}

func TestNewOnline(t *testing.T) {
	Convey("Given an invalid configuration", t, func() {
		env := &fakeEnv{}
		_, err := NewOnline(env, env, &recorder{}, Config{Episodes: 0,
			EpisodeTicks: 10, Scale: 1}, nil, nil)
		So(err, ShouldNotBeNil)

		_, err = NewOnline(env, env, &recorder{}, Config{Episodes: 1,
			EpisodeTicks: 0, Scale: 1}, nil, nil)
		So(err, ShouldNotBeNil)

		_, err = NewOnline(env, env, nil, DefaultConfig(), nil, nil)
		So(err, ShouldNotBeNil)
	})
}
