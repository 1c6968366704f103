package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/godice/agent"
	env "github.com/samuelfneumann/godice/environment"
	"github.com/samuelfneumann/godice/experiment/trackers"
	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/sirupsen/logrus"
)

// Evaluation is an Experiment which runs a fixed Policy on an
// Environment. If a Critic is set, it scores every action the Policy
// takes, in the state the action is taken in.
type Evaluation struct {
	env.Environment
	policy   agent.Policy
	critic   agent.Critic
	name     string
	maxSteps int
	trackers []trackers.Tracker

	// OnStep, if non-nil, is called after every environmental step
	OnStep func(t ts.TimeStep)
}

// NewEvaluation creates and returns a new Evaluation of Policy p on
// Environment e. Episodes are run until they end or until maxSteps
// actions have been taken, whichever comes first. If maxSteps <= 0,
// episodes are run until they end.
func NewEvaluation(name string, e env.Environment, p agent.Policy,
	maxSteps int, t ...trackers.Tracker) (*Evaluation, error) {
	if e == nil || p == nil {
		return nil, fmt.Errorf("newEvaluation: environment and policy " +
			"must not be nil")
	}
	return &Evaluation{
		Environment: e,
		policy:      p,
		name:        name,
		maxSteps:    maxSteps,
		trackers:    t,
	}, nil
}

// SetCritic sets the Critic which scores the actions of the Policy
func (e *Evaluation) SetCritic(c agent.Critic) {
	e.critic = c
}

// Register registers a Tracker with the Evaluation so that data
// generated during the experiment can be tracked and saved
func (e *Evaluation) Register(t trackers.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Save saves the data cached by all registered Trackers to disk
func (e *Evaluation) Save() error {
	for _, t := range e.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// RunEpisode runs a single episode of the Policy and returns the
// resulting Trajectory. The context is checked before every step.
func (e *Evaluation) RunEpisode(ctx context.Context) (Trajectory, error) {
	rewards := trackers.NewRewards("")
	actions := trackers.NewActions("")
	states := trackers.NewStates("")
	values := trackers.NewQValues("")

	all := append([]trackers.Tracker{rewards, actions, states, values},
		e.trackers...)

	step, err := e.Environment.Reset()
	if err != nil {
		return Trajectory{}, fmt.Errorf("runEpisode: could not reset: %v",
			err)
	}
	track(all, step)

	for n := 0; !step.Last() && (e.maxSteps <= 0 || n < e.maxSteps); n++ {
		if err := ctx.Err(); err != nil {
			return Trajectory{}, fmt.Errorf("runEpisode: %w", err)
		}

		action, err := e.policy.SelectAction(step)
		if err != nil {
			return Trajectory{}, fmt.Errorf("runEpisode: step %v: could "+
				"not select action: %v", step.Number, err)
		}

		if e.critic != nil {
			q, err := e.critic.Value(step.Observation, action)
			if err != nil {
				return Trajectory{}, fmt.Errorf("runEpisode: step %v: "+
					"could not compute value: %v", step.Number, err)
			}
			for _, t := range all {
				if vt, ok := t.(trackers.ValueTracker); ok {
					vt.TrackValue(q)
				}
			}
		}

		for _, t := range all {
			if at, ok := t.(trackers.ActionTracker); ok {
				at.TrackAction(action)
			}
		}

		step, _, err = e.Environment.Step(action)
		if err != nil {
			return Trajectory{}, fmt.Errorf("runEpisode: %v", err)
		}
		track(all, step)

		if e.OnStep != nil {
			e.OnStep(step)
		}
	}

	logrus.Debugf("%v: episode finished after %v steps (%v)", e.name,
		step.Number, step.EndType)

	return Trajectory{
		Name:    e.name,
		Rewards: rewards.Data(),
		Actions: actions.Data(),
		States:  states.Data(),
		QValues: values.Data(),
		End:     step.EndType,
	}, nil
}

// track sends a TimeStep to each Tracker
func track(all []trackers.Tracker, step ts.TimeStep) {
	for _, t := range all {
		t.Track(step)
	}
}

// Rollout runs a single evaluation episode of Policy p on Environment
// e. If c is non-nil, it scores every action taken.
func Rollout(ctx context.Context, name string, e env.Environment,
	p agent.Policy, c agent.Critic, maxSteps int) (Trajectory, error) {
	eval, err := NewEvaluation(name, e, p, maxSteps)
	if err != nil {
		return Trajectory{}, fmt.Errorf("rollout: %v", err)
	}
	if c != nil {
		eval.SetCritic(c)
	}
	return eval.RunEpisode(ctx)
}
