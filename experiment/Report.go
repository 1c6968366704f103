package experiment

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FeatureStats holds the population mean and standard deviation of a
// single state feature over a Trajectory
type FeatureStats struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Summary summarizes a single Trajectory
type Summary struct {
	Name    string         `json:"name"`
	Return  float64        `json:"return"`
	Steps   int            `json:"steps"`
	End     string         `json:"end"`
	Rewards []float64      `json:"rewards"`
	Actions []float64      `json:"actions"`
	QValues []float64      `json:"q_values,omitempty"`
	States  []FeatureStats `json:"states"`
}

// Report compares the Trajectory of a policy with that of a random
// baseline and, optionally, an optimized schedule. Difference series
// are only present when a schedule was compared.
type Report struct {
	ID        string    `json:"id"`
	Created   time.Time `json:"created"`
	StartYear int       `json:"start_year"`

	Policy   Summary  `json:"policy"`
	Random   Summary  `json:"random"`
	Schedule *Summary `json:"schedule,omitempty"`

	PolicyMinusSchedule []float64 `json:"policy_minus_schedule,omitempty"`
	RandomMinusSchedule []float64 `json:"random_minus_schedule,omitempty"`
}

// Compare compares the policy and random Trajectories, and the schedule
// Trajectory if it is not nil. Feature i of the states is labelled with
// featureNames[i] if given. Episodes may end early, e.g. when a
// temperature ceiling is crossed, so difference series only cover the
// steps which all compared Trajectories share.
func Compare(policy, random Trajectory, schedule *Trajectory,
	featureNames []string) (*Report, error) {
	trajectories := []Trajectory{policy, random}
	if schedule != nil {
		trajectories = append(trajectories, *schedule)
	}
	for _, t := range trajectories {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("compare: %v", err)
		}
	}

	report := &Report{
		ID:      uuid.New().String(),
		Created: time.Now().UTC(),
		Policy:  summarize(policy, featureNames),
		Random:  summarize(random, featureNames),
	}

	if schedule != nil {
		s := summarize(*schedule, featureNames)
		report.Schedule = &s
		report.PolicyMinusSchedule = difference(policy.Rewards,
			schedule.Rewards)
		report.RandomMinusSchedule = difference(random.Rewards,
			schedule.Rewards)
	}

	return report, nil
}

// summarize returns the Summary of a Trajectory
func summarize(t Trajectory, featureNames []string) Summary {
	var actions []float64
	if len(t.Actions) > 0 && len(t.Actions[0]) > 0 {
		actions = t.Action(0)
	}

	var features []FeatureStats
	if len(t.States) > 0 {
		features = make([]FeatureStats, len(t.States[0]))
		for i := range features {
			name := fmt.Sprintf("x%d", i)
			if i < len(featureNames) {
				name = featureNames[i]
			}
			mean, std := stat.PopMeanStdDev(t.Feature(i), nil)
			features[i] = FeatureStats{Name: name, Mean: mean, Std: std}
		}
	}

	return Summary{
		Name:    t.Name,
		Return:  t.Return(),
		Steps:   t.Len(),
		End:     t.End.String(),
		Rewards: append([]float64(nil), t.Rewards...),
		Actions: actions,
		QValues: append([]float64(nil), t.QValues...),
		States:  features,
	}
}

// difference returns a - b elementwise over the steps both share
func difference(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	diff := make([]float64, n)
	floats.SubTo(diff, a[:n], b[:n])
	return diff
}

// Years returns the calendar year of each step of the Report
func (r *Report) Years() []int {
	years := make([]int, r.Policy.Steps)
	for i := range years {
		years[i] = r.StartYear + i
	}
	return years
}

// String returns a textual summary of the Report
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %v\n", r.ID)

	summaries := []Summary{r.Policy, r.Random}
	if r.Schedule != nil {
		summaries = append(summaries, *r.Schedule)
	}
	for _, s := range summaries {
		fmt.Fprintf(&b, "sum of rewards of the %v policy: %.6f (%v steps, "+
			"%v)\n", s.Name, s.Return, s.Steps, s.End)
	}

	if r.Schedule != nil {
		writeDifference(&b, r.Policy, *r.Schedule, r.PolicyMinusSchedule)
		writeDifference(&b, r.Random, *r.Schedule, r.RandomMinusSchedule)
	}

	for _, s := range summaries {
		if len(s.States) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%v states:\n", s.Name)
		for _, f := range s.States {
			fmt.Fprintf(&b, "\t%-6v mean/std: %.6g %.6g\n", f.Name, f.Mean,
				f.Std)
		}
	}
	return b.String()
}

// writeDifference writes the mean of the reward difference series
// diff of a and b
func writeDifference(b *strings.Builder, a, s Summary, diff []float64) {
	if len(diff) == 0 {
		fmt.Fprintf(b, "no common steps of %v and %v\n", a.Name, s.Name)
		return
	}
	fmt.Fprintf(b, "mean reward difference %v - %v: %.6f", a.Name, s.Name,
		stat.Mean(diff, nil))
	if a.Steps != s.Steps {
		fmt.Fprintf(b, " (first %v steps)", len(diff))
	}
	b.WriteString("\n")
}

// Save saves the Report as JSON to the file at path
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("save: could not marshal report: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write report: %v", err)
	}
	return nil
}

// LoadReport loads a Report saved with Save
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadReport: could not read report: %v", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("loadReport: could not unmarshal report: %v",
			err)
	}
	return &r, nil
}
