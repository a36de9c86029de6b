package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reavox/reavox/internal/bridge"
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
	"github.com/reavox/reavox/internal/host/sim"
	"github.com/reavox/reavox/internal/notify"
	"github.com/reavox/reavox/internal/output"
)

// SimResult is the YAML output of a simulate run.
type SimResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
	State     sim.State    `yaml:"state"           json:"state"`
}

// StepResult is the output for a single step within a run.
type StepResult struct {
	Step      int      `yaml:"step"                json:"step"`
	OK        bool     `yaml:"ok"                  json:"ok"`
	Action    string   `yaml:"action"              json:"action"`
	Error     string   `yaml:"error,omitempty"     json:"error,omitempty"`
	Outcome   string   `yaml:"outcome,omitempty"   json:"outcome,omitempty"`
	Announced []string `yaml:"announced,omitempty" json:"announced,omitempty"`
	Focus     string   `yaml:"focus,omitempty"     json:"focus,omitempty"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run bridge commands against a simulated session",
	Long: `Run a sequence of steps from a YAML list on stdin against an in-memory
session, reporting each step's outcome, what was announced, and the
virtual focus afterward.

Each step is a step type with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error. Track
and item numbers are 1-based as announced; track -1 addresses the
master track.

Supported step types: invoke, touch, select-item, cursor, rename, tempo,
marker, region, mute, solo, arm, push-undo, advance, expect, expect-focus

Example:
  reavox simulate <<'EOF'
  - invoke: { id: REAVOX_NEXT_TRACK }
  - invoke: { id: REAVOX_TOGGLE_MUTE }
  - expect: { contains: "muted" }
  EOF`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("project", "", "Project fixture YAML (default: built-in demo session)")
	simulateCmd.Flags().String("settings", "", "Announcement settings YAML file")
	simulateCmd.Flags().String("script", "", "Read steps from a file instead of stdin")
	simulateCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
	simulateCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	projectPath, _ := cmd.Flags().GetString("project")
	settingsPath, _ := cmd.Flags().GetString("settings")
	scriptPath, _ := cmd.Flags().GetString("script")
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	var data []byte
	var err error
	if scriptPath != "" {
		data, err = os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("no steps provided — pipe a YAML list or use --script")
	}

	var rawSteps []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &rawSteps); err != nil {
		return fmt.Errorf("parse steps: %w", err)
	}
	if len(rawSteps) == 0 {
		return fmt.Errorf("no steps provided — expected a YAML list of steps")
	}

	sess, err := newSimSession(projectPath, settingsPath)
	if err != nil {
		return err
	}

	return output.Print(sess.run(rawSteps, stopOnError))
}

// simSession is one simulated bridge run: the in-memory host, the bridge
// registered against it, and a recorder catching every announcement.
type simSession struct {
	host   *sim.Host
	bridge *bridge.Bridge
	rec    *notify.Recorder
}

func newSimSession(projectPath, settingsPath string) (*simSession, error) {
	h, err := loadSim(projectPath)
	if err != nil {
		return nil, err
	}
	set, err := loadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	reg, err := buildRegistry(set)
	if err != nil {
		return nil, err
	}

	// stdout carries the run result; handler failures log to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rec := notify.NewRecorder(0)
	br, err := bridge.New(h, reg, rec, logger)
	if err != nil {
		return nil, err
	}
	return &simSession{host: h, bridge: br, rec: rec}, nil
}

func (s *simSession) run(rawSteps []map[string]map[string]interface{}, stopOnError bool) SimResult {
	results := make([]StepResult, 0, len(rawSteps))
	completed := 0
	hasFailure := false
	var lastErr string

	for i, step := range rawSteps {
		stepNum := i + 1

		if len(step) != 1 {
			errMsg := fmt.Sprintf("expected exactly one step key, got %d", len(step))
			results = append(results, StepResult{Step: stepNum, OK: false, Error: errMsg})
			hasFailure = true
			if stopOnError {
				lastErr = fmt.Sprintf("step %d: %s", stepNum, errMsg)
				goto done
			}
			continue
		}

		for action, params := range step {
			before := s.rec.Len()
			result, err := s.executeStep(action, params)
			result.Step = stepNum
			result.Announced = s.announcedSince(before)
			result.Focus = s.bridge.Tracker().Current().String()
			if err != nil {
				result.OK = false
				result.Error = err.Error()
				results = append(results, result)
				hasFailure = true
				if stopOnError {
					lastErr = fmt.Sprintf("step %d: %s", stepNum, err.Error())
					goto done
				}
			} else {
				result.OK = true
				completed++
				results = append(results, result)
			}
		}
	}

done:
	return SimResult{
		OK:        !hasFailure,
		Steps:     len(rawSteps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
		State:     s.host.Snapshot(),
	}
}

// announcedSince returns the announcement texts emitted after the recorder
// held before entries.
func (s *simSession) announcedSince(before int) []string {
	texts := s.rec.Texts()
	if before >= len(texts) {
		return nil
	}
	return texts[before:]
}

func (s *simSession) executeStep(action string, params map[string]interface{}) (StepResult, error) {
	switch action {
	case "invoke":
		return s.executeInvoke(params)
	case "touch":
		return s.executeTouch(params)
	case "select-item":
		return s.executeSelectItem(params)
	case "cursor":
		return s.executeCursor(params)
	case "rename":
		return s.executeRename(params)
	case "tempo":
		return s.executeTempo(params)
	case "marker":
		return s.executeMarker(params)
	case "region":
		return s.executeRegion(params)
	case "mute", "solo", "arm":
		return s.executeTrackFlag(action, params)
	case "push-undo":
		return s.executePushUndo(params)
	case "advance":
		return s.executeAdvance(params)
	case "expect":
		return s.executeExpect(params)
	case "expect-focus":
		return s.executeExpectFocus(params)
	default:
		return StepResult{Action: action}, fmt.Errorf("unknown step type %q — supported: invoke, touch, select-item, cursor, rename, tempo, marker, region, mute, solo, arm, push-undo, advance, expect, expect-focus", action)
	}
}

func (s *simSession) executeInvoke(params map[string]interface{}) (StepResult, error) {
	id := stringParam(params, "id", "")
	section := intParam(params, "section", command.SectionMain)
	if id == "" {
		return StepResult{Action: "invoke"}, fmt.Errorf("specify a command id")
	}

	outcome := s.bridge.Invoke(section, id)
	result := StepResult{Action: "invoke", Outcome: outcome.String()}
	switch outcome {
	case bridge.NotMine:
		return result, fmt.Errorf("command %q is not registered in section %d", id, section)
	case bridge.HandledWithFailure:
		return result, fmt.Errorf("command %q failed", id)
	}
	return result, nil
}

// trackParam resolves the 1-based track number in params to a host index.
func (s *simSession) trackParam(params map[string]interface{}) (int, error) {
	n := intParam(params, "track", 0)
	switch {
	case n > 0:
		return n - 1, nil
	case n == host.MasterTrack:
		return host.MasterTrack, nil
	default:
		return 0, fmt.Errorf("specify a 1-based track number (-1 for master)")
	}
}

func (s *simSession) executeTouch(params map[string]interface{}) (StepResult, error) {
	track, err := s.trackParam(params)
	if err != nil {
		return StepResult{Action: "touch"}, err
	}
	if _, ok := s.host.TrackName(track); !ok {
		return StepResult{Action: "touch"}, fmt.Errorf("no track %d", intParam(params, "track", 0))
	}
	s.host.TouchTrack(track)
	return StepResult{Action: "touch"}, nil
}

func (s *simSession) executeSelectItem(params map[string]interface{}) (StepResult, error) {
	track, err := s.trackParam(params)
	if err != nil {
		return StepResult{Action: "select-item"}, err
	}
	item := intParam(params, "item", 0)
	if item <= 0 {
		return StepResult{Action: "select-item"}, fmt.Errorf("specify a 1-based item number")
	}
	if _, ok := s.host.ItemName(track, item-1); !ok {
		return StepResult{Action: "select-item"}, fmt.Errorf("no item %d on track %d", item, intParam(params, "track", 0))
	}
	s.host.SelectItem(track, item-1)
	return StepResult{Action: "select-item"}, nil
}

func (s *simSession) executeCursor(params map[string]interface{}) (StepResult, error) {
	pos := floatParam(params, "position", -1)
	if pos < 0 {
		return StepResult{Action: "cursor"}, fmt.Errorf("specify a position in seconds")
	}
	s.host.SetCursorPosition(pos)
	return StepResult{Action: "cursor"}, nil
}

func (s *simSession) executeRename(params map[string]interface{}) (StepResult, error) {
	track, err := s.trackParam(params)
	if err != nil {
		return StepResult{Action: "rename"}, err
	}
	name := stringParam(params, "name", "")
	if name == "" {
		return StepResult{Action: "rename"}, fmt.Errorf("specify a name")
	}
	s.host.RenameTrack(track, name)
	return StepResult{Action: "rename"}, nil
}

func (s *simSession) executeTempo(params map[string]interface{}) (StepResult, error) {
	bpm := floatParam(params, "bpm", 0)
	timesig := intParam(params, "timesig", 0)
	if bpm <= 0 && timesig <= 0 {
		return StepResult{Action: "tempo"}, fmt.Errorf("specify bpm or timesig")
	}
	s.host.SetTempo(bpm, timesig)
	return StepResult{Action: "tempo"}, nil
}

func (s *simSession) executeMarker(params map[string]interface{}) (StepResult, error) {
	name := stringParam(params, "name", "")
	if name == "" {
		return StepResult{Action: "marker"}, fmt.Errorf("specify a name")
	}
	s.host.AddMarker(name, floatParam(params, "position", 0))
	return StepResult{Action: "marker"}, nil
}

func (s *simSession) executeRegion(params map[string]interface{}) (StepResult, error) {
	name := stringParam(params, "name", "")
	if name == "" {
		return StepResult{Action: "region"}, fmt.Errorf("specify a name")
	}
	pos := floatParam(params, "position", 0)
	end := floatParam(params, "end", 0)
	if end <= pos {
		return StepResult{Action: "region"}, fmt.Errorf("region end must be after position")
	}
	s.host.AddRegion(name, pos, end)
	return StepResult{Action: "region"}, nil
}

func (s *simSession) executeTrackFlag(action string, params map[string]interface{}) (StepResult, error) {
	track, err := s.trackParam(params)
	if err != nil {
		return StepResult{Action: action}, err
	}
	on := boolParam(params, "on", true)
	switch action {
	case "mute":
		s.host.SetTrackMuted(track, on)
	case "solo":
		s.host.SetTrackSoloed(track, on)
	case "arm":
		s.host.SetTrackArmed(track, on)
	}
	return StepResult{Action: action}, nil
}

func (s *simSession) executePushUndo(params map[string]interface{}) (StepResult, error) {
	label := stringParam(params, "label", "")
	if label == "" {
		return StepResult{Action: "push-undo"}, fmt.Errorf("specify a label")
	}
	s.host.PushUndo(label)
	return StepResult{Action: "push-undo"}, nil
}

func (s *simSession) executeAdvance(params map[string]interface{}) (StepResult, error) {
	seconds := floatParam(params, "seconds", 0)
	if seconds <= 0 {
		return StepResult{Action: "advance"}, fmt.Errorf("seconds must be > 0")
	}
	s.host.AdvancePlay(seconds)
	return StepResult{Action: "advance"}, nil
}

func (s *simSession) executeExpect(params map[string]interface{}) (StepResult, error) {
	want := stringParam(params, "text", "")
	contains := stringParam(params, "contains", "")
	if want == "" && contains == "" {
		return StepResult{Action: "expect"}, fmt.Errorf("specify text or contains")
	}
	last, ok := s.rec.Last()
	if !ok {
		return StepResult{Action: "expect"}, fmt.Errorf("nothing announced yet")
	}
	if want != "" && last.Text != want {
		return StepResult{Action: "expect"}, fmt.Errorf("last announcement %q, want %q", last.Text, want)
	}
	if contains != "" && !strings.Contains(last.Text, contains) {
		return StepResult{Action: "expect"}, fmt.Errorf("last announcement %q does not contain %q", last.Text, contains)
	}
	return StepResult{Action: "expect"}, nil
}

// focusKinds guards expect-focus against typos in scripts.
var focusKinds = map[string]focus.Kind{
	"none":  focus.None,
	"track": focus.Track,
	"item":  focus.Item,
	"ruler": focus.Ruler,
}

func (s *simSession) executeExpectFocus(params map[string]interface{}) (StepResult, error) {
	want := stringParam(params, "kind", "")
	wantKind, ok := focusKinds[want]
	if !ok {
		return StepResult{Action: "expect-focus"}, fmt.Errorf("unknown focus kind %q (use none, track, item, ruler)", want)
	}
	if got := s.bridge.Tracker().Current(); got != wantKind {
		return StepResult{Action: "expect-focus"}, fmt.Errorf("focus is %s, want %s", got, wantKind)
	}
	return StepResult{Action: "expect-focus"}, nil
}

// Parameter extraction helpers for step maps.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that YAML may parse as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func floatParam(params map[string]interface{}, key string, defaultVal float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
