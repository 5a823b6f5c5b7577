package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nhle/goal-tracker/internal/goals"
	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/store"
)

// stdout is where subcommands print; tests replace it.
var stdout io.Writer = os.Stdout

// runCLI parses CLI subcommands. Returns (handled, exitCode).
func runCLI(args []string) (bool, int) {
	if len(args) == 0 {
		return false, 0
	}
	switch args[0] {
	case "help", "-h", "--help":
		printHelp()
		return true, 0
	case "list":
		return true, cliList(args[1:])
	case "add-goal":
		return true, cliAddGoal(args[1:])
	case "add-todo":
		return true, cliAddTodo(args[1:])
	case "toggle":
		return true, cliToggle(args[1:])
	case "reset":
		return true, cliReset(args[1:])
	case "export":
		return true, cliExport(args[1:])
	case "info":
		return true, cliInfo(args[1:])
	case "config":
		return true, cliConfig(args[1:])
	default:
		// Not a CLI subcommand; fall back to TUI
		return false, 0
	}
}

func printHelp() {
	fmt.Fprint(stdout, `goaltracker - daily goals and checklists

Usage:
  goaltracker [--config FILE] [--data-dir DIR] [--driver file|sqlite]
  goaltracker <command> [flags]

Commands:
  list       print goals and today's items (--json for the raw document)
  add-goal   --title T [--emoji E] [--color C] [--daily]
  add-todo   --goal ID|TITLE --text T [--days mon,wed,...]
             (--days shapes today's item; the routine itself repeats daily)
  toggle     --goal ID|TITLE --todo ID|TEXT
  reset      run the daily reset now
  export     [--format json|yaml] [--out FILE]
  info       show the config file, storage driver and data location
  config     print the effective config (--write saves it to --config)
  help       show this help

Every command accepts --config, --data-dir and --driver.
`)
}

// withEngine parses the shared flags, opens the engine and runs fn.
func withEngine(fs *flag.FlagSet, args []string, fn func(*goals.Store) int) int {
	opts := bindGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	engine, st, err := openEngine(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer st.Close()
	return fn(engine)
}

func cliList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "output the JSON document")
	return withEngine(fs, args, func(s *goals.Store) int {
		list := s.Goals()
		if *jsonOut {
			data, err := model.EncodeGoals(list)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Fprintln(stdout, string(data))
			return 0
		}
		for i, g := range list {
			fmt.Fprintf(stdout, "%d. %s\n", i+1, goalLine(g))
			for _, it := range g.Todos {
				fmt.Fprintf(stdout, "   %s\n", itemLine(g, it))
			}
		}
		return 0
	})
}

func goalLine(g model.Goal) string {
	var b strings.Builder
	if g.Emoji != "" {
		b.WriteString(g.Emoji + " ")
	}
	b.WriteString(g.Title)
	if g.IsDailyRepeat {
		b.WriteString(" (daily)")
	}
	fmt.Fprintf(&b, " %d/%d [%s]", g.CompletedCount(), len(g.Todos), g.ID)
	return b.String()
}

func itemLine(g model.Goal, it model.Item) string {
	box := "[ ]"
	if it.IsCompleted {
		box = "[x]"
	}
	line := box + " " + it.Content
	if g.IsDailyRepeat && len(it.RepeatDays) > 0 && len(it.RepeatDays) < model.DaysPerWeek {
		labels := make([]string, len(it.RepeatDays))
		for i, d := range it.RepeatDays {
			labels[i] = model.WeekdayLabel(d)
		}
		line += " (" + strings.Join(labels, ",") + ")"
	}
	return line + " [" + it.ID + "]"
}

func cliAddGoal(args []string) int {
	fs := flag.NewFlagSet("add-goal", flag.ContinueOnError)
	title := fs.String("title", "", "goal title")
	emoji := fs.String("emoji", "", "goal emoji")
	color := fs.String("color", "blue", "color name")
	daily := fs.Bool("daily", false, "regenerate items every day")
	return withEngine(fs, args, func(s *goals.Store) int {
		t := strings.TrimSpace(*title)
		if t == "" {
			fmt.Fprintln(os.Stderr, "--title is required")
			return 2
		}
		g := s.CreateGoal(t, *emoji, *color, *daily)
		fmt.Fprintln(stdout, g.ID)
		return 0
	})
}

func cliAddTodo(args []string) int {
	fs := flag.NewFlagSet("add-todo", flag.ContinueOnError)
	goalRef := fs.String("goal", "", "goal id or title")
	text := fs.String("text", "", "item text")
	days := fs.String("days", "", "weekdays for today's item only (mon..sun or 0..6); the routine repeats daily until edited")
	return withEngine(fs, args, func(s *goals.Store) int {
		t := strings.TrimSpace(*text)
		if t == "" {
			fmt.Fprintln(os.Stderr, "--text is required")
			return 2
		}
		repeat, err := parseDays(*days)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		g, ok := resolveGoal(s, *goalRef)
		if !ok {
			fmt.Fprintf(os.Stderr, "goal %q not found\n", *goalRef)
			return 1
		}
		if err := s.AddTodo(g.ID, t, repeat); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	})
}

func cliToggle(args []string) int {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	goalRef := fs.String("goal", "", "goal id or title")
	todoRef := fs.String("todo", "", "item id or text")
	return withEngine(fs, args, func(s *goals.Store) int {
		g, ok := resolveGoal(s, *goalRef)
		if !ok {
			fmt.Fprintf(os.Stderr, "goal %q not found\n", *goalRef)
			return 1
		}
		id := *todoRef
		for _, it := range g.Todos {
			if it.ID == *todoRef || strings.EqualFold(it.Content, *todoRef) {
				id = it.ID
				break
			}
		}
		if err := s.ToggleTodo(g.ID, id); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	})
}

func cliReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	return withEngine(fs, args, func(s *goals.Store) int {
		// Open already ran the pass; this reports anything still due.
		n := s.RunDailyReset()
		fmt.Fprintf(stdout, "%d goal(s) reset\n", n)
		return 0
	})
}

func cliExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "json", "json|yaml")
	out := fs.String("out", "", "write to file instead of stdout")
	return withEngine(fs, args, func(s *goals.Store) int {
		var (
			data []byte
			err  error
		)
		switch strings.ToLower(*format) {
		case "json":
			data, err = model.EncodeGoals(s.Goals())
		case "yaml", "yml":
			data, err = model.EncodeGoalsYAML(s.Goals())
		default:
			fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
			return 2
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *out == "" {
			fmt.Fprintln(stdout, string(data))
			return 0
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	})
}

func cliInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	opts := bindGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	engine, st, err := openEngine(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer st.Close()

	fmt.Fprintf(stdout, "config:  %s\n", opts.configPath)
	fmt.Fprintf(stdout, "driver:  %s\n", cfg.Storage.Driver)
	fmt.Fprintf(stdout, "data:    %s\n", store.Location(st))
	fmt.Fprintf(stdout, "goals:   %d\n", len(engine.Goals()))
	return 0
}

func cliConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	opts := bindGlobalFlags(fs)
	write := fs.Bool("write", false, "save the effective config to --config")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *write {
		if err := model.SaveConfig(opts.configPath, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.configPath)
		return 0
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprint(stdout, string(data))
	return 0
}

// resolveGoal finds a goal by id, falling back to a case-insensitive title.
func resolveGoal(s *goals.Store, ref string) (model.Goal, bool) {
	if g, ok := s.Goal(ref); ok {
		return g, true
	}
	for _, g := range s.Goals() {
		if strings.EqualFold(g.Title, ref) {
			return g, true
		}
	}
	return model.Goal{}, false
}

// parseDays accepts weekday names (mon, Tue, ...) or indices 0..6.
func parseDays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil {
			if n < 0 || n >= model.DaysPerWeek {
				return nil, fmt.Errorf("weekday %d out of range 0..6", n)
			}
			out = append(out, n)
			continue
		}
		found := false
		for d := 0; d < model.DaysPerWeek; d++ {
			if strings.EqualFold(p, model.WeekdayLabel(d)) {
				out = append(out, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
	}
	return model.NormalizeDays(out), nil
}
