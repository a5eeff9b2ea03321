package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	yml "github.com/go-yaml/yaml"

	"github.com/mdmayfield/ctlmap/ctlval"
	"github.com/mdmayfield/ctlmap/modecfg"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "dev"

	// ConfigFileName is what it sounds like
	ConfigFileName = "ctlmap.yml"
)

func root() {
	str := `ctlmap processes control events for one controller mapping
the way the embedding host would, which makes it a bench tool for
dialing in mapping configurations before wiring them up.

Usage:
	ctlmap <command>

Commands:
	sim
	mkconf
	conf
	help
	version`
	fmt.Println(str)
}

func help() {
	str := `ctlmap is amenable to configuration via its .yaml file.  For a primer on YAML, see
https://yaml.org/start.html

When no configuration is provided, the defaults are used.
The command mkconf generates the configuration file with the default values.

The sim command takes control events as arguments and prints what the
mapping emits for each one against the configured target:

	ctlmap sim abs:0.5 rel:-3 fb:0.25

abs:<v> is an absolute amplitude in [0,1], rel:<n> a nonzero encoder
tick, fb:<v> prints the feedback value for a target value instead.`
	fmt.Println(str)
}

func mkconf() {
	c := modecfg.Default()
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	err = yml.NewEncoder(f).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c, err := modecfg.Load(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	err = yml.NewEncoder(os.Stdout).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("ctlmap version %v\n", Version)
}

func parseEvent(s string) (ctlval.ControlValue, bool, error) {
	switch {
	case strings.HasPrefix(s, "abs:"):
		f, err := strconv.ParseFloat(s[4:], 64)
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		v, err := ctlval.NewUnitValue(f)
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		return ctlval.AbsoluteControlValue(v), false, nil
	case strings.HasPrefix(s, "rel:"):
		n, err := strconv.Atoi(s[4:])
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		i, err := ctlval.NewDiscreteIncrement(n)
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		return ctlval.RelativeControlValue(i), false, nil
	case strings.HasPrefix(s, "fb:"):
		f, err := strconv.ParseFloat(s[3:], 64)
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		v, err := ctlval.NewUnitValue(f)
		if err != nil {
			return ctlval.ControlValue{}, false, err
		}
		return ctlval.AbsoluteControlValue(v), true, nil
	default:
		return ctlval.ControlValue{}, false, fmt.Errorf("event %q is not abs:<v>, rel:<n> or fb:<v>", s)
	}
}

func sim(events []string) {
	c, err := modecfg.Load(ConfigFileName)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	m, err := c.Mode()
	if err != nil {
		log.Fatal(err)
	}
	target, err := c.Target.Build()
	if err != nil {
		log.Fatal(err)
	}
	for _, raw := range events {
		ev, feedback, err := parseEvent(raw)
		if err != nil {
			log.Fatal(err)
		}
		if feedback {
			out, ok := m.Feedback(ev.Absolute())
			if !ok {
				fmt.Printf("%v\t-> no feedback\n", raw)
				continue
			}
			fmt.Printf("%v\t-> %v\n", raw, out.Get())
			continue
		}
		out, ok := m.Control(ev, target)
		if !ok {
			fmt.Printf("%v\t-> no output\n", raw)
			continue
		}
		fmt.Printf("%v\t-> %v\n", raw, out)
	}
}

func main() {
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	cmd := strings.ToLower(args[1])
	switch cmd {
	case "help":
		help()
		return
	case "mkconf":
		mkconf()
		return
	case "conf":
		printconf()
		return
	case "sim":
		sim(args[2:])
		return
	case "version":
		pversion()
		return
	default:
		log.Fatal("unknown command")
	}
}
