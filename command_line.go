package kvbench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	Commands = map[string]bool{
		"load":  true,
		"run":   true,
		"shell": true,
	}
	OptionPrefixes = []string{"--", "-"}
	OptionList     = []*Option{
		{
			Name:        "P",
			HasArgument: true,
			Doc:         "specify workload file",
		},
		{
			Name:        "p",
			HasArgument: true,
			Doc:         "specify a property value",
		},
		{
			Name:        "db",
			HasArgument: true,
			Doc:         "path of the backing store",
		},
		{
			Name:        "d",
			HasArgument: true,
			Doc:         "use the specified database adapter",
		},
		{
			Name:        "threads",
			HasArgument: true,
			Doc:         "number of client routines",
		},
		{
			Name: "h",
			Doc:  "show this help message and exit",
		},
		{
			Name: "help",
			Doc:  "show this help message and exit",
		},
	}
	Options = make(map[string]*Option)

	ProgramName = ""
)

type Option struct {
	Name        string
	HasArgument bool
	Doc         string
}

type Arguments struct {
	Command string
	Options map[string]string
	Properties
}

func Usage() {
	usageFormat := `usage: %s command [options]

Commands:
  load               Execute the load phase
  run                Execute the transaction phase
  shell              Interactive mode

Options:
  -P filename      : specify workload file (required for load and run)
  -p name=value    : specify a property value
  -db path         : path of the backing store (default %s)
  -d adapter       : database adapter: pebble, kevo, mysql or basic
                     (default %s; can also set the "db" property)
  -threads n       : number of client routines (default %s)
  -h, --help       : show this help message and exit`
	EPrintf(usageFormat, ProgramName, PropertyDBPathDefault,
		PropertyDBDefault, PropertyThreadCountDefault)
}

func init() {
	ProgramName = filepath.Base(os.Args[0])

	for i := 0; i < len(OptionList); i++ {
		o := OptionList[i]
		Options[o.Name] = o
	}
}

func ExitOnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func exitOnUsageError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	Usage()
	os.Exit(1)
}

func ParseArgs() *Arguments {
	if len(os.Args) <= 1 {
		exitOnUsageError("no enough argument")
	}

	firstArg := os.Args[1]
	if firstArg == "-h" || firstArg == "--help" {
		Usage()
		os.Exit(0)
	}

	command := firstArg
	if _, ok := Commands[command]; !ok {
		exitOnUsageError("unsupported command: %s", command)
	}

	opts := make(map[string]string)
	props := NewProperties()
	// -p overrides are collected separately and merged after the loop,
	// so they beat the workload file wherever they appear on the line.
	overrides := NewProperties()
	for i := 2; i < len(os.Args); i++ {
		a := os.Args[i]
		for _, p := range OptionPrefixes {
			if strings.HasPrefix(a, p) {
				a = strings.TrimPrefix(a, p)
				break
			}
		}
		option, ok := Options[a]
		if !ok {
			exitOnUsageError("unknown option: %s", os.Args[i])
		}
		if !option.HasArgument {
			switch option.Name {
			case "h", "help":
				Usage()
				os.Exit(0)
			default:
				opts[option.Name] = "true"
			}
			continue
		}
		i++
		if !(i < len(os.Args)) {
			exitOnUsageError("missing argument for option: %s", option.Name)
		}
		arg := os.Args[i]
		opts[option.Name] = arg
		switch option.Name {
		case "P":
			propsFromFile, err := LoadProperties(arg)
			if err != nil {
				ExitOnError("fail to load workload file %s: %s", arg, err)
			}
			props.Merge(propsFromFile)
		case "p":
			// it's a property, should be in `k=v` form
			index := strings.Index(arg, "=")
			if index <= 0 {
				exitOnUsageError("invalid property: %s", arg)
			}
			overrides.Add(arg[:index], arg[index+1:])
		case "db":
			overrides.Add(PropertyDBPath, arg)
		case "d":
			overrides.Add(PropertyDB, arg)
		case "threads":
			overrides.Add(PropertyThreadCount, arg)
		}
	}
	props.Merge(overrides)
	return &Arguments{
		Command:    command,
		Options:    opts,
		Properties: props,
	}
}

func Main() {
	args := ParseArgs()
	if args.Command != "shell" {
		if _, ok := args.Options["P"]; !ok {
			exitOnUsageError("workload file not specified (-P option)")
		}
	}
	var client Client
	switch args.Command {
	case "load":
		client = NewLoader(args)
	case "run":
		client = NewRunner(args)
	default:
		client = NewShell(args)
	}
	client.Main()
}
