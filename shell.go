package kvbench

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Shell is a minimal interactive client for poking at an adapter by hand.
type Shell struct {
	args *Arguments
}

func NewShell(args *Arguments) *Shell {
	return &Shell{
		args: args,
	}
}

var (
	regexCmd = regexp.MustCompile(`\s+`)
)

func parseFieldArgs(parts []string) (Fields, bool) {
	values := make(Fields)
	for _, part := range parts {
		index := strings.Index(part, "=")
		if index <= 0 {
			Printf(`Error: invalid name=value %s`, part)
			return nil, false
		}
		values[part[:index]] = part[index+1:]
	}
	return values, true
}

func printFields(fields Fields) {
	for k, v := range fields {
		Printf("%s=%s", k, v)
	}
}

func (self *Shell) Main() {
	props := self.args.Properties
	Printf("kvbench shell")
	Printf(`Type "help" for command line help`)

	db, err := NewDB(props.GetDefault(PropertyDB, PropertyDBDefault), props)
	if err != nil {
		ExitOnError("fail to create specified database, error: %s", err)
	}
	if err = db.Init(); err != nil {
		ExitOnError("fail to init database, error: %s", err)
	}
	defer db.Cleanup()

	Printf("Connected.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("> ")
		if !scanner.Scan() {
			return
		}
		startTime := time.Now()
		line := scanner.Text()
		switch line {
		case "":
			continue
		case "help":
			self.help()
			continue
		case "quit":
			return
		default:
			parts := regexCmd.Split(line, -1)
			length := len(parts)
			switch parts[0] {
			case "read":
				if length != 2 {
					Printf(`Error: syntax is "read keyname"`)
					continue
				}
				ret, status := db.Read(parts[1])
				Printf("Return code: %s", status)
				printFields(ret)
			case "scan":
				if length != 3 {
					Printf(`Error: syntax is "scan keyname scanlength"`)
					continue
				}
				scanLength, err := strconv.ParseInt(parts[2], 0, 64)
				if err != nil {
					Printf("invalid scanlength: %s", parts[2])
					continue
				}
				ret, status := db.Scan(parts[1], scanLength)
				Printf("Return code: %s", status)
				if len(ret) == 0 {
					Printf("0 records")
					continue
				}
				Printf("--------------------------------")
				for i, fields := range ret {
					Printf("Record %d", i)
					printFields(fields)
					Printf("--------------------------------")
				}
			case "insert", "update", "rmw":
				if length < 3 {
					Printf(`Error: syntax is "%s keyname name1=value1 [name2=value2 ...]"`, parts[0])
					continue
				}
				values, ok := parseFieldArgs(parts[2:])
				if !ok {
					continue
				}
				var status StatusType
				switch parts[0] {
				case "insert":
					status = db.Insert(parts[1], values)
				case "update":
					status = db.Update(parts[1], values)
				default:
					status = db.ReadModifyWrite(parts[1], values)
				}
				Printf("Result: %s", status)
			case "delete":
				if length != 2 {
					Printf(`Error: syntax is "delete keyname"`)
					continue
				}
				Printf("Result: %s", db.Delete(parts[1]))
			default:
				Printf(`Error: unknown command "%s"`, parts[0])
			}
		}
		Printf("%d ms", time.Since(startTime).Milliseconds())
	}
}

func (self *Shell) help() {
	helpFormat := `Commands
  read key - Read a record
  scan key recordcount - Scan starting at key
  insert key name1=value1 [name2=value2 ...] - Insert a new record
  update key name1=value1 [name2=value2 ...] - Update a record
  rmw key name1=value1 [name2=value2 ...] - Read-modify-write a record
  delete key - Delete a record
  quit - Quit`
	Printf("%s", helpFormat)
}
