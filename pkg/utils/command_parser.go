package utils

import (
	"strings"
)

// Command is a tokenized chat line
type Command struct {
	Verb string
	Args []string
}

// ParseCommand upper-cases and splits a chat line. The verb loses a leading
// "/" and any "@botname" suffix. A flight code written with a space
// ("FR 1234") is re-joined into a single argument.
func ParseCommand(text string) (Command, bool) {
	tokens := strings.Fields(strings.ToUpper(text))
	if len(tokens) == 0 {
		return Command{}, false
	}
	verb := strings.TrimPrefix(tokens[0], "/")
	if i := strings.IndexByte(verb, '@'); i >= 0 {
		verb = verb[:i]
	}
	return Command{Verb: verb, Args: JoinSplitFlightCode(tokens[1:])}, true
}

// JoinSplitFlightCode merges a leading designator token with the number
// token that follows it: ["FR", "1234", ...] -> ["FR1234", ...].
func JoinSplitFlightCode(args []string) []string {
	if len(args) < 2 || len(args[0]) != 2 || !flightNumber.MatchString(args[1]) {
		return args
	}
	if !gluedFlightCode.MatchString(args[0] + args[1]) {
		return args
	}
	out := make([]string, 0, len(args)-1)
	out = append(out, args[0]+args[1])
	return append(out, args[2:]...)
}
