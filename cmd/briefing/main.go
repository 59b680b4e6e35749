// Command briefing is a terminal daily news briefing.
//
// Usage:
//
//	briefing                   Run the TUI
//	briefing fetch <topic>...  Print briefings for one or more topics
//	briefing saved             List saved briefings
//	briefing saved rm <id>     Delete a saved briefing
//	briefing events            Tail the JSONL event log
//	briefing version           Print version information
package main

func main() {
	Execute()
}
