package runner

// Exit codes form the tool's CLI contract.
const (
	// ExitOK means no problems were encountered (and, under extended
	// status, that no suggestion was given).
	ExitOK = 0
	// ExitUsage means the command line was specified incorrectly.
	ExitUsage = 1
	// ExitFileOpen means a file could not be opened or rewritten.
	ExitFileOpen = 2
	// ExitFileParse means a file could not be parsed.
	ExitFileParse = 3
	// ExitSuggestion means extended status was requested and a suggestion
	// was given.
	ExitSuggestion = 4
	// ExitFrontend means the front end failed internally.
	ExitFrontend = 5
	// ExitNoMemory means an allocation failed. The Go runtime aborts the
	// process on exhaustion, so this code is defined for contract
	// compatibility but never returned.
	ExitNoMemory = 6
)
