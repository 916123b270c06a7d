package sed

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// mapping: sed --> Function

//   =    -->   PrintLineNumber
//   d    -->   Delete
//   D    -->   DeleteFirstLine
//   g G  -->   CopyHoldToPattern, AppendHoldToPattern
//   h H  -->   CopyPatternToHold, AppendPatternToHold
//   i    -->   Insert
//   p    -->   Print
//   s    -->   Substitute
//   x    -->   Exchange

// Function is the action of a Command. The set is closed; execute is the
// only place that tells them apart.
type Function interface {
	function()
}

type (
	Delete              struct{}
	DeleteFirstLine     struct{}
	CopyHoldToPattern   struct{}
	AppendHoldToPattern struct{}
	CopyPatternToHold   struct{}
	AppendPatternToHold struct{}
	Print               struct{}
	Exchange            struct{}
	PrintLineNumber     struct{}
)

// Insert writes Text straight to the output.
type Insert struct {
	Text string
}

func (Delete) function()              {}
func (DeleteFirstLine) function()     {}
func (CopyHoldToPattern) function()   {}
func (AppendHoldToPattern) function() {}
func (CopyPatternToHold) function()   {}
func (AppendPatternToHold) function() {}
func (Insert) function()              {}
func (Print) function()               {}
func (Substitute) function()          {}
func (Exchange) function()            {}
func (PrintLineNumber) function()     {}

// action tells the cycle what to do after a function ran.
type action int

const (
	proceed      action = iota // go on with the next command
	endCycle                   // stop, and skip the automatic print
	restartCycle               // run the script again on the pattern space
)

func (e *Engine) execute(fn Function) (action, error) {
	switch fn := fn.(type) {
	case Delete:
		e.pat = ""
		return endCycle, nil
	case DeleteFirstLine:
		nl := strings.IndexByte(e.pat, '\n')
		if nl < 0 {
			e.pat = ""
			return endCycle, nil
		}
		e.pat = e.pat[nl+1:]
		e.logger.Debug("restarting cycle", zap.Int("line", e.lineno))
		return restartCycle, nil
	case CopyHoldToPattern:
		e.pat = e.hold
	case AppendHoldToPattern:
		e.pat += "\n" + e.hold
	case CopyPatternToHold:
		e.hold = e.pat
	case AppendPatternToHold:
		e.hold += "\n" + e.pat
	case Insert:
		return proceed, e.writeLine(fn.Text)
	case Print:
		return proceed, e.writeLine(e.pat)
	case Substitute:
		e.pat = fn.apply(e.pat)
	case Exchange:
		e.pat, e.hold = e.hold, e.pat
	case PrintLineNumber:
		return proceed, e.writeLine(strconv.Itoa(e.lineno))
	default:
		return endCycle, fmt.Errorf("unknown function %T", fn)
	}
	return proceed, nil
}
