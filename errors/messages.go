package errors

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

const width = 78

// Report renders the error for a human reading build output.
func (e *Error) Report() string {
	var b strings.Builder
	b.WriteString(color.HiRedString("ERROR: "))
	b.WriteString(wordwrap.WrapString(e.Error(), width))
	b.WriteString("\n")

	if e.Troubleshooting != "" {
		b.WriteString("\n")
		b.WriteString(color.HiYellowString("TROUBLESHOOTING:"))
		b.WriteString("\n")
		b.WriteString(wordwrap.WrapString(e.Troubleshooting, width))
		b.WriteString("\n")
	}

	if e.Link != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.WrapString("For more information, see: "+color.HiBlueString(e.Link), width))
		b.WriteString("\n")
	}

	return b.String()
}

// Report renders any error, using Error.Report when err is or wraps an *Error.
func Report(err error) string {
	var e *Error
	if As(err, &e) {
		return e.Report()
	}
	return color.HiRedString("ERROR: ") + wordwrap.WrapString(err.Error(), width) + "\n"
}
