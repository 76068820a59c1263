package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/smcctl/internal/iokit"
	"github.com/danmuck/smcctl/internal/smc"
	"github.com/danmuck/smcctl/internal/smc/wire"
)

// Formatter renders engine results for the terminal. Values go to Out,
// per-step enumeration errors to ErrOut.
type Formatter struct {
	Out    io.Writer
	ErrOut io.Writer
	Raw    bool
}

func (f *Formatter) PrintValue(kv smc.KeyValue) {
	fmt.Fprintln(f.Out, f.formatValue(kv))
}

func (f *Formatter) formatValue(kv smc.KeyValue) string {
	if !f.Raw {
		return kv.String()
	}
	if kv.Info.Size == 0 {
		return "no data"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s size: %d(bytes", kv.Key, kv.Info.Type, kv.Info.Size)
	for _, c := range kv.ValidBytes() {
		fmt.Fprintf(&b, " %02x", c)
	}
	b.WriteString(")")
	return b.String()
}

func (f *Formatter) PrintInfo(key wire.Key, info wire.KeyInfo) {
	fmt.Fprintf(f.Out, "%s type: %s size: %d attributes: %#04x\n",
		key, info.Type, info.Size, info.Attributes)
}

func (f *Formatter) PrintCount(n uint32) {
	fmt.Fprintln(f.Out, n)
}

// PrintStepError renders one failed enumeration step, keeping the
// progressive shape of the error: whatever the step learned before
// failing is shown, the rest is omitted.
func (f *Formatter) PrintStepError(se *smc.StepError) {
	var b strings.Builder
	if se.KeyKnown {
		fmt.Fprintf(&b, "%s ", se.Key)
	}
	if se.InfoKnown {
		fmt.Fprintf(&b, "%s size: %d ", se.Info.Type, se.Info.Size)
	}
	fmt.Fprintf(&b, "index: %d, error: %s", se.Index, DescribeError(se.Err))
	fmt.Fprintln(f.ErrOut, b.String())
}

// DescribeError renders an engine error for humans. Opaque channel
// codes go through the platform's error-string translator; everything
// else already carries its own message.
func DescribeError(err error) string {
	var callErr *smc.CallError
	if errors.As(err, &callErr) {
		return fmt.Sprintf("%s (code %#08x)", iokit.Describe(callErr.Code), uint32(callErr.Code))
	}
	return err.Error()
}
