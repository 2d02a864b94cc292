package cli

import (
	"context"
	"fmt"
	"io"
)

// consoleProvider answers the tuning loop's questions over the wired
// reader/writer pair.
type consoleProvider struct {
	in  io.Reader
	out io.Writer
}

func newConsoleProvider(in io.Reader, out io.Writer) *consoleProvider {
	return &consoleProvider{in: in, out: out}
}

func (p *consoleProvider) Variable(ctx context.Context, name string) (string, error) {
	fmt.Fprintf(p.out, "Value for {%s}: ", name)
	return readPromptLine(p.in)
}

func (p *consoleProvider) Feedback(ctx context.Context) (string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, styleYellow.Render("Describe a problem with the response, or press Enter if you are done: "))
	return readPromptLine(p.in)
}

func (p *consoleProvider) ConfirmAccept(ctx context.Context) (bool, error) {
	return promptYesNoIO(p.in, p.out, "Accept this prompt? (y/n): "), nil
}

// consoleObserver prints each loop artifact under a styled section header.
type consoleObserver struct {
	out io.Writer
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out}
}

func (o *consoleObserver) section(title, body string) {
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, styleHeader.Render(title))
	fmt.Fprintln(o.out, body)
}

func (o *consoleObserver) OnRendered(prompt string) {
	o.section("--- Current Prompt ---", prompt)
}

func (o *consoleObserver) OnResponse(text string) {
	o.section("--- Model Response ---", text)
}

func (o *consoleObserver) OnRevised(template string) {
	o.section("--- Revised Template ---", template)
}

func (o *consoleObserver) OnSummary(summary string) {
	o.section("--- Learned Preferences ---", styleDim.Render(summary))
}
