// Package dispatch connects raw user text to the return engine.
//
// An Operation names one engine routine. Its Handler knows the prompts to
// show, how to parse each answer with numparse and which engine function to
// call. A Dispatcher evaluates one operation at a time and renders the
// result as "<label>: <decimal> or <percent>%".
//
// Session runs the interactive chapter menu over any io.Reader/io.Writer
// pair. Every failure is printed and the menu continues; only end of input
// or a cancelled context ends a session.
package dispatch
