// Package dispatcher turns command lines and key sequences into command
// invocations.
//
// Every request goes through the same pipeline:
//
//  1. The input is parsed (cmdline.Parse) or, for keys, matched against the
//     key-binding table and mapped to the bound command line.
//  2. The command is looked up in the registry. Unknown names fail with
//     suggestions from registry.Suggest.
//  3. Arguments are validated against the command's schema.
//  4. Dry runs stop here and report what would have run.
//  5. Pre-dispatch hooks run and may cancel the invocation.
//  6. The guard, if any, is checked. Execute runs only when it passes.
//  7. Post-dispatch hooks run and metrics are recorded.
//
// Execute never panics and never returns a Go error: every outcome is a
// command.Result. Panics raised by a guard, a command or a hook are recovered
// and reported as a failed result.
//
// # Counts and repeat
//
// A count typed before a key sequence reaches the command as
// Invocation.Count; the dispatcher never loops. Commands that are not
// Countable see a count of zero. The last successful Repeatable invocation is
// remembered and re-run by the dot-repeat key with the same validated
// arguments. If the command has since been re-registered as not Repeatable,
// dot-repeat fails and forgets it.
//
// # Concurrency
//
// The registry and the key-binding table may be swapped while dispatches are
// in flight (SetKeyBindings is safe for concurrent use). A KeySession belongs
// to one input stream and must not be shared.
package dispatcher
