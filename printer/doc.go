// Package printer turns terminated log snapshots into renders.
//
// A render is a (method, arguments) pair; an output sink performs the final
// write. Three printers cover the supported surfaces:
//
//   - Rich targets interactive consoles that accept %c style directives.
//     The leader reads " %c 🚨 Alert(1)" and is followed by the CSS style,
//     the meta string and the log arguments.
//   - Terminal targets plain streams. Its leader is padded to 15 columns
//     and optionally wrapped in the level's ANSI style.
//   - Machine emits one structured Record per log, encoded as JSON (a
//     string argument) or canonical CBOR (a []byte argument).
//
// Select chooses among them from an env.Descriptor and the log's settings.
// Printers never inspect the runtime to decide what to do.
//
// The meta string shared by Rich and Terminal is built in a pooled
// bytes.Buffer. Buffers larger than 64 KiB are not returned to the pool.
package printer
